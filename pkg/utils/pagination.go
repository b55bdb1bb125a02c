package utils

import "math"

// DefaultLogPageSize is the fixed page size for access log listings.
const DefaultLogPageSize = 25

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	PerPage int   `json:"per_page"`
	Current int   `json:"current"`
	Total   int64 `json:"total"`
}

// GetPaginationParams extracts page and limit with defaults
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLogPageSize
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// CalculateMeta generates pagination metadata; Total is the last page number.
func CalculateMeta(totalCount int64, page, limit int) PaginationMeta {
	totalPages := int64(math.Ceil(float64(totalCount) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	return PaginationMeta{
		PerPage: limit,
		Current: page,
		Total:   totalPages,
	}
}
