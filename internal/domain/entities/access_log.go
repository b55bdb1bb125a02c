package entities

import (
	"time"

	"github.com/google/uuid"
	"keygate.backend/pkg/utils"
)

// AccessLogEntry records one authorized request made with a personal key.
// Entries are append-only; the owning key's deletion cascades to them.
type AccessLogEntry struct {
	ID          uuid.UUID
	KeyID       uuid.UUID
	RequestID   string
	RequestInfo map[string]interface{}
	AccessIP    string
	CreatedAt   time.Time
}

// AccessLogView hides the internal identifiers, as the stored log model does.
type AccessLogView struct {
	RequestID   string                 `json:"request_id"`
	RequestInfo map[string]interface{} `json:"request_info"`
	AccessIP    string                 `json:"access_ip"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewAccessLogView builds the wire view of a log entry.
func NewAccessLogView(e *AccessLogEntry) *AccessLogView {
	return &AccessLogView{
		RequestID:   e.RequestID,
		RequestInfo: e.RequestInfo,
		AccessIP:    e.AccessIP,
		CreatedAt:   e.CreatedAt,
	}
}

// AccessLogPage is one page of a key's log entries plus pagination metadata.
type AccessLogPage struct {
	Pagination utils.PaginationMeta `json:"pagination"`
	Items      []*AccessLogView     `json:"items"`
}

// DayCount is one day's request count within a billing month.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// UsageView summarises quota utilization for a month. Max and Percent are
// null when the quota is unlimited.
type UsageView struct {
	Current int64    `json:"current"`
	Max     *int64   `json:"max"`
	Percent *float64 `json:"percent"`
}

// UsageStats is the stats operation response.
type UsageStats struct {
	Usage   UsageView  `json:"usage"`
	Details []DayCount `json:"details"`
}
