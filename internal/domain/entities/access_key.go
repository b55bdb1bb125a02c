package entities

import (
	"time"

	"github.com/google/uuid"
)

// AccessKey is an operator credential for the admin surface. It is an opaque
// bearer token with its own capability grants, an optional IP whitelist and
// an optional requests-per-minute ceiling (0 means no ceiling).
type AccessKey struct {
	ID             uuid.UUID
	Token          string
	Permissions    []string
	WhitelistRange []string
	RateLimit      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
