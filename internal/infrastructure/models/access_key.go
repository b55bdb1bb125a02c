package models

import (
	"time"

	"github.com/google/uuid"
)

type AccessKey struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token          string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Permissions    string    `gorm:"type:text;not null"` // JSON array
	WhitelistRange string    `gorm:"type:text;not null"` // JSON array of IPs/CIDRs
	RateLimit      int       `gorm:"not null;default:0"` // RPM ceiling, 0 = none
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (AccessKey) TableName() string {
	return "access_keys"
}
