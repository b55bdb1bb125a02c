package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessLog rows are append-only; there is no updated_at.
type AccessLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	KeyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID   string    `gorm:"type:varchar(64);not null"`
	RequestInfo string    `gorm:"type:text"` // JSON object, passed through
	AccessIP    string    `gorm:"type:varchar(45)"`
	CreatedAt   time.Time `gorm:"index"`
}

func (AccessLog) TableName() string {
	return "logs"
}
