package models

import (
	"time"

	"github.com/google/uuid"
)

type PersonalKey struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Key            string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	Secret         string    `gorm:"type:text;not null"`        // argon2id hash, never plaintext
	SecretSalt     string    `gorm:"type:varchar(16);not null"` // replaced together with Secret
	MaxCount       int64     `gorm:"not null"`                  // -1 = unlimited
	Permissions    string    `gorm:"type:text;not null"`        // JSON array
	WhitelistRange string    `gorm:"type:text;not null"`        // JSON array of IPs/CIDRs
	ActivatedAt    time.Time `gorm:"not null"`
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PersonalKey) TableName() string {
	return "personal_keys"
}
