package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PersonalKey is an issued API credential. Key holds the public lookup part;
// the secret part is stored only as a salted hash and is returned in plain
// form exactly once, on issue and on reset.
type PersonalKey struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Key            string
	SecretHash     string
	SecretSalt     string
	MaxCount       int64 // monthly quota, -1 means unlimited
	Permissions    []string
	WhitelistRange []string
	ActivatedAt    time.Time
	ExpiresAt      *time.Time // nil means never expires
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsExpired reports whether the key has an expiry in the past.
func (k *PersonalKey) IsExpired() bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(time.Now())
}

// NeverExpires is the hours sentinel that issues a key without expiry. The
// same literal, as a string, clears expiry on update.
const NeverExpires = -1

type CreatePersonalKeyInput struct {
	UserID         uuid.UUID `json:"user_id" binding:"required"`
	MonthlyUsage   *int64    `json:"monthly_usage" binding:"required"`
	Permissions    []string  `json:"permissions" binding:"required"`
	WhitelistRange []string  `json:"whitelist_range" binding:"required"`
	Hours          *int64    `json:"hours" binding:"required"`
}

// UpdatePersonalKeyInput carries partial-update fields. Absent fields stay
// untouched; every field tracks its own presence.
type UpdatePersonalKeyInput struct {
	MonthlyUsage   null.Int64  `json:"monthly_usage"`
	Permissions    *[]string   `json:"permissions"`
	WhitelistRange *[]string   `json:"whitelist_range"`
	ActivatedAt    null.String `json:"activated_at"`
	ExpiresAt      null.String `json:"expires_at"` // "-1" clears expiry
}

// Empty reports whether no mutating field is present, which turns the update
// into a pure read.
func (i UpdatePersonalKeyInput) Empty() bool {
	return !i.MonthlyUsage.Valid &&
		i.Permissions == nil &&
		i.WhitelistRange == nil &&
		!i.ActivatedAt.Valid &&
		!i.ExpiresAt.Valid
}

// SubscriptionView is the expiry block of the external key representation.
type SubscriptionView struct {
	IsExpired   bool       `json:"is_expired"`
	ActivatedAt time.Time  `json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// PersonalKeyView is the externally visible representation of a PersonalKey.
// It never carries the secret hash or salt; Key is set only on issue/reset.
type PersonalKeyView struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	Key          *string          `json:"key,omitempty"`
	MonthlyUsage int64            `json:"monthly_usage"`
	Permissions  []string         `json:"permissions"`
	WhitelistIP  []string         `json:"whitelist_ip"`
	Subscription SubscriptionView `json:"subscription"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewPersonalKeyView builds the wire view of a key. fullKey, when non-empty,
// is the one-time plaintext credential to expose.
func NewPersonalKeyView(k *PersonalKey, fullKey string) *PersonalKeyView {
	view := &PersonalKeyView{
		ID:           k.ID,
		UserID:       k.UserID,
		MonthlyUsage: k.MaxCount,
		Permissions:  k.Permissions,
		WhitelistIP:  k.WhitelistRange,
		Subscription: SubscriptionView{
			IsExpired:   k.IsExpired(),
			ActivatedAt: k.ActivatedAt,
			ExpiresAt:   k.ExpiresAt,
		},
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
	if fullKey != "" {
		view.Key = &fullKey
	}
	return view
}
