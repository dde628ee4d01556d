package models

import (
	"time"
)

const (
	BADGE_VERIFIED        = "VERIFIED"
	BADGE_GOV_APPROVED    = "GOV_APPROVED"
	BADGE_EMERGENCY_READY = "EMERGENCY_READY"
)

// Badge is a qualification fact: presence of the row implies the provider
// holds the badge. Uniqueness over (provider_id, badge_type) keeps grants
// idempotent.
type Badge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"uniqueIndex:idx_provider_badge;not null" json:"provider_id"`
	BadgeType  string    `gorm:"type:varchar(30);uniqueIndex:idx_provider_badge;not null" json:"badge_type"`
	GrantedAt  time.Time `gorm:"autoCreateTime" json:"granted_at"`
}

// IsValidBadgeType reports whether t is one of the known badge types.
func IsValidBadgeType(t string) bool {
	switch t {
	case BADGE_VERIFIED, BADGE_GOV_APPROVED, BADGE_EMERGENCY_READY:
		return true
	default:
		return false
	}
}

// HasBadge reports whether the given badge set contains badgeType.
func HasBadge(badges []Badge, badgeType string) bool {
	for _, b := range badges {
		if b.BadgeType == badgeType {
			return true
		}
	}
	return false
}
