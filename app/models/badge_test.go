package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBadgeType(t *testing.T) {
	assert.True(t, IsValidBadgeType(BADGE_VERIFIED))
	assert.True(t, IsValidBadgeType(BADGE_GOV_APPROVED))
	assert.True(t, IsValidBadgeType(BADGE_EMERGENCY_READY))
	assert.False(t, IsValidBadgeType("GOLD_STAR"))
	assert.False(t, IsValidBadgeType(""))
}

func TestHasBadge(t *testing.T) {
	badges := []Badge{
		{ProviderID: 1, BadgeType: BADGE_VERIFIED},
		{ProviderID: 1, BadgeType: BADGE_EMERGENCY_READY},
	}

	assert.True(t, HasBadge(badges, BADGE_VERIFIED))
	assert.True(t, HasBadge(badges, BADGE_EMERGENCY_READY))
	assert.False(t, HasBadge(badges, BADGE_GOV_APPROVED))
	assert.False(t, HasBadge(nil, BADGE_VERIFIED))
}
