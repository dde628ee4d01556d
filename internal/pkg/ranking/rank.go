package ranking

import (
	"time"

	"github.com/islandworks/tradewinds/app/models"
)

const (
	TierGovApproved = 3
	TierVerified    = 2
	TierDefault     = 1
)

// TrustTier derives the discrete trust tier from a badge set. GOV_APPROVED
// dominates VERIFIED; no badge means the default tier.
func TrustTier(badges []models.Badge) int {
	if models.HasBadge(badges, models.BADGE_GOV_APPROVED) {
		return TierGovApproved
	}
	if models.HasBadge(badges, models.BADGE_VERIFIED) {
		return TierVerified
	}
	return TierDefault
}

// IsPremiumActive reports whether the provider's premium plan counts at read
// time. An expired, unconverted trial reverts to non-premium here without any
// batch job having to touch the plan column.
func IsPremiumActive(p *models.Provider, now time.Time) bool {
	if p.Plan != models.PLAN_PREMIUM {
		return false
	}
	if p.PlanSource != models.PLAN_SOURCE_TRIAL {
		return true
	}
	return p.TrialEndAt != nil && p.TrialEndAt.After(now)
}

// EmergencyBoostEligible reports whether the provider qualifies for the
// emergency ranking boost. Only consulted when emergency mode is on.
func EmergencyBoostEligible(p *models.Provider, badges []models.Badge, now time.Time) bool {
	return IsPremiumActive(p, now) && models.HasBadge(badges, models.BADGE_EMERGENCY_READY)
}

// Annotate computes the ranking columns for a single loaded provider, the
// same way the listing query computes them in SQL. lastActive is nil for
// providers without any activity events.
func Annotate(p *models.Provider, badges []models.Badge, lastActive *time.Time, now time.Time) *RankedProvider {
	r := &RankedProvider{
		Provider:        *p,
		TrustTier:       TrustTier(badges),
		PremiumActive:   IsPremiumActive(p, now),
		LifecycleActive: p.IsLifecycleActive(),
		LastActiveAt:    EpochFloor,
	}
	r.EmergencyEligible = r.PremiumActive && models.HasBadge(badges, models.BADGE_EMERGENCY_READY)
	if lastActive != nil {
		r.LastActiveAt = lastActive.UTC()
	}
	return r
}
