package ranking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/islandworks/tradewinds/app/models"
)

func rankedFixture(id uint, tier int, premium, emergency, active bool, lastActive, statusUpdated time.Time) RankedProvider {
	r := RankedProvider{
		TrustTier:         tier,
		PremiumActive:     premium,
		EmergencyEligible: emergency,
		LifecycleActive:   active,
		LastActiveAt:      lastActive,
	}
	r.ID = id
	r.StatusLastUpdatedAt = statusUpdated
	return r
}

func TestLessIsTotalOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var providers []RankedProvider
	id := uint(1)
	for _, tier := range []int{1, 2, 3} {
		for _, premium := range []bool{false, true} {
			for _, emergency := range []bool{false, true} {
				for _, active := range []bool{false, true} {
					providers = append(providers,
						rankedFixture(id, tier, premium, emergency, active, now.Add(-time.Duration(id)*time.Hour), now))
					id++
					// Same keys as the previous row except the id, so only
					// the final tie-break separates them.
					providers = append(providers,
						rankedFixture(id, tier, premium, emergency, active, now.Add(-time.Duration(id-1)*time.Hour), now))
					id++
				}
			}
		}
	}

	for _, mode := range []Mode{NewMode(false), NewMode(true)} {
		for i := range providers {
			for j := range providers {
				if i == j {
					continue
				}
				a, b := &providers[i], &providers[j]
				if mode.Less(a, b) == mode.Less(b, a) {
					t.Fatalf("providers %d and %d do not have a strict order", a.ID, b.ID)
				}
			}
		}
	}
}

func TestTierDominatesPremium(t *testing.T) {
	now := time.Now().UTC()
	govNonPremium := rankedFixture(1, TierGovApproved, false, false, true, now.Add(-90*24*time.Hour), now.Add(-90*24*time.Hour))
	verifiedPremium := rankedFixture(2, TierVerified, true, true, true, now, now)

	for _, mode := range []Mode{NewMode(false), NewMode(true)} {
		assert.True(t, mode.Less(&govNonPremium, &verifiedPremium),
			"GOV_APPROVED must rank above a premium VERIFIED provider regardless of mode")
		assert.False(t, mode.Less(&verifiedPremium, &govNonPremium))
	}
}

func TestEmergencyBoostNeverCrossesTiers(t *testing.T) {
	now := time.Now().UTC()
	higherTier := rankedFixture(1, TierVerified, false, false, true, now.Add(-48*time.Hour), now.Add(-48*time.Hour))
	emergencyPremium := rankedFixture(2, TierDefault, true, true, true, now, now)

	off := NewMode(false)
	on := NewMode(true)
	assert.True(t, off.Less(&higherTier, &emergencyPremium))
	assert.True(t, on.Less(&higherTier, &emergencyPremium),
		"emergency boost must not lift a provider across a trust tier")
}

func TestEmergencyBoostReordersWithinTier(t *testing.T) {
	now := time.Now().UTC()
	// Same tier, both premium; only the second is emergency eligible but the
	// first is fresher.
	fresh := rankedFixture(1, TierVerified, true, false, true, now, now)
	emergency := rankedFixture(2, TierVerified, true, true, true, now.Add(-24*time.Hour), now.Add(-24*time.Hour))

	off := NewMode(false)
	on := NewMode(true)
	assert.True(t, off.Less(&fresh, &emergency), "with emergency mode off, freshness decides")
	assert.True(t, on.Less(&emergency, &fresh), "with emergency mode on, the eligible provider wins the tier")
}

func TestNeverActiveSortsLastWithinTier(t *testing.T) {
	now := time.Now().UTC()
	activeOnce := rankedFixture(1, TierDefault, false, false, true, now.Add(-365*24*time.Hour), now)
	neverActive := rankedFixture(2, TierDefault, false, false, true, EpochFloor, now)

	mode := NewMode(false)
	assert.True(t, mode.Less(&activeOnce, &neverActive))
}

func TestLifecycleActiveBeatsInactive(t *testing.T) {
	now := time.Now().UTC()
	inactiveFresh := rankedFixture(1, TierVerified, false, false, false, now, now)
	activeStale := rankedFixture(2, TierVerified, false, false, true, now.Add(-72*time.Hour), now.Add(-72*time.Hour))

	mode := NewMode(false)
	assert.True(t, mode.Less(&activeStale, &inactiveFresh))
}

func TestSortOrdersWholeSet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var providers []RankedProvider
	for id := uint(1); id <= 40; id++ {
		providers = append(providers, rankedFixture(
			id,
			int(id%3)+1,
			id%2 == 0,
			id%5 == 0,
			id%7 != 0,
			now.Add(-time.Duration(id%11)*time.Hour),
			now.Add(-time.Duration(id%13)*time.Minute),
		))
	}
	rand.New(rand.NewSource(1)).Shuffle(len(providers), func(i, j int) {
		providers[i], providers[j] = providers[j], providers[i]
	})

	mode := NewMode(true)
	mode.Sort(providers)

	seen := map[uint]bool{}
	for i := range providers {
		if i > 0 {
			assert.True(t, mode.Less(&providers[i-1], &providers[i]),
				"sorted output must be strictly ordered at position %d", i)
		}
		assert.False(t, seen[providers[i].ID])
		seen[providers[i].ID] = true
	}
}

// Walking pages over a sorted snapshot must yield every row exactly once:
// every row of a later page ranks strictly after the cursor row of the
// previous page, which is the invariant the SQL keyset predicate enforces.
func TestPageWalkHasNoOverlapOrSkip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var providers []RankedProvider
	for id := uint(1); id <= 37; id++ {
		providers = append(providers, rankedFixture(
			id, int(id%3)+1, id%2 == 0, false, true,
			now.Add(-time.Duration(id%6)*time.Hour), now,
		))
	}
	mode := NewMode(false)
	mode.Sort(providers)

	const pageSize = 7
	var walked []uint
	for start := 0; start < len(providers); start += pageSize {
		end := start + pageSize
		if end > len(providers) {
			end = len(providers)
		}
		page := providers[start:end]
		if start > 0 {
			cursorRow := &providers[start-1]
			for i := range page {
				assert.True(t, mode.Less(cursorRow, &page[i]),
					"row %d must rank strictly after the previous page's cursor row", page[i].ID)
			}
		}
		for _, p := range page {
			walked = append(walked, p.ID)
		}
	}

	assert.Len(t, walked, len(providers))
	unique := map[uint]bool{}
	for _, id := range walked {
		assert.False(t, unique[id], "provider %d appeared twice", id)
		unique[id] = true
	}
}

func TestModeKeyArity(t *testing.T) {
	assert.Len(t, NewMode(false).Keys(), 6)
	assert.Len(t, NewMode(true).Keys(), 7)
}

func TestAnnotateMatchesResolvers(t *testing.T) {
	now := time.Now().UTC()
	trialEnd := now.Add(24 * time.Hour)
	provider := &models.Provider{
		Plan:            models.PLAN_PREMIUM,
		PlanSource:      models.PLAN_SOURCE_TRIAL,
		TrialEndAt:      &trialEnd,
		LifecycleStatus: models.LIFECYCLE_ACTIVE,
	}
	provider.ID = 9
	badges := []models.Badge{
		{ProviderID: 9, BadgeType: models.BADGE_VERIFIED},
		{ProviderID: 9, BadgeType: models.BADGE_EMERGENCY_READY},
	}

	r := Annotate(provider, badges, nil, now)
	assert.Equal(t, TierVerified, r.TrustTier)
	assert.True(t, r.PremiumActive)
	assert.True(t, r.EmergencyEligible)
	assert.True(t, r.LifecycleActive)
	assert.Equal(t, EpochFloor, r.LastActiveAt, "never-active providers carry the epoch sentinel")
}
