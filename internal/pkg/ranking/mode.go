package ranking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/islandworks/tradewinds/app/models"
)

// EpochFloor is the sentinel last-active timestamp for providers that have
// never produced an activity event. It sorts after every real timestamp.
var EpochFloor = time.Unix(0, 0).UTC()

const epochFloorSQL = "'1970-01-01 00:00:00'"

// RankedProvider is a provider row annotated with the computed ranking
// columns of the listing query. The embedded fields come straight from the
// providers table; the rest are derived per request.
type RankedProvider struct {
	models.Provider
	TrustTier         int       `gorm:"column:trust_tier" json:"trust_tier"`
	PremiumActive     bool      `gorm:"column:is_premium_active" json:"is_premium_active"`
	EmergencyEligible bool      `gorm:"column:emergency_boost_eligible" json:"emergency_boost_eligible"`
	LifecycleActive   bool      `gorm:"column:lifecycle_active" json:"-"`
	LastActiveAt      time.Time `gorm:"column:last_active_at" json:"last_active_at"`
}

// Key is one component of the ranking order. Everything that has to agree on
// the current key tuple shape derives from the same key: the SQL select
// expression, the ORDER BY direction, the in-memory comparator, and the
// cursor encode/decode.
type Key struct {
	Name    string
	Expr    string // SQL expression aliased as Name in the ranked subquery
	Desc    bool
	Compare func(a, b *RankedProvider) int
	Value   func(r *RankedProvider) any
	Parse   func(raw json.RawMessage) (any, error)
}

// Mode captures the comparator shape for one request. It is built once per
// request from the emergency-mode flag and passed through query building and
// cursor handling so a request stays internally consistent even if the flag
// flips mid-flight.
type Mode struct {
	emergency bool
	keys      []Key
}

// NewMode builds the ranking mode for the given emergency-mode state.
func NewMode(emergencyEnabled bool) Mode {
	keys := make([]Key, 0, 7)
	keys = append(keys, trustTierKey(), premiumKey())
	if emergencyEnabled {
		keys = append(keys, emergencyKey())
	}
	keys = append(keys, lifecycleKey(), lastActiveKey(), statusUpdatedKey(), idKey())
	return Mode{emergency: emergencyEnabled, keys: keys}
}

// EmergencyEnabled reports whether this mode carries the emergency boost key.
func (m Mode) EmergencyEnabled() bool {
	return m.emergency
}

// Keys returns the ordered ranking keys of this mode.
func (m Mode) Keys() []Key {
	return m.keys
}

const (
	govBadgeExistsSQL       = "EXISTS(SELECT 1 FROM badges WHERE badges.provider_id = providers.id AND badges.badge_type = 'GOV_APPROVED')"
	verifiedBadgeExistsSQL  = "EXISTS(SELECT 1 FROM badges WHERE badges.provider_id = providers.id AND badges.badge_type = 'VERIFIED')"
	emergencyBadgeExistsSQL = "EXISTS(SELECT 1 FROM badges WHERE badges.provider_id = providers.id AND badges.badge_type = 'EMERGENCY_READY')"
	premiumActiveSQL        = "(providers.plan = 'PREMIUM' AND (providers.plan_source <> 'TRIAL' OR providers.trial_end_at > NOW()))"
)

func trustTierKey() Key {
	return Key{
		Name: "trust_tier",
		Expr: "CASE WHEN " + govBadgeExistsSQL + " THEN 3 WHEN " + verifiedBadgeExistsSQL + " THEN 2 ELSE 1 END",
		Desc: true,
		Compare: func(a, b *RankedProvider) int {
			return a.TrustTier - b.TrustTier
		},
		Value: func(r *RankedProvider) any { return r.TrustTier },
		Parse: parseTierValue,
	}
}

func premiumKey() Key {
	return Key{
		Name: "is_premium_active",
		Expr: premiumActiveSQL,
		Desc: true,
		Compare: func(a, b *RankedProvider) int {
			return compareBool(a.PremiumActive, b.PremiumActive)
		},
		Value: func(r *RankedProvider) any { return r.PremiumActive },
		Parse: parseBoolValue,
	}
}

func emergencyKey() Key {
	return Key{
		Name: "emergency_boost_eligible",
		Expr: "(" + premiumActiveSQL + " AND " + emergencyBadgeExistsSQL + ")",
		Desc: true,
		Compare: func(a, b *RankedProvider) int {
			return compareBool(a.EmergencyEligible, b.EmergencyEligible)
		},
		Value: func(r *RankedProvider) any { return r.EmergencyEligible },
		Parse: parseBoolValue,
	}
}

func lifecycleKey() Key {
	return Key{
		Name: "lifecycle_active",
		Expr: "(providers.lifecycle_status = 'ACTIVE')",
		Desc: true,
		Compare: func(a, b *RankedProvider) int {
			return compareBool(a.LifecycleActive, b.LifecycleActive)
		},
		Value: func(r *RankedProvider) any { return r.LifecycleActive },
		Parse: parseBoolValue,
	}
}

func lastActiveKey() Key {
	return Key{
		Name: "last_active_at",
		Expr: "COALESCE((SELECT MAX(ae.created_at) FROM activity_events ae WHERE ae.provider_id = providers.id), " + epochFloorSQL + ")",
		Desc: true,
		Compare: func(a, b *RankedProvider) int {
			return a.LastActiveAt.Compare(b.LastActiveAt)
		},
		Value: func(r *RankedProvider) any { return r.LastActiveAt.UTC().Format(time.RFC3339Nano) },
		Parse: parseTimeValue,
	}
}

func statusUpdatedKey() Key {
	return Key{
		Name: "status_last_updated_at",
		Expr: "providers.status_last_updated_at",
		Desc: true,
		Compare: func(a, b *RankedProvider) int {
			return a.StatusLastUpdatedAt.Compare(b.StatusLastUpdatedAt)
		},
		Value: func(r *RankedProvider) any { return r.StatusLastUpdatedAt.UTC().Format(time.RFC3339Nano) },
		Parse: parseTimeValue,
	}
}

func idKey() Key {
	return Key{
		Name: "id",
		Expr: "providers.id",
		Desc: false,
		Compare: func(a, b *RankedProvider) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			default:
				return 0
			}
		},
		Value: func(r *RankedProvider) any { return r.ID },
		Parse: parseIDValue,
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func parseTierValue(raw json.RawMessage) (any, error) {
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("not an integer: %w", err)
	}
	if v < 1 || v > 3 {
		return nil, fmt.Errorf("trust tier %d out of range", v)
	}
	return v, nil
}

func parseBoolValue(raw json.RawMessage) (any, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("not a boolean: %w", err)
	}
	return v, nil
}

func parseTimeValue(raw json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("not a timestamp string: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}
	return t.UTC(), nil
}

func parseIDValue(raw json.RawMessage) (any, error) {
	var v uint64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("not an id: %w", err)
	}
	return uint(v), nil
}
