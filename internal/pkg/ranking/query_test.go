package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListingQueryValidation(t *testing.T) {
	mode := NewMode(false)

	tests := []struct {
		name     string
		query    ListingQuery
		wantCode string
	}{
		{name: "unknown status", query: ListingQuery{Status: "CLOSED"}, wantCode: CodeInvalidStatus},
		{name: "unknown island", query: ListingQuery{Island: "PR"}, wantCode: CodeInvalidIsland},
		{name: "non-numeric category", query: ListingQuery{CategoryID: "plumbing"}, wantCode: CodeInvalidCategory},
		{name: "zero category", query: ListingQuery{CategoryID: "0"}, wantCode: CodeInvalidCategory},
		{name: "non-numeric area", query: ListingQuery{AreaID: "east-end"}, wantCode: CodeInvalidArea},
		{name: "zero limit", query: ListingQuery{Limit: "0"}, wantCode: CodeInvalidLimit},
		{name: "negative limit", query: ListingQuery{Limit: "-5"}, wantCode: CodeInvalidLimit},
		{name: "non-numeric limit", query: ListingQuery{Limit: "many"}, wantCode: CodeInvalidLimit},
		{name: "garbage cursor", query: ListingQuery{Cursor: "!!!"}, wantCode: CodeInvalidCursor},
	}

	for _, tt := range tests {
		_, err := parseListingQuery(mode, tt.query)
		ve, ok := AsValidationError(err)
		if !ok {
			t.Fatalf("%s: expected validation error, got %v", tt.name, err)
		}
		assert.Equal(t, tt.wantCode, ve.Code, tt.name)
	}
}

func TestParseListingQueryLimits(t *testing.T) {
	mode := NewMode(false)

	f, err := parseListingQuery(mode, ListingQuery{})
	assert.NoError(t, err)
	assert.Equal(t, DefaultLimit, f.limit)

	f, err = parseListingQuery(mode, ListingQuery{Limit: "35"})
	assert.NoError(t, err)
	assert.Equal(t, 35, f.limit)

	// Over-limit requests are clamped, not rejected.
	f, err = parseListingQuery(mode, ListingQuery{Limit: "500"})
	assert.NoError(t, err)
	assert.Equal(t, MaxLimit, f.limit)
}

func TestParseListingQueryAcceptsValidFilters(t *testing.T) {
	mode := NewMode(true)
	f, err := parseListingQuery(mode, ListingQuery{
		Status:     "OPEN_NOW",
		Island:     "STX",
		CategoryID: "12",
		AreaID:     "3",
		Limit:      "10",
	})
	assert.NoError(t, err)
	assert.Equal(t, "OPEN_NOW", f.status)
	assert.Equal(t, "STX", f.island)
	assert.Equal(t, uint(12), f.categoryID)
	assert.Equal(t, uint(3), f.areaID)
	assert.Equal(t, 10, f.limit)
	assert.Nil(t, f.cursorVals)
}

func TestKeysetPredicateShape(t *testing.T) {
	mode := NewMode(false)
	keys := mode.Keys()
	vals := make([]any, len(keys))
	for i := range vals {
		vals[i] = i
	}

	predicate, args := keysetPredicate(keys, vals)

	// One disjunct per key prefix, triangular argument count.
	assert.Equal(t, len(keys), strings.Count(predicate, " OR ")+1)
	assert.Len(t, args, len(keys)*(len(keys)+1)/2)
	assert.True(t, strings.HasPrefix(predicate, "((ranked.trust_tier < ?)"))
	assert.Contains(t, predicate, "ranked.id > ?")
	assert.NotContains(t, predicate, "emergency_boost_eligible")

	onMode := NewMode(true)
	onVals := make([]any, len(onMode.Keys()))
	onPredicate, onArgs := keysetPredicate(onMode.Keys(), onVals)
	assert.Contains(t, onPredicate, "ranked.emergency_boost_eligible < ?")
	assert.Len(t, onArgs, 7*8/2)
}

func TestOrderClauseFollowsKeyList(t *testing.T) {
	assert.Equal(t,
		"ranked.trust_tier DESC, ranked.is_premium_active DESC, ranked.lifecycle_active DESC, ranked.last_active_at DESC, ranked.status_last_updated_at DESC, ranked.id ASC",
		orderClause(NewMode(false)))
	assert.Contains(t, orderClause(NewMode(true)), "ranked.emergency_boost_eligible DESC")
}

func TestBuildSuggestions(t *testing.T) {
	none := buildSuggestions(&listingFilters{})
	assert.Empty(t, none)

	s := buildSuggestions(&listingFilters{status: "OPEN_NOW", island: "STJ", categoryID: 4})
	assert.Len(t, s, 2)

	assert.Equal(t, "RELAX_STATUS", s[0].Code)
	assert.Equal(t, "BUSY_LIMITED", s[0].Filters["status"])
	assert.Equal(t, "STJ", s[0].Filters["island"])

	assert.Equal(t, "DROP_ISLAND", s[1].Code)
	_, hasIsland := s[1].Filters["island"]
	assert.False(t, hasIsland)
	assert.Equal(t, "OPEN_NOW", s[1].Filters["status"])
	assert.Equal(t, "4", s[1].Filters["category_id"])
}
