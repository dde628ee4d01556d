package ranking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/islandworks/tradewinds/app/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// ListingQuery carries the raw, caller-supplied listing parameters. Every
// field is optional; invalid values are rejected, never silently dropped.
type ListingQuery struct {
	Status     string
	Island     string
	CategoryID string
	AreaID     string
	Limit      string
	Cursor     string
}

// Suggestion guides the caller towards a non-empty result when the filtered
// listing comes back empty. Each suggestion relaxes exactly one filter.
type Suggestion struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Filters map[string]string `json:"filters"`
}

// ListingResult is one page of the ranked listing.
type ListingResult struct {
	Providers   []RankedProvider `json:"providers"`
	NextCursor  *string          `json:"next_cursor"`
	Suggestions []Suggestion     `json:"suggestions,omitempty"`
}

type listingFilters struct {
	status     string
	island     string
	categoryID uint
	areaID     uint
	limit      int
	cursorVals []any
}

type filterEnums struct {
	Status string `validate:"omitempty,oneof=OPEN_NOW BUSY_LIMITED NOT_TAKING_WORK"`
	Island string `validate:"omitempty,oneof=STT STX STJ"`
}

var validate = validator.New()

// List runs the ranked, cursor-bounded listing query for the given mode and
// returns one page plus the cursor for the next one.
func List(db *gorm.DB, m Mode, q ListingQuery) (*ListingResult, error) {
	f, err := parseListingQuery(m, q)
	if err != nil {
		return nil, err
	}

	tx := db.Table("(?) AS ranked", rankedSubquery(db, m)).
		Where("ranked.lifecycle_status <> ?", models.LIFECYCLE_ARCHIVED)

	if f.status != "" {
		tx = tx.Where("ranked.availability_status = ?", f.status)
	}
	if f.island != "" {
		tx = tx.Where("ranked.island = ?", f.island)
	}
	if f.categoryID != 0 {
		tx = tx.Where("EXISTS(SELECT 1 FROM provider_categories pc WHERE pc.provider_id = ranked.id AND pc.category_id = ?)", f.categoryID)
	}
	if f.areaID != 0 {
		tx = tx.Where("EXISTS(SELECT 1 FROM provider_service_areas psa WHERE psa.provider_id = ranked.id AND psa.service_area_id = ?)", f.areaID)
	}
	if f.cursorVals != nil {
		predicate, args := keysetPredicate(m.Keys(), f.cursorVals)
		tx = tx.Where(predicate, args...)
	}

	// Fetch one extra row so hasMore needs no second count query.
	var rows []RankedProvider
	if err := tx.Order(orderClause(m)).Limit(f.limit + 1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing query: %w", err)
	}

	result := &ListingResult{Providers: rows}
	if len(rows) > f.limit {
		result.Providers = rows[:f.limit]
		cursor, err := m.EncodeCursor(&result.Providers[f.limit-1])
		if err != nil {
			return nil, err
		}
		result.NextCursor = &cursor
	}
	if len(result.Providers) == 0 && f.cursorVals == nil {
		result.Suggestions = buildSuggestions(f)
	}
	return result, nil
}

// rankedSubquery selects providers.* plus the computed ranking columns, so
// the outer query can filter, keyset-bound, and order by plain column names.
func rankedSubquery(db *gorm.DB, m Mode) *gorm.DB {
	selects := []string{"providers.*"}
	for _, k := range m.Keys() {
		if k.Expr == "providers."+k.Name {
			continue // already part of providers.*
		}
		selects = append(selects, k.Expr+" AS "+k.Name)
	}
	return db.Model(&models.Provider{}).Select(strings.Join(selects, ", "))
}

func orderClause(m Mode) string {
	parts := make([]string, 0, len(m.Keys()))
	for _, k := range m.Keys() {
		dir := " ASC"
		if k.Desc {
			dir = " DESC"
		}
		parts = append(parts, "ranked."+k.Name+dir)
	}
	return strings.Join(parts, ", ")
}

// keysetPredicate builds the strict "after the cursor tuple" condition: a
// disjunction of conjunctions, one per key-prefix length.
func keysetPredicate(keys []Key, cursorVals []any) (string, []any) {
	terms := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)*(len(keys)+1)/2)
	for i, k := range keys {
		conj := make([]string, 0, i+1)
		for j := 0; j < i; j++ {
			conj = append(conj, "ranked."+keys[j].Name+" = ?")
			args = append(args, cursorVals[j])
		}
		op := " > ?"
		if k.Desc {
			op = " < ?"
		}
		conj = append(conj, "ranked."+k.Name+op)
		args = append(args, cursorVals[i])
		terms = append(terms, "("+strings.Join(conj, " AND ")+")")
	}
	return "(" + strings.Join(terms, " OR ") + ")", args
}

func parseListingQuery(m Mode, q ListingQuery) (*listingFilters, error) {
	if err := validate.Struct(filterEnums{Status: q.Status, Island: q.Island}); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Field() {
			case "Status":
				return nil, NewValidationError(CodeInvalidStatus, fmt.Sprintf("unknown status %q", q.Status))
			case "Island":
				return nil, NewValidationError(CodeInvalidIsland, fmt.Sprintf("unknown island %q", q.Island))
			}
		}
		return nil, err
	}

	f := &listingFilters{status: q.Status, island: q.Island, limit: DefaultLimit}

	var err error
	if f.categoryID, err = parsePositiveID(q.CategoryID); err != nil {
		return nil, NewValidationError(CodeInvalidCategory, fmt.Sprintf("invalid category id %q", q.CategoryID))
	}
	if f.areaID, err = parsePositiveID(q.AreaID); err != nil {
		return nil, NewValidationError(CodeInvalidArea, fmt.Sprintf("invalid area id %q", q.AreaID))
	}

	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit < 1 {
			return nil, NewValidationError(CodeInvalidLimit, fmt.Sprintf("limit must be a positive integer, got %q", q.Limit))
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		f.limit = limit
	}

	if q.Cursor != "" {
		vals, err := m.DecodeCursor(q.Cursor)
		if err != nil {
			return nil, err
		}
		f.cursorVals = vals
	}

	return f, nil
}

func parsePositiveID(s string) (uint, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(v), nil
}

// buildSuggestions relaxes one filter at a time for an empty first page.
func buildSuggestions(f *listingFilters) []Suggestion {
	applied := func() map[string]string {
		out := map[string]string{}
		if f.status != "" {
			out["status"] = f.status
		}
		if f.island != "" {
			out["island"] = f.island
		}
		if f.categoryID != 0 {
			out["category_id"] = strconv.FormatUint(uint64(f.categoryID), 10)
		}
		if f.areaID != 0 {
			out["area_id"] = strconv.FormatUint(uint64(f.areaID), 10)
		}
		return out
	}

	var suggestions []Suggestion
	if f.status == models.AVAILABILITY_OPEN_NOW {
		filters := applied()
		filters["status"] = models.AVAILABILITY_BUSY_LIMITED
		suggestions = append(suggestions, Suggestion{
			Code:    "RELAX_STATUS",
			Message: "No providers are open right now; include providers with limited availability",
			Filters: filters,
		})
	}
	if f.island != "" {
		filters := applied()
		delete(filters, "island")
		suggestions = append(suggestions, Suggestion{
			Code:    "DROP_ISLAND",
			Message: "No providers matched on " + f.island + "; search across all islands",
			Filters: filters,
		})
	}
	return suggestions
}
