package verification

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/islandworks/tradewinds/app/models"
)

const (
	// MinAccountAgeDays is how old an account must be before it can verify.
	MinAccountAgeDays = 14
	// MinDistinctActiveDays is the number of distinct calendar days with
	// genuine usage required for verification.
	MinDistinctActiveDays = 5
)

var ErrProviderNotFound = errors.New("provider not found")

// Evaluator computes the verification bar for a single provider from raw
// activity aggregates and profile fields. It is read-only and idempotent:
// unchanged inputs always produce the same answer.
type Evaluator struct {
	db *gorm.DB
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db}
}

// Evaluate checks the four verification rules. All must pass; the first
// failing rule short-circuits to false.
func (e *Evaluator) Evaluate(providerID uint, now time.Time) (bool, error) {
	var provider models.Provider
	if err := e.db.First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProviderNotFound
		}
		return false, fmt.Errorf("load provider %d: %w", providerID, err)
	}

	// Rule 1: account age
	if now.Sub(provider.CreatedAt) < MinAccountAgeDays*24*time.Hour {
		return false, nil
	}

	// Rule 2: distinct active days over genuine-usage events
	var activeDays int64
	err := e.db.Model(&models.ActivityEvent{}).
		Select("COUNT(DISTINCT DATE(created_at))").
		Where("provider_id = ? AND event_type IN ?", providerID, models.GenuineUsageEventTypes()).
		Scan(&activeDays).Error
	if err != nil {
		return false, fmt.Errorf("count active days for provider %d: %w", providerID, err)
	}
	if activeDays < MinDistinctActiveDays {
		return false, nil
	}

	// Rule 3: at least one customer interaction or one opened-for-work event
	interactionTypes := append(models.CustomerInteractionEventTypes(), models.EVENT_OPENED_FOR_WORK)
	var interactions int64
	err = e.db.Model(&models.ActivityEvent{}).
		Where("provider_id = ? AND event_type IN ?", providerID, interactionTypes).
		Limit(1).
		Count(&interactions).Error
	if err != nil {
		return false, fmt.Errorf("count interactions for provider %d: %w", providerID, err)
	}
	if interactions == 0 {
		return false, nil
	}

	// Rule 4: profile completeness
	if provider.Phone == "" || provider.Description == "" {
		return false, nil
	}
	var categories int64
	if err := e.db.Model(&models.ProviderCategory{}).Where("provider_id = ?", providerID).Count(&categories).Error; err != nil {
		return false, fmt.Errorf("count categories for provider %d: %w", providerID, err)
	}
	if categories == 0 {
		return false, nil
	}
	var areas int64
	if err := e.db.Model(&models.ProviderServiceArea{}).Where("provider_id = ?", providerID).Count(&areas).Error; err != nil {
		return false, fmt.Errorf("count service areas for provider %d: %w", providerID, err)
	}
	if areas == 0 {
		return false, nil
	}

	return true, nil
}
