package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/islandworks/tradewinds/app/models"
)

func TestEvaluatePassesWithAllRulesMet(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -60))
	seedQualifyingActivity(t, db, provider.ID, now.AddDate(0, 0, -2))

	ok, err := NewEvaluator(db).Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateFailsOnAccountAge(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	// Ten days old with a full profile, six active days and a customer call:
	// the age rule alone must fail the evaluation.
	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -10))
	for day := 0; day < 6; day++ {
		seedEvent(t, db, provider.ID, models.EVENT_LOGIN, now.AddDate(0, 0, -day))
	}
	seedEvent(t, db, provider.ID, models.EVENT_CONTACT_CALL, now.AddDate(0, 0, -1))

	ok, err := NewEvaluator(db).Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateFailsOnTooFewActiveDays(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -60))
	// Many events but only three distinct days of genuine usage.
	for i := 0; i < 4; i++ {
		seedEvent(t, db, provider.ID, models.EVENT_LOGIN, now.AddDate(0, 0, -1))
		seedEvent(t, db, provider.ID, models.EVENT_PROFILE_VIEW, now.AddDate(0, 0, -2))
		seedEvent(t, db, provider.ID, models.EVENT_STATUS_UPDATE, now.AddDate(0, 0, -3))
	}
	seedEvent(t, db, provider.ID, models.EVENT_CONTACT_CALL, now)

	ok, err := NewEvaluator(db).Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateFailsWithoutCustomerInteraction(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -60))
	for day := 0; day < MinDistinctActiveDays; day++ {
		seedEvent(t, db, provider.ID, models.EVENT_LOGIN, now.AddDate(0, 0, -day))
	}

	ok, err := NewEvaluator(db).Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateAcceptsOpenedForWorkInsteadOfContact(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -60))
	for day := 0; day < MinDistinctActiveDays; day++ {
		seedEvent(t, db, provider.ID, models.EVENT_LOGIN, now.AddDate(0, 0, -day))
	}
	seedEvent(t, db, provider.ID, models.EVENT_OPENED_FOR_WORK, now.AddDate(0, 0, -1))

	ok, err := NewEvaluator(db).Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateFailsOnIncompleteProfile(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -60))
	seedQualifyingActivity(t, db, provider.ID, now.AddDate(0, 0, -2))

	// Blank out the phone; everything else still qualifies.
	err := db.Model(&models.Provider{}).Where("id = ?", provider.ID).Update("phone", "").Error
	assert.NoError(t, err)

	ok, err := NewEvaluator(db).Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	provider := seedCompleteProvider(t, db, now.AddDate(0, 0, -60))
	seedQualifyingActivity(t, db, provider.ID, now.AddDate(0, 0, -2))

	evaluator := NewEvaluator(db)
	first, err := evaluator.Evaluate(provider.ID, now)
	assert.NoError(t, err)
	second, err := evaluator.Evaluate(provider.ID, now)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateUnknownProvider(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewEvaluator(db).Evaluate(999999, time.Now())
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
