package verification

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/islandworks/tradewinds/app/models"
)

// DecayWindowDays is the trailing inactivity window after which VERIFIED is
// revoked regardless of historical qualification.
const DecayWindowDays = 30

// Manager owns the VERIFIED badge: it grants and revokes it from evaluator
// results and applies the inactivity decay rule. All writes are expressed as
// upserts or conditional deletes so overlapping runs converge instead of
// double-inserting.
type Manager struct {
	db        *gorm.DB
	evaluator *Evaluator
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db, evaluator: NewEvaluator(db)}
}

// SweepStats summarizes one sweep run.
type SweepStats struct {
	Reconciled int `json:"reconciled"`
	Failed     int `json:"failed"`
	Decayed    int `json:"decayed"`
}

// ReconcileProvider re-evaluates one provider and converges its VERIFIED
// badge to the evaluator result. Safe to call on every qualifying mutation as
// well as from the periodic sweep. Archived providers are left untouched.
func (m *Manager) ReconcileProvider(providerID uint, now time.Time) error {
	var provider models.Provider
	if err := m.db.First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProviderNotFound
		}
		return fmt.Errorf("load provider %d: %w", providerID, err)
	}
	if provider.IsArchived() {
		return nil
	}

	qualifies, err := m.evaluator.Evaluate(providerID, now)
	if err != nil {
		return err
	}

	if qualifies {
		return m.grantVerified(providerID, now)
	}
	return m.revokeVerified(providerID, now)
}

func (m *Manager) grantVerified(providerID uint, now time.Time) error {
	badge := models.Badge{ProviderID: providerID, BadgeType: models.BADGE_VERIFIED, GrantedAt: now}
	result := m.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge)
	if result.Error != nil {
		return fmt.Errorf("grant VERIFIED to provider %d: %w", providerID, result.Error)
	}
	if result.RowsAffected > 0 {
		log.Infof("[Verification] granted VERIFIED to provider %d", providerID)
		return m.touchStatus(providerID, now)
	}
	return nil
}

func (m *Manager) revokeVerified(providerID uint, now time.Time) error {
	result := m.db.Where("provider_id = ? AND badge_type = ?", providerID, models.BADGE_VERIFIED).
		Delete(&models.Badge{})
	if result.Error != nil {
		return fmt.Errorf("revoke VERIFIED from provider %d: %w", providerID, result.Error)
	}
	if result.RowsAffected > 0 {
		log.Infof("[Verification] revoked VERIFIED from provider %d", providerID)
		return m.touchStatus(providerID, now)
	}
	return nil
}

// touchStatus bumps the provider's secondary ranking timestamp after a badge
// change.
func (m *Manager) touchStatus(providerID uint, now time.Time) error {
	return m.db.Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("status_last_updated_at", now).Error
}

// Sweep reconciles every ACTIVE provider and then applies the inactivity
// decay rule. A failing provider is logged and skipped; it never aborts the
// rest of the batch.
func (m *Manager) Sweep(now time.Time) (*SweepStats, error) {
	var ids []uint
	err := m.db.Model(&models.Provider{}).
		Where("lifecycle_status = ?", models.LIFECYCLE_ACTIVE).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list active providers: %w", err)
	}

	stats := &SweepStats{}
	for _, id := range ids {
		if err := m.ReconcileProvider(id, now); err != nil {
			log.Errorf("[Verification] sweep: reconcile provider %d failed: %v", id, err)
			stats.Failed++
			continue
		}
		stats.Reconciled++
	}

	decayed, err := m.applyDecay(now)
	if err != nil {
		// Reconciliation already ran; report the partial stats with the error.
		return stats, err
	}
	stats.Decayed = decayed

	log.Infof("[Verification] sweep done: %d reconciled, %d failed, %d decayed", stats.Reconciled, stats.Failed, stats.Decayed)
	return stats, nil
}

// applyDecay revokes VERIFIED from ACTIVE providers with zero activity events
// inside the trailing window, independent of the evaluator's result.
func (m *Manager) applyDecay(now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, -DecayWindowDays)

	var staleIDs []uint
	err := m.db.Model(&models.Badge{}).
		Joins("JOIN providers ON providers.id = badges.provider_id").
		Where("badges.badge_type = ?", models.BADGE_VERIFIED).
		Where("providers.lifecycle_status = ?", models.LIFECYCLE_ACTIVE).
		Where("NOT EXISTS(SELECT 1 FROM activity_events ae WHERE ae.provider_id = badges.provider_id AND ae.created_at >= ?)", cutoff).
		Pluck("badges.provider_id", &staleIDs).Error
	if err != nil {
		return 0, fmt.Errorf("find decay candidates: %w", err)
	}
	if len(staleIDs) == 0 {
		return 0, nil
	}

	result := m.db.Where("badge_type = ? AND provider_id IN ?", models.BADGE_VERIFIED, staleIDs).
		Delete(&models.Badge{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete decayed badges: %w", result.Error)
	}
	err = m.db.Model(&models.Provider{}).
		Where("id IN ?", staleIDs).
		Update("status_last_updated_at", now).Error
	if err != nil {
		return int(result.RowsAffected), fmt.Errorf("touch decayed providers: %w", err)
	}
	for _, id := range staleIDs {
		log.Infof("[Verification] decayed VERIFIED for inactive provider %d", id)
	}
	return int(result.RowsAffected), nil
}
