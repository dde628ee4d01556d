package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/islandworks/tradewinds/app/models"
)

// badgeRepository implements the BadgeRepository interface
type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new badge repository instance
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

// Grant inserts the badge fact if absent. Returns true when the badge was
// newly granted, false when the provider already held it.
func (r *badgeRepository) Grant(providerID uint, badgeType string, now time.Time) (bool, error) {
	badge := models.Badge{ProviderID: providerID, BadgeType: badgeType, GrantedAt: now}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Revoke deletes the badge fact if present. Returns true when a badge was
// actually removed.
func (r *badgeRepository) Revoke(providerID uint, badgeType string) (bool, error) {
	result := r.db.Where("provider_id = ? AND badge_type = ?", providerID, badgeType).
		Delete(&models.Badge{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetByProviderID returns all badges held by a provider
func (r *badgeRepository) GetByProviderID(providerID uint) ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.Where("provider_id = ?", providerID).Find(&badges).Error
	return badges, err
}

// CountByType returns how many providers hold the given badge
func (r *badgeRepository) CountByType(badgeType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Badge{}).Where("badge_type = ?", badgeType).Count(&count).Error
	return count, err
}
