package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/internal/pkg/ranking"
)

// providerRepository implements the ProviderRepository interface
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository instance
func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepository{db: db}
}

// Create creates a new provider in the database
func (r *providerRepository) Create(provider *models.Provider) error {
	return r.db.Create(provider).Error
}

// GetByID retrieves a provider by its internal ID
func (r *providerRepository) GetByID(id uint) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.First(&provider, id).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetByUUID retrieves a provider by its public UUID
func (r *providerRepository) GetByUUID(uuid string) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.Where("uuid = ?", uuid).First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetByUUIDWithRelations retrieves a provider with badges, categories and areas preloaded
func (r *providerRepository) GetByUUIDWithRelations(uuid string) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.Preload("Badges").Preload("Categories").Preload("ServiceAreas").
		Where("uuid = ?", uuid).First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// Update updates an existing provider in the database
func (r *providerRepository) Update(provider *models.Provider) error {
	return r.db.Save(provider).Error
}

// UpdateLifecycle changes the lifecycle status and bumps the status timestamp
func (r *providerRepository) UpdateLifecycle(id uint, status string, now time.Time) error {
	return r.db.Model(&models.Provider{}).
		Where("id = ?", id).
		Updates(map[string]any{"lifecycle_status": status, "status_last_updated_at": now}).Error
}

// UpdateAvailability changes the availability status and bumps the status timestamp
func (r *providerRepository) UpdateAvailability(id uint, status string, now time.Time) error {
	return r.db.Model(&models.Provider{}).
		Where("id = ?", id).
		Updates(map[string]any{"availability_status": status, "status_last_updated_at": now}).Error
}

// TouchStatus bumps the status timestamp without changing any status field.
// Used after badge writes, which change the provider's effective trust state.
func (r *providerRepository) TouchStatus(id uint, now time.Time) error {
	return r.db.Model(&models.Provider{}).
		Where("id = ?", id).
		Update("status_last_updated_at", now).Error
}

// ReplaceCategories replaces the provider's category assignments
func (r *providerRepository) ReplaceCategories(id uint, categoryIDs []uint) error {
	if err := r.db.Where("provider_id = ?", id).Delete(&models.ProviderCategory{}).Error; err != nil {
		return err
	}
	for _, categoryID := range categoryIDs {
		join := models.ProviderCategory{ProviderID: id, CategoryID: categoryID}
		if err := r.db.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceServiceAreas replaces the provider's service area assignments
func (r *providerRepository) ReplaceServiceAreas(id uint, areaIDs []uint) error {
	if err := r.db.Where("provider_id = ?", id).Delete(&models.ProviderServiceArea{}).Error; err != nil {
		return err
	}
	for _, areaID := range areaIDs {
		join := models.ProviderServiceArea{ProviderID: id, ServiceAreaID: areaID}
		if err := r.db.Create(&join).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListRanked serves the public listing: filtered, ranked, cursor-bounded
func (r *providerRepository) ListRanked(mode ranking.Mode, query ranking.ListingQuery) (*ranking.ListingResult, error) {
	return ranking.List(r.db, mode, query)
}

// Count returns the total number of providers
func (r *providerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Provider{}).Count(&count).Error
	return count, err
}

// CountByLifecycle returns the number of providers in the given lifecycle status
func (r *providerRepository) CountByLifecycle(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Provider{}).Where("lifecycle_status = ?", status).Count(&count).Error
	return count, err
}
