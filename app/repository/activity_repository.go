package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/islandworks/tradewinds/app/models"
)

// activityEventRepository implements the ActivityEventRepository interface
type activityEventRepository struct {
	db *gorm.DB
}

// NewActivityEventRepository creates a new activity event repository instance
func NewActivityEventRepository(db *gorm.DB) ActivityEventRepository {
	return &activityEventRepository{db: db}
}

// Record appends one activity event. Events are never updated or deleted.
func (r *activityEventRepository) Record(providerID uint, eventType string) error {
	event := models.ActivityEvent{ProviderID: providerID, EventType: eventType}
	return r.db.Create(&event).Error
}

// LastActiveAt returns the most recent event timestamp for a provider, or nil
// if the provider never produced an event.
func (r *activityEventRepository) LastActiveAt(providerID uint) (*time.Time, error) {
	var last *time.Time
	err := r.db.Model(&models.ActivityEvent{}).
		Select("MAX(created_at)").
		Where("provider_id = ?", providerID).
		Scan(&last).Error
	if err != nil {
		return nil, err
	}
	return last, nil
}

// CountSince returns the number of events recorded since the given time
func (r *activityEventRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ActivityEvent{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
