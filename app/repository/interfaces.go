package repository

import (
	"time"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/internal/pkg/ranking"
)

// ProviderRepository defines the interface for provider-related database operations
type ProviderRepository interface {
	Create(provider *models.Provider) error
	GetByID(id uint) (*models.Provider, error)
	GetByUUID(uuid string) (*models.Provider, error)
	GetByUUIDWithRelations(uuid string) (*models.Provider, error)
	Update(provider *models.Provider) error
	UpdateLifecycle(id uint, status string, now time.Time) error
	UpdateAvailability(id uint, status string, now time.Time) error
	TouchStatus(id uint, now time.Time) error
	ReplaceCategories(id uint, categoryIDs []uint) error
	ReplaceServiceAreas(id uint, areaIDs []uint) error
	ListRanked(mode ranking.Mode, query ranking.ListingQuery) (*ranking.ListingResult, error)
	Count() (int64, error)
	CountByLifecycle(status string) (int64, error)
}

// BadgeRepository defines the interface for badge facts. Grants are upserts
// and revocations are conditional deletes so callers stay idempotent.
type BadgeRepository interface {
	Grant(providerID uint, badgeType string, now time.Time) (bool, error)
	Revoke(providerID uint, badgeType string) (bool, error)
	GetByProviderID(providerID uint) ([]models.Badge, error)
	CountByType(badgeType string) (int64, error)
}

// ActivityEventRepository defines the interface for the append-only activity log
type ActivityEventRepository interface {
	Record(providerID uint, eventType string) error
	LastActiveAt(providerID uint) (*time.Time, error)
	CountSince(since time.Time) (int64, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}
