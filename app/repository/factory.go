package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository implementations
type Repositories struct {
	Provider ProviderRepository
	Badge    BadgeRepository
	Activity ActivityEventRepository
	Setting  SettingRepository
}

// NewRepositories creates all repositories backed by the given database handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Provider: NewProviderRepository(db),
		Badge:    NewBadgeRepository(db),
		Activity: NewActivityEventRepository(db),
		Setting:  NewSettingRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetProviderRepository returns the provider repository instance
func (f *Factory) GetProviderRepository() ProviderRepository {
	return f.GetRepositories().Provider
}

// GetBadgeRepository returns the badge repository instance
func (f *Factory) GetBadgeRepository() BadgeRepository {
	return f.GetRepositories().Badge
}

// GetActivityEventRepository returns the activity event repository instance
func (f *Factory) GetActivityEventRepository() ActivityEventRepository {
	return f.GetRepositories().Activity
}

// GetSettingRepository returns the setting repository instance
func (f *Factory) GetSettingRepository() SettingRepository {
	return f.GetRepositories().Setting
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}
