package models

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppSettings represents the application settings structure
type AppSettings struct {
	SiteTitle            string `json:"site_title" validate:"required,min=1,max=255"`
	EmergencyModeEnabled bool   `json:"emergency_mode_enabled"`
	SweepIntervalHours   int    `json:"sweep_interval_hours" validate:"min=1,max=168"`
	mu                   sync.RWMutex
}

// Global settings instance
var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// GetAppSettings returns the current application settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return appSettings
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	appSettings = &AppSettings{
		SiteTitle:            "Tradewinds",
		EmergencyModeEnabled: false,
		SweepIntervalHours:   6,
	}

	// Load settings from database
	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Apply loaded settings
	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			appSettings.SiteTitle = setting.Value
		case "emergency_mode_enabled":
			appSettings.EmergencyModeEnabled = setting.Value == "true"
		case "sweep_interval_hours":
			if v, err := strconv.Atoi(setting.Value); err == nil && v > 0 {
				appSettings.SweepIntervalHours = v
			}
		}
	}

	return nil
}

// SaveSettings saves current settings to database
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Validate settings
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Convert settings to database format
	settingsMap := map[string]string{
		"site_title":             settings.SiteTitle,
		"emergency_mode_enabled": fmt.Sprintf("%t", settings.EmergencyModeEnabled),
		"sweep_interval_hours":   strconv.Itoa(settings.SweepIntervalHours),
	}

	// Save each setting
	for key, value := range settingsMap {
		var setting Setting
		result := db.Where("setting_key = ?", key).First(&setting)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				setting = Setting{
					Key:   key,
					Value: value,
					Type:  "string",
				}
				if err := db.Create(&setting).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
				continue
			}
			return fmt.Errorf("failed to read setting %s: %w", key, result.Error)
		}

		setting.Value = value
		if err := db.Save(&setting).Error; err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	appSettings = settings

	return nil
}

// Validate validates the settings struct
func (s *AppSettings) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

// IsEmergencyModeEnabled reports whether the operator enabled emergency mode
func (s *AppSettings) IsEmergencyModeEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.EmergencyModeEnabled
}

// SetEmergencyMode toggles emergency mode in memory
func (s *AppSettings) SetEmergencyMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EmergencyModeEnabled = enabled
}

// GetSweepIntervalHours returns the badge sweep interval in hours
func (s *AppSettings) GetSweepIntervalHours() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.SweepIntervalHours <= 0 {
		return 6
	}
	return s.SweepIntervalHours
}

// GetSiteTitle returns the configured site title
func (s *AppSettings) GetSiteTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SiteTitle
}
