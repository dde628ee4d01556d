package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/internal/pkg/cache"
	"github.com/islandworks/tradewinds/internal/pkg/database"
)

const (
	CacheKeyProvidersTotal  = "statistics:providers:total"
	CacheKeyProvidersActive = "statistics:providers:active"
	CacheKeyVerifiedTotal   = "statistics:providers:verified"
	CacheKeyEventsToday     = "statistics:events:today"
	CacheExpiration         = 30 * time.Minute
)

// StatisticsData holds the directory-wide counters for the public stats endpoint
type StatisticsData struct {
	TotalProviders    int `json:"total_providers"`
	ActiveProviders   int `json:"active_providers"`
	VerifiedProviders int `json:"verified_providers"`
	EventsToday       int `json:"events_today"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cache is due for a refresh
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes all counters from the database and stores
// them in Redis
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var total, active, verified, eventsToday int64
	if err := db.Model(&models.Provider{}).Count(&total).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Provider{}).Where("lifecycle_status = ?", models.LIFECYCLE_ACTIVE).Count(&active).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Badge{}).Where("badge_type = ?", models.BADGE_VERIFIED).Count(&verified).Error; err != nil {
		return err
	}
	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := db.Model(&models.ActivityEvent{}).Where("created_at >= ?", startOfDay).Count(&eventsToday).Error; err != nil {
		return err
	}

	for key, value := range map[string]int64{
		CacheKeyProvidersTotal:  total,
		CacheKeyProvidersActive: active,
		CacheKeyVerifiedTotal:   verified,
		CacheKeyEventsToday:     eventsToday,
	} {
		if err := cache.Set(key, strconv.FormatInt(value, 10), CacheExpiration); err != nil {
			return err
		}
	}

	return nil
}

// GetStatistics returns the cached counters, falling back to a refresh when
// the cache is cold
func GetStatistics() StatisticsData {
	data := StatisticsData{}

	total, err := cache.GetInt(CacheKeyProvidersTotal)
	if err != nil {
		// Cache miss, compute synchronously once
		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Failed to compute statistics: %v", err)
			return data
		}
		total, _ = cache.GetInt(CacheKeyProvidersTotal)
	}
	data.TotalProviders = total
	data.ActiveProviders, _ = cache.GetInt(CacheKeyProvidersActive)
	data.VerifiedProviders, _ = cache.GetInt(CacheKeyVerifiedTotal)
	data.EventsToday, _ = cache.GetInt(CacheKeyEventsToday)

	return data
}
