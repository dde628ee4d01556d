package scheduler

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/internal/pkg/database"
	"github.com/islandworks/tradewinds/internal/pkg/statistics"
	"github.com/islandworks/tradewinds/internal/pkg/verification"
)

const (
	settingsReloadInterval = 1 * time.Minute
	statsRefreshInterval   = 5 * time.Minute
)

// Manager runs the periodic maintenance work: the badge sweep, settings
// reload (so emergency-mode toggles propagate across processes) and the
// statistics cache refresh.
type Manager struct {
	sweepTicker    *time.Ticker
	settingsTicker *time.Ticker
	statsTicker    *time.Ticker
	stopCh         chan struct{}
	wg             sync.WaitGroup
	mu             sync.Mutex
	running        bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global scheduler manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// Start starts the background tickers
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so the manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[Scheduler] Starting background tasks")

	sweepInterval := 6 * time.Hour
	if settings := models.GetAppSettings(); settings != nil {
		sweepInterval = time.Duration(settings.GetSweepIntervalHours()) * time.Hour
	}

	m.sweepTicker = time.NewTicker(sweepInterval)
	m.wg.Add(1)
	go m.sweepWorker()

	m.settingsTicker = time.NewTicker(settingsReloadInterval)
	m.wg.Add(1)
	go m.settingsWorker()

	m.statsTicker = time.NewTicker(statsRefreshInterval)
	m.wg.Add(1)
	go m.statsWorker()

	log.Infof("[Scheduler] Started successfully (sweep interval: %s)", sweepInterval)
}

// Stop stops the background tickers and waits for workers to finish
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Scheduler] Stopping background tasks...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}
	if m.settingsTicker != nil {
		m.settingsTicker.Stop()
	}
	if m.statsTicker != nil {
		m.statsTicker.Stop()
	}

	close(m.stopCh)
	m.running = false

	m.wg.Wait()

	log.Info("[Scheduler] Stopped successfully")
}

// sweepWorker runs the badge reconciliation + decay sweep on its interval
func (m *Manager) sweepWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Sweep worker stopping")
			return
		case <-m.sweepTicker.C:
			m.runSweepOnce()
		}
	}
}

func (m *Manager) runSweepOnce() {
	db := database.GetDB()
	if db == nil {
		log.Error("[Scheduler] Sweep skipped: database connection is nil")
		return
	}
	manager := verification.NewManager(db)
	if _, err := manager.Sweep(time.Now()); err != nil {
		log.Errorf("[Scheduler] Sweep failed: %v", err)
	}
}

// settingsWorker re-reads the settings rows so operator toggles (emergency
// mode) take effect without a restart
func (m *Manager) settingsWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Settings worker stopping")
			return
		case <-m.settingsTicker.C:
			db := database.GetDB()
			if db == nil {
				continue
			}
			if err := models.LoadSettings(db); err != nil {
				log.Errorf("[Scheduler] Settings reload failed: %v", err)
			}
		}
	}
}

// statsWorker keeps the Redis statistics counters warm
func (m *Manager) statsWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Stats worker stopping")
			return
		case <-m.statsTicker.C:
			statistics.UpdateCacheIfNeeded()
		}
	}
}
