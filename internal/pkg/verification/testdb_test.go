package verification

import (
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/islandworks/tradewinds/app/models"
)

// setupTestDB connects to the MySQL instance named by TEST_DB_DSN. Tests
// that need a real database are skipped when it is not set.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database-backed test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Provider{},
		&models.Badge{},
		&models.ActivityEvent{},
		&models.Category{},
		&models.ServiceArea{},
		&models.ProviderCategory{},
		&models.ProviderServiceArea{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cleanup := func() {
		db.Exec("DELETE FROM provider_service_areas")
		db.Exec("DELETE FROM provider_categories")
		db.Exec("DELETE FROM activity_events")
		db.Exec("DELETE FROM badges")
		db.Exec("DELETE FROM service_areas")
		db.Exec("DELETE FROM categories")
		db.Exec("DELETE FROM providers")
	}
	cleanup()
	t.Cleanup(cleanup)

	return db
}

// seedCompleteProvider creates an ACTIVE provider with a full profile plus a
// category and a service area assignment, created at the given time.
func seedCompleteProvider(t *testing.T, db *gorm.DB, createdAt time.Time) *models.Provider {
	t.Helper()

	provider := &models.Provider{
		Name:                "Coral Bay Electric",
		Phone:               "340-555-0101",
		Description:         "Licensed residential and marine electrician.",
		Island:              models.ISLAND_STJ,
		LifecycleStatus:     models.LIFECYCLE_ACTIVE,
		AvailabilityStatus:  models.AVAILABILITY_OPEN_NOW,
		Plan:                models.PLAN_FREE,
		PlanSource:          models.PLAN_SOURCE_FREE,
		CreatedAt:           createdAt,
		StatusLastUpdatedAt: createdAt,
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("failed to seed provider: %v", err)
	}

	category := &models.Category{Name: "Electrician"}
	if err := db.Where("name = ?", category.Name).FirstOrCreate(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	area := &models.ServiceArea{Name: "Coral Bay", Island: models.ISLAND_STJ}
	if err := db.Create(area).Error; err != nil {
		t.Fatalf("failed to seed service area: %v", err)
	}
	if err := db.Create(&models.ProviderCategory{ProviderID: provider.ID, CategoryID: category.ID}).Error; err != nil {
		t.Fatalf("failed to assign category: %v", err)
	}
	if err := db.Create(&models.ProviderServiceArea{ProviderID: provider.ID, ServiceAreaID: area.ID}).Error; err != nil {
		t.Fatalf("failed to assign service area: %v", err)
	}

	return provider
}

// seedEvent appends one activity event at the given time.
func seedEvent(t *testing.T, db *gorm.DB, providerID uint, eventType string, at time.Time) {
	t.Helper()

	event := models.ActivityEvent{ProviderID: providerID, EventType: eventType, CreatedAt: at}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
}

// seedQualifyingActivity records genuine usage on enough distinct days plus
// one customer interaction, all around the given anchor time.
func seedQualifyingActivity(t *testing.T, db *gorm.DB, providerID uint, anchor time.Time) {
	t.Helper()

	for day := 0; day < MinDistinctActiveDays; day++ {
		seedEvent(t, db, providerID, models.EVENT_LOGIN, anchor.AddDate(0, 0, -day))
	}
	seedEvent(t, db, providerID, models.EVENT_CONTACT_CALL, anchor)
}

func hasVerifiedBadge(t *testing.T, db *gorm.DB, providerID uint) bool {
	t.Helper()

	var count int64
	err := db.Model(&models.Badge{}).
		Where("provider_id = ? AND badge_type = ?", providerID, models.BADGE_VERIFIED).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count badges: %v", err)
	}
	return count > 0
}
