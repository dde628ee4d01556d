package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/internal/pkg/database"
	"github.com/islandworks/tradewinds/internal/pkg/ranking"
	"github.com/islandworks/tradewinds/internal/pkg/verification"
)

// CurrentRankingMode reads the emergency-mode flag once and fixes the
// comparator shape for the rest of the request. Query building and cursor
// handling must all use this one value.
func CurrentRankingMode() ranking.Mode {
	settings := models.GetAppSettings()
	emergency := settings != nil && settings.IsEmergencyModeEnabled()
	return ranking.NewMode(emergency)
}

// respondEngineError maps engine errors to the API error envelope:
// validation errors keep their stable code, everything else is an opaque 500.
func respondEngineError(c *fiber.Ctx, err error) error {
	if ve, ok := ranking.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Code, "message": ve.Message})
	}
	log.Errorf("listing request failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Request failed"})
}

func respondNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": message})
}

func respondBadRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": code, "message": message})
}

func respondInternalError(c *fiber.Ctx, err error, message string) error {
	log.Errorf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": message})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// reconcileAfterMutation runs the badge reconciliation that every qualifying
// mutation triggers. Reconciliation failures are logged, never surfaced to
// the caller whose write already succeeded.
func reconcileAfterMutation(providerID uint) {
	manager := verification.NewManager(database.GetDB())
	if err := manager.ReconcileProvider(providerID, time.Now()); err != nil {
		log.Errorf("post-mutation reconcile for provider %d failed: %v", providerID, err)
	}
}
