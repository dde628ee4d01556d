package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/app/repository"
	"github.com/islandworks/tradewinds/internal/pkg/database"
	"github.com/islandworks/tradewinds/internal/pkg/verification"
)

type createProviderRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=150"`
	Phone       string     `json:"phone" validate:"max=30"`
	Description string     `json:"description" validate:"max=2000"`
	Island      string     `json:"island" validate:"required,oneof=STT STX STJ"`
	Plan        string     `json:"plan" validate:"omitempty,oneof=FREE PREMIUM"`
	PlanSource  string     `json:"plan_source" validate:"omitempty,oneof=FREE TRIAL ADMIN"`
	TrialEndAt  *time.Time `json:"trial_end_at"`
	CategoryIDs []uint     `json:"category_ids"`
	AreaIDs     []uint     `json:"area_ids"`
}

// HandleAdminCreateProvider creates a provider record: POST /api/v1/admin/providers
func HandleAdminCreateProvider(c *fiber.Ctx) error {
	var req createProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "INVALID_PROVIDER", "Malformed provider body")
	}
	if err := requestValidator.Struct(req); err != nil {
		return respondBadRequest(c, "INVALID_PROVIDER", err.Error())
	}

	provider := &models.Provider{
		Name:               req.Name,
		Phone:              req.Phone,
		Description:        req.Description,
		Island:             req.Island,
		LifecycleStatus:    models.LIFECYCLE_ACTIVE,
		AvailabilityStatus: models.AVAILABILITY_OPEN_NOW,
		Plan:               models.PLAN_FREE,
		PlanSource:         models.PLAN_SOURCE_FREE,
		TrialEndAt:         req.TrialEndAt,
	}
	if req.Plan != "" {
		provider.Plan = req.Plan
	}
	if req.PlanSource != "" {
		provider.PlanSource = req.PlanSource
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	if err := repos.Provider.Create(provider); err != nil {
		return respondInternalError(c, err, "Failed to create provider")
	}
	if len(req.CategoryIDs) > 0 {
		if err := repos.Provider.ReplaceCategories(provider.ID, req.CategoryIDs); err != nil {
			return respondInternalError(c, err, "Failed to assign categories")
		}
	}
	if len(req.AreaIDs) > 0 {
		if err := repos.Provider.ReplaceServiceAreas(provider.ID, req.AreaIDs); err != nil {
			return respondInternalError(c, err, "Failed to assign service areas")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(provider)
}

type lifecycleRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE ARCHIVED"`
}

// HandleAdminUpdateLifecycle changes the lifecycle status:
// PUT /api/v1/admin/providers/:uuid/lifecycle
func HandleAdminUpdateLifecycle(c *fiber.Ctx) error {
	var req lifecycleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "INVALID_LIFECYCLE", "Request body must contain a status")
	}
	if err := requestValidator.Struct(req); err != nil {
		return respondBadRequest(c, "INVALID_LIFECYCLE", "Status must be one of ACTIVE, INACTIVE, ARCHIVED")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	provider, err := repos.Provider.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}

	now := time.Now()
	if err := repos.Provider.UpdateLifecycle(provider.ID, req.Status, now); err != nil {
		return respondInternalError(c, err, "Failed to update lifecycle")
	}
	reconcileAfterMutation(provider.ID)

	provider.LifecycleStatus = req.Status
	provider.StatusLastUpdatedAt = now
	return c.JSON(provider)
}

// HandleAdminGrantBadge grants an administratively managed badge:
// POST /api/v1/admin/providers/:uuid/badges/:type
func HandleAdminGrantBadge(c *fiber.Ctx) error {
	badgeType := c.Params("type")
	if !models.IsValidBadgeType(badgeType) {
		return respondBadRequest(c, "INVALID_BADGE", "Unknown badge type")
	}
	if badgeType == models.BADGE_VERIFIED {
		// VERIFIED is owned by the lifecycle manager, not the admin console.
		return respondBadRequest(c, "INVALID_BADGE", "VERIFIED is granted automatically and cannot be set manually")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	provider, err := repos.Provider.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}

	now := time.Now()
	granted, err := repos.Badge.Grant(provider.ID, badgeType, now)
	if err != nil {
		return respondInternalError(c, err, "Failed to grant badge")
	}
	if granted {
		if err := repos.Provider.TouchStatus(provider.ID, now); err != nil {
			log.Errorf("failed to touch status for provider %d after badge grant: %v", provider.ID, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAdminRevokeBadge revokes an administratively managed badge:
// DELETE /api/v1/admin/providers/:uuid/badges/:type
func HandleAdminRevokeBadge(c *fiber.Ctx) error {
	badgeType := c.Params("type")
	if !models.IsValidBadgeType(badgeType) {
		return respondBadRequest(c, "INVALID_BADGE", "Unknown badge type")
	}
	if badgeType == models.BADGE_VERIFIED {
		return respondBadRequest(c, "INVALID_BADGE", "VERIFIED is revoked automatically and cannot be removed manually")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	provider, err := repos.Provider.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}

	now := time.Now()
	revoked, err := repos.Badge.Revoke(provider.ID, badgeType)
	if err != nil {
		return respondInternalError(c, err, "Failed to revoke badge")
	}
	if revoked {
		if err := repos.Provider.TouchStatus(provider.ID, now); err != nil {
			log.Errorf("failed to touch status for provider %d after badge revoke: %v", provider.ID, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAdminGetSettings returns the current operational settings:
// GET /api/v1/admin/settings
func HandleAdminGetSettings(c *fiber.Ctx) error {
	settings := models.GetAppSettings()
	if settings == nil {
		return respondInternalError(c, nil, "Settings not loaded")
	}
	return c.JSON(fiber.Map{
		"site_title":             settings.GetSiteTitle(),
		"emergency_mode_enabled": settings.IsEmergencyModeEnabled(),
		"sweep_interval_hours":   settings.GetSweepIntervalHours(),
	})
}

type emergencyModeRequest struct {
	Enabled bool `json:"enabled"`
}

// HandleAdminSetEmergencyMode toggles the operator emergency-mode flag:
// PUT /api/v1/admin/settings/emergency-mode
func HandleAdminSetEmergencyMode(c *fiber.Ctx) error {
	var req emergencyModeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "INVALID_SETTING", "Request body must contain enabled")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	value := strconv.FormatBool(req.Enabled)
	if err := repos.Setting.SetValue("emergency_mode_enabled", value); err != nil {
		return respondInternalError(c, err, "Failed to persist emergency mode")
	}
	if settings := models.GetAppSettings(); settings != nil {
		settings.SetEmergencyMode(req.Enabled)
	}

	log.Infof("[Admin] emergency mode set to %t", req.Enabled)
	return c.JSON(fiber.Map{"emergency_mode_enabled": req.Enabled})
}

// HandleAdminTriggerSweep runs the badge sweep immediately:
// POST /api/v1/admin/sweep
func HandleAdminTriggerSweep(c *fiber.Ctx) error {
	manager := verification.NewManager(database.GetDB())
	stats, err := manager.Sweep(time.Now())
	if err != nil {
		return respondInternalError(c, err, "Sweep failed")
	}
	return c.JSON(stats)
}
