package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/app/repository"
	"github.com/islandworks/tradewinds/internal/pkg/ranking"
)

var requestValidator = validator.New()

// HandleGetProvider serves the public provider detail view and records the
// profile view as an activity event: GET /api/v1/providers/:uuid
func HandleGetProvider(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	provider, err := repos.Provider.GetByUUIDWithRelations(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}
	if provider.IsArchived() {
		return respondNotFound(c, "Provider not found")
	}

	if err := repos.Activity.Record(provider.ID, models.EVENT_PROFILE_VIEW); err != nil {
		log.Errorf("failed to record profile view for provider %d: %v", provider.ID, err)
	} else {
		reconcileAfterMutation(provider.ID)
	}

	lastActive, err := repos.Activity.LastActiveAt(provider.ID)
	if err != nil {
		return respondInternalError(c, err, "Failed to load provider activity")
	}

	return c.JSON(ranking.Annotate(provider, provider.Badges, lastActive, time.Now()))
}

type contactRequest struct {
	Channel string `json:"channel" validate:"required,oneof=CALL SMS WHATSAPP"`
}

// HandleContactProvider logs a customer interaction over one of the contact
// channels: POST /api/v1/providers/:uuid/contact
func HandleContactProvider(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "INVALID_CHANNEL", "Request body must contain a contact channel")
	}
	if err := requestValidator.Struct(req); err != nil {
		return respondBadRequest(c, "INVALID_CHANNEL", "Channel must be one of CALL, SMS, WHATSAPP")
	}
	eventType, _ := models.ContactChannelEventType(req.Channel)

	repos := repository.GetGlobalFactory().GetRepositories()
	provider, err := repos.Provider.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}

	if err := repos.Activity.Record(provider.ID, eventType); err != nil {
		return respondInternalError(c, err, "Failed to record interaction")
	}
	reconcileAfterMutation(provider.ID)

	return c.SendStatus(fiber.StatusNoContent)
}

type profileUpdateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Phone       string `json:"phone" validate:"max=30"`
	Description string `json:"description" validate:"max=2000"`
	Island      string `json:"island" validate:"required,oneof=STT STX STJ"`
	CategoryIDs []uint `json:"category_ids"`
	AreaIDs     []uint `json:"area_ids"`
}

// HandleUpdateProfile applies a provider self-service profile edit and
// reconciles the verification badge afterwards: PUT /api/v1/providers/:uuid/profile
func HandleUpdateProfile(c *fiber.Ctx) error {
	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "INVALID_PROFILE", "Malformed profile body")
	}
	if err := requestValidator.Struct(req); err != nil {
		return respondBadRequest(c, "INVALID_PROFILE", err.Error())
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	provider, err := repos.Provider.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}

	provider.Name = req.Name
	provider.Phone = req.Phone
	provider.Description = req.Description
	provider.Island = req.Island
	if err := repos.Provider.Update(provider); err != nil {
		return respondInternalError(c, err, "Failed to update profile")
	}
	if req.CategoryIDs != nil {
		if err := repos.Provider.ReplaceCategories(provider.ID, req.CategoryIDs); err != nil {
			return respondInternalError(c, err, "Failed to update categories")
		}
	}
	if req.AreaIDs != nil {
		if err := repos.Provider.ReplaceServiceAreas(provider.ID, req.AreaIDs); err != nil {
			return respondInternalError(c, err, "Failed to update service areas")
		}
	}

	reconcileAfterMutation(provider.ID)

	return c.JSON(provider)
}

type availabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN_NOW BUSY_LIMITED NOT_TAKING_WORK"`
}

// HandleUpdateAvailability changes the availability status, records the
// status activity, and reconciles: PUT /api/v1/providers/:uuid/availability
func HandleUpdateAvailability(c *fiber.Ctx) error {
	var req availabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "INVALID_STATUS", "Request body must contain a status")
	}
	if err := requestValidator.Struct(req); err != nil {
		return respondBadRequest(c, "INVALID_STATUS", "Status must be one of OPEN_NOW, BUSY_LIMITED, NOT_TAKING_WORK")
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
	if err := repos.Provider.UpdateAvailability(provider.ID, req.Status, now); err != nil {
		return respondInternalError(c, err, "Failed to update availability")
	}
	if err := repos.Activity.Record(provider.ID, models.EVENT_STATUS_UPDATE); err != nil {
		log.Errorf("failed to record status update for provider %d: %v", provider.ID, err)
	}
	if req.Status == models.AVAILABILITY_OPEN_NOW {
		if err := repos.Activity.Record(provider.ID, models.EVENT_OPENED_FOR_WORK); err != nil {
			log.Errorf("failed to record opened-for-work for provider %d: %v", provider.ID, err)
		}
	}

	reconcileAfterMutation(provider.ID)

	provider.AvailabilityStatus = req.Status
	provider.StatusLastUpdatedAt = now
	return c.JSON(provider)
}

// HandleProviderLoginEvent records a login signal from the external auth
// system: POST /api/v1/providers/:uuid/login-events
func HandleProviderLoginEvent(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()
	provider, err := repos.Provider.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return respondNotFound(c, "Provider not found")
		}
		return respondInternalError(c, err, "Failed to load provider")
	}

	if err := repos.Activity.Record(provider.ID, models.EVENT_LOGIN); err != nil {
		return respondInternalError(c, err, "Failed to record login")
	}
	reconcileAfterMutation(provider.ID)

	return c.SendStatus(fiber.StatusNoContent)
}
