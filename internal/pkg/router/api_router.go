package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/islandworks/tradewinds/app/controllers"
	"github.com/islandworks/tradewinds/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")
	v1.Get("/ping", controllers.HandleGetPing)
	v1.Get("/stats", controllers.HandleGetStats)

	// Public listing and detail
	v1.Get("/providers", controllers.HandleListProviders)
	v1.Get("/providers/:uuid", controllers.HandleGetProvider)
	v1.Post("/providers/:uuid/contact", controllers.HandleContactProvider)

	// Provider self-service, called through the external auth collaborator
	serviceAuth := middleware.APIKeyAuth("SERVICE_API_KEY")
	v1.Put("/providers/:uuid/profile", serviceAuth, controllers.HandleUpdateProfile)
	v1.Put("/providers/:uuid/availability", serviceAuth, controllers.HandleUpdateAvailability)
	v1.Post("/providers/:uuid/login-events", serviceAuth, controllers.HandleProviderLoginEvent)

	// Admin console
	admin := v1.Group("/admin", middleware.APIKeyAuth("ADMIN_API_KEY"))
	admin.Post("/providers", controllers.HandleAdminCreateProvider)
	admin.Put("/providers/:uuid/lifecycle", controllers.HandleAdminUpdateLifecycle)
	admin.Post("/providers/:uuid/badges/:type", controllers.HandleAdminGrantBadge)
	admin.Delete("/providers/:uuid/badges/:type", controllers.HandleAdminRevokeBadge)
	admin.Get("/settings", controllers.HandleAdminGetSettings)
	admin.Put("/settings/emergency-mode", controllers.HandleAdminSetEmergencyMode)
	admin.Post("/sweep", controllers.HandleAdminTriggerSweep)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
