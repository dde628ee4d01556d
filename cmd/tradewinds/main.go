package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/islandworks/tradewinds/app/models"
	"github.com/islandworks/tradewinds/app/repository"
	"github.com/islandworks/tradewinds/internal/pkg/cache"
	"github.com/islandworks/tradewinds/internal/pkg/database"
	"github.com/islandworks/tradewinds/internal/pkg/env"
	"github.com/islandworks/tradewinds/internal/pkg/router"
	"github.com/islandworks/tradewinds/internal/pkg/scheduler"
)

func main() {
	app := NewApplication()

	// Start badge sweep and maintenance tickers
	scheduler.GetManager().Start()

	// Stop background work cleanly on SIGINT/SIGTERM
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		scheduler.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	if err != nil {
		log.Fatal(err)
	}
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())
	if err := models.LoadSettings(database.GetDB()); err != nil {
		log.Printf("Warning: could not load settings: %v", err)
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "Tradewinds",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
