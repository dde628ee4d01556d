package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/islandworks/tradewinds/internal/pkg/statistics"
)

// HandleGetPing is a trivial health endpoint: GET /api/v1/ping
func HandleGetPing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ping": "pong"})
}

// HandleGetStats serves the cached directory counters: GET /api/v1/stats
func HandleGetStats(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()
	return c.JSON(statistics.GetStatistics())
}
