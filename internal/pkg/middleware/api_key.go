package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/islandworks/tradewinds/internal/pkg/env"
)

// APIKeyAuth authenticates requests carrying an API key header against the
// key configured under the given environment variable. Used with
// SERVICE_API_KEY for the provider self-service surface (the external auth
// collaborator calls in with it) and ADMIN_API_KEY for the admin console.
func APIKeyAuth(envKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		configured := env.GetEnv(envKey, "")
		if configured == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "service_unavailable", "message": "API key not configured"})
		}

		apiKey := extractAPIKeyFromHeader(c)
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing API key"})
		}

		// Hash both sides so the comparison is constant time over equal-length input.
		got := sha256.Sum256([]byte(apiKey))
		want := sha256.Sum256([]byte(configured))
		if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API key"})
		}

		return c.Next()
	}
}

func extractAPIKeyFromHeader(c *fiber.Ctx) string {
	apiKey := strings.TrimSpace(c.Get("X-API-Key"))
	if apiKey != "" {
		return apiKey
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
