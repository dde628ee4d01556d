package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/islandworks/tradewinds/app/repository"
	"github.com/islandworks/tradewinds/internal/pkg/ranking"
)

// HandleListProviders serves the public, ranked provider listing with keyset
// pagination: GET /api/v1/providers
func HandleListProviders(c *fiber.Ctx) error {
	mode := CurrentRankingMode()

	query := ranking.ListingQuery{
		Status:     c.Query("status"),
		Island:     c.Query("island"),
		CategoryID: c.Query("category_id"),
		AreaID:     c.Query("area_id"),
		Limit:      c.Query("limit"),
		Cursor:     c.Query("cursor"),
	}

	repo := repository.GetGlobalFactory().GetProviderRepository()
	result, err := repo.ListRanked(mode, query)
	if err != nil {
		return respondEngineError(c, err)
	}

	return c.JSON(result)
}
