package handlers

import (
	"github.com/cardkeep/cardkeep-api/internal/middleware"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CollectionHandler handles collection routes
type CollectionHandler struct {
	DB *gorm.DB
}

// ListCards handles GET /api/cards
// @Summary List owned cards
// @Description List the caller's cards with resolved catalog definitions.
// @Description Orphaned cards are included with a null definition.
// @Tags Collection
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /cards [get]
func (h *CollectionHandler) ListCards(c *fiber.Ctx) error {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c)
	}

	cards, err := services.ListUserCards(h.DB, user.ID)
	if err != nil {
		return utils.InternalErrorResponse(c, "listCards", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"cards": cards,
	})
}
