package handlers

import (
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles admin-only catalog routes
type AdminHandler struct {
	DB *gorm.DB
}

// ListCardDefinitions handles GET /api/admin/card-definitions
// @Summary List card definitions
// @Description Paginated view of the externally seeded card catalog
// @Tags Admin
// @Produce json
// @Param set query string false "Filter by set code"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.CardDefinitionPage
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/card-definitions [get]
func (h *AdminHandler) ListCardDefinitions(c *fiber.Ctx) error {
	page, err := services.ListCardDefinitions(
		h.DB,
		c.Query("set"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return utils.InternalErrorResponse(c, "listCardDefinitions", err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}
