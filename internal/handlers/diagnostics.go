package handlers

import (
	"time"

	"github.com/cardkeep/cardkeep-api/internal/middleware"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DiagnosticsHandler handles diagnostic routes
type DiagnosticsHandler struct {
	DB *gorm.DB
}

// TestDB handles GET /api/test-db
// @Summary Collection integrity report
// @Description Classify the caller's cards as valid or orphaned. Read-only,
// @Description orphans are reported, never repaired.
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} services.IntegrityReport
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /test-db [get]
func (h *DiagnosticsHandler) TestDB(c *fiber.Ctx) error {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c)
	}

	report, err := services.CheckCollectionIntegrity(h.DB, user.ID)
	if err != nil {
		return utils.InternalErrorResponse(c, "testDB", err)
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

// TestSimple handles GET /api/test-simple
// @Summary Liveness probe
// @Description Unauthenticated liveness check, touches nothing
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /test-simple [get]
func (h *DiagnosticsHandler) TestSimple(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "API is reachable",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
