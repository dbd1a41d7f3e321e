package handlers

import (
	"encoding/json"

	"github.com/cardkeep/cardkeep-api/internal/middleware"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/internal/utils"
	"github.com/cardkeep/cardkeep-api/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// PackHandler proxies pack-opening requests to the external pack function
type PackHandler struct {
	Packs *services.PackClient
}

// OpenPack handles POST /api/open-pack
// @Summary Open a pack
// @Description Forward a validated pack request to the external pack function
// @Description and relay its status and body verbatim
// @Tags Packs
// @Accept json
// @Produce json
// @Param body body validation.OpenPackRequest true "Pack request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 405 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /open-pack [post]
func (h *PackHandler) OpenPack(c *fiber.Ctx) error {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c)
	}

	body := c.Body()
	if err := validation.ValidateOpenPack(body); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	var req validation.OpenPackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.Packs.OpenPack(user.ID, req.SetCode, req.Quantity)
	if err != nil {
		return utils.InternalErrorResponse(c, "openPack", err)
	}

	// Passthrough: the pack function owns the response shape for both
	// success and failure
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(result.StatusCode).Send(result.Body)
}
