package handlers

import (
	"strings"

	"github.com/cardkeep/cardkeep-api/internal/middleware"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/internal/types"
	"github.com/cardkeep/cardkeep-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DeckHandler handles deck routes
type DeckHandler struct {
	DB *gorm.DB
}

// ListDecks handles GET /api/decks
// @Summary List decks
// @Description List the caller's decks, most recently updated first
// @Tags Decks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /decks [get]
func (h *DeckHandler) ListDecks(c *fiber.Ctx) error {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c)
	}

	decks, err := services.ListDecks(h.DB, user.ID)
	if err != nil {
		return utils.InternalErrorResponse(c, "listDecks", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"decks": decks,
	})
}

// CreateDeck handles POST /api/decks
// @Summary Create deck
// @Description Create a deck, optionally with an initial card list. The deck
// @Description and its cards are written in one transaction.
// @Tags Decks
// @Accept json
// @Produce json
// @Param body body object true "Deck payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /decks [post]
func (h *DeckHandler) CreateDeck(c *fiber.Ctx) error {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c)
	}

	var body struct {
		Name        string                                 `json:"name"`
		Description string                                 `json:"description"`
		Format      string                                 `json:"format"`
		Cards       types.FlexList[services.DeckCardInput] `json:"cards"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		return utils.ErrorResponse(c, "Deck name is required", fiber.StatusBadRequest)
	}

	cards := body.Cards.Slice()
	for _, card := range cards {
		if strings.TrimSpace(card.UserCardID) == "" {
			return utils.ErrorResponse(c, "Card user_card_id is required", fiber.StatusBadRequest)
		}
		if card.Qty != nil && card.Qty.Int() < 1 {
			return utils.ErrorResponse(c, "Card qty must be at least 1", fiber.StatusBadRequest)
		}
	}

	deck, err := services.CreateDeck(h.DB, user.ID, services.CreateDeckInput{
		Name:        name,
		Description: body.Description,
		Format:      body.Format,
		Cards:       cards,
	})
	if err != nil {
		return utils.InternalErrorResponse(c, "createDeck", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deck": deck,
	})
}

// GetDeck handles GET /api/decks/:id
// @Summary Get deck
// @Description Get one of the caller's decks with its cards
// @Tags Decks
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /decks/{id} [get]
func (h *DeckHandler) GetDeck(c *fiber.Ctx) error {
	user := middleware.GetAuthUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c)
	}

	deck, err := services.GetDeck(h.DB, user.ID, c.Params("id"))
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Deck not found")
		}
		return utils.InternalErrorResponse(c, "getDeck", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deck": deck,
	})
}
