package http

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

// HeaderTotalCount carries the number of cards matching a filtered list
// request across all pages.
const HeaderTotalCount = "X-Total-Count"

// CardHandler handles card-related requests
type CardHandler struct {
	cardService ports.CardService
	logger      *logger.Logger
	operations  *prometheus.CounterVec
}

// NewCardHandler creates a new card handler. operations may be nil; when
// set it must have the labels "operation" and "result".
func NewCardHandler(cardService ports.CardService, logger *logger.Logger, operations *prometheus.CounterVec) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger.WithComponent("card_handler"),
		operations:  operations,
	}
}

// Register mounts the card routes on g.
func (h *CardHandler) Register(g *echo.Group) {
	g.GET("", h.ListCards)
	g.GET("/templates", h.ListTemplates)
	g.GET("/default/:type", h.GetDefaultConfig)
	g.POST("", h.CreateCard)
	g.POST("/from-template/:templateId", h.CreateCardFromTemplate)
	g.PATCH("/positions/update", h.UpdatePositions)
	g.GET("/:id", h.GetCard)
	g.PATCH("/:id", h.UpdateCard)
	g.DELETE("/:id", h.DeleteCard)
}

// ListCards godoc
// @Summary List cards
// @Description Without query parameters returns every active card. With any filter returns one page of matching cards.
// @Tags cards
// @Produce json
// @Param type query string false "Card type"
// @Param isActive query bool false "Active flag"
// @Param userId query int false "Owner ID"
// @Param search query string false "Substring of title or description"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} entities.Card
// @Failure 400 {object} ports.ErrorResponse
// @Router /cards [get]
func (h *CardHandler) ListCards(c echo.Context) error {
	ctx := c.Request().Context()

	if len(c.QueryParams()) == 0 {
		cards, err := h.cardService.ListActiveCards(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, cards)
	}

	req, err := parseListQuery(c)
	if err != nil {
		return err
	}

	cards, total, err := h.cardService.ListCards(ctx, req)
	if err != nil {
		return err
	}

	c.Response().Header().Set(HeaderTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, cards)
}

// ListTemplates godoc
// @Summary List card templates
// @Tags cards
// @Produce json
// @Success 200 {array} entities.CardTemplate
// @Router /cards/templates [get]
func (h *CardHandler) ListTemplates(c echo.Context) error {
	templates, err := h.cardService.ListTemplates(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}

// GetDefaultConfig godoc
// @Summary Get the default config for a card type
// @Description Unknown types yield an empty object.
// @Tags cards
// @Produce json
// @Param type path string true "Card type"
// @Success 200 {object} map[string]interface{}
// @Router /cards/default/{type} [get]
func (h *CardHandler) GetDefaultConfig(c echo.Context) error {
	cfg := h.cardService.DefaultConfigFor(c.Request().Context(), c.Param("type"))
	return c.JSON(http.StatusOK, cfg)
}

// CreateCard godoc
// @Summary Create a card
// @Description Without a position the card is appended after the last card.
// @Tags cards
// @Accept json
// @Produce json
// @Param request body ports.CreateCardRequest true "Card data"
// @Success 201 {object} entities.Card
// @Failure 400 {object} ports.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) CreateCard(c echo.Context) error {
	var req ports.CreateCardRequest
	if err := c.Bind(&req); err != nil {
		return entities.InvalidInput("", "Invalid request format")
	}

	card, err := h.cardService.CreateCard(c.Request().Context(), req)
	h.record("create", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, card)
}

// CreateCardFromTemplate godoc
// @Summary Create a card from a template
// @Description The optional body replaces the template's default config.
// @Tags cards
// @Accept json
// @Produce json
// @Param templateId path string true "Template ID"
// @Param config body object false "Config override"
// @Success 201 {object} entities.Card
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/from-template/{templateId} [post]
func (h *CardHandler) CreateCardFromTemplate(c echo.Context) error {
	override, err := readOptionalConfig(c)
	if err != nil {
		return err
	}

	card, err := h.cardService.CreateCardFromTemplate(c.Request().Context(), c.Param("templateId"), override)
	h.record("create_from_template", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, card)
}

// GetCard godoc
// @Summary Get card by ID
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} entities.Card
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id} [get]
func (h *CardHandler) GetCard(c echo.Context) error {
	card, err := h.cardService.GetCard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

// UpdateCard godoc
// @Summary Update a card
// @Description Only the supplied fields change.
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body ports.UpdateCardRequest true "Fields to change"
// @Success 200 {object} entities.Card
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id} [patch]
func (h *CardHandler) UpdateCard(c echo.Context) error {
	var req ports.UpdateCardRequest
	if err := c.Bind(&req); err != nil {
		return entities.InvalidInput("", "Invalid request format")
	}

	card, err := h.cardService.UpdateCard(c.Request().Context(), c.Param("id"), req)
	h.record("update", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, card)
}

// DeleteCard godoc
// @Summary Delete a card
// @Tags cards
// @Param id path string true "Card ID"
// @Success 200
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c echo.Context) error {
	err := h.cardService.DeleteCard(c.Request().Context(), c.Param("id"))
	h.record("delete", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// UpdatePositions godoc
// @Summary Reorder cards
// @Description Each listed card gets its index as position. Nothing changes if any ID is unknown.
// @Tags cards
// @Accept json
// @Param ids body []string true "Card IDs in display order"
// @Success 200
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /cards/positions/update [patch]
func (h *CardHandler) UpdatePositions(c echo.Context) error {
	var ids ports.ReorderRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &ids); err != nil {
		return entities.InvalidInput("ids", "must be a JSON array of card ids")
	}

	err := h.cardService.ReorderCards(c.Request().Context(), ids)
	h.record("reorder", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *CardHandler) record(operation string, err error) {
	if h.operations == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = string(entities.KindOf(err))
	}
	h.operations.WithLabelValues(operation, result).Inc()
}

func parseListQuery(c echo.Context) (ports.ListCardsRequest, error) {
	var req ports.ListCardsRequest

	if v := c.QueryParam("type"); v != "" {
		req.Type = &v
	}
	if v := c.QueryParam("search"); v != "" {
		req.Search = &v
	}
	if v := c.QueryParam("isActive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, entities.InvalidInput("isActive", "must be true or false")
		}
		req.IsActive = &b
	}
	if v := c.QueryParam("userId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, entities.InvalidInput("userId", "must be an integer")
		}
		req.UserID = &id
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return req, entities.InvalidInput("page", "must be an integer")
		}
		req.Page = page
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return req, entities.InvalidInput("limit", "must be an integer")
		}
		req.Limit = limit
	}

	return req, nil
}

// readOptionalConfig decodes the request body as a config object. An empty
// body yields nil.
func readOptionalConfig(c echo.Context) (entities.Config, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, entities.InvalidInput("config", "unreadable request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	cfg, err := entities.ParseConfig(body)
	if err != nil {
		return nil, entities.InvalidInput("config", "must be a JSON object")
	}
	return cfg, nil
}
