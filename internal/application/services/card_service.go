package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

// CardService handles card-related operations
type CardService struct {
	cardRepo     ports.CardRepository
	templateRepo ports.TemplateRepository
	ordering     *OrderingEngine
	resolver     *DefaultResolver
	validate     *validator.Validate
	logger       *logger.Logger
}

var _ ports.CardService = (*CardService)(nil)

// NewCardService creates a new card service
func NewCardService(
	cardRepo ports.CardRepository,
	templateRepo ports.TemplateRepository,
	resolver *DefaultResolver,
	validate *validator.Validate,
	logger *logger.Logger,
) *CardService {
	return &CardService{
		cardRepo:     cardRepo,
		templateRepo: templateRepo,
		ordering:     NewOrderingEngine(cardRepo),
		resolver:     resolver,
		validate:     validate,
		logger:       logger.WithComponent("card_service"),
	}
}

// ListCards retrieves cards with filtering and pagination
func (s *CardService) ListCards(ctx context.Context, req ports.ListCardsRequest) ([]*entities.Card, int64, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, 0, err
	}

	page, limit := req.Page, req.Limit
	if page == 0 {
		page = ports.DefaultPage
	}
	if limit == 0 {
		limit = ports.DefaultLimit
	}
	if page-1 > math.MaxInt32/limit {
		return nil, 0, entities.InvalidInput("page", "is out of range")
	}

	filter := ports.CardFilter{
		IsActive: req.IsActive,
		UserID:   req.UserID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if req.Type != nil {
		ct := entities.CardType(*req.Type)
		if !ct.IsValid() {
			return nil, 0, entities.InvalidInput("type", fmt.Sprintf("must be one of %s", cardTypeList()))
		}
		filter.Type = &ct
	}
	if req.Search != nil && *req.Search != "" {
		filter.Search = req.Search
	}

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}

	total, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	return cards, total, nil
}

// ListActiveCards returns every active card in board order.
func (s *CardService) ListActiveCards(ctx context.Context) ([]*entities.Card, error) {
	active := true
	cards, err := s.cardRepo.List(ctx, ports.CardFilter{IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list active cards: %w", err)
	}
	return cards, nil
}

// GetCard retrieves a card by ID
func (s *CardService) GetCard(ctx context.Context, id string) (*entities.Card, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entities.InvalidInput("id", "is required")
	}

	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// CreateCard creates a new card. Without an explicit position it is placed
// after the last card.
func (s *CardService) CreateCard(ctx context.Context, req ports.CreateCardRequest) (*entities.Card, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, entities.InvalidInput("title", "must not be blank")
	}

	config, err := requireObject("config", req.Config)
	if err != nil {
		return nil, err
	}

	cardType := entities.CardType(req.Type)
	s.checkConfigShape(cardType, config)

	card := entities.NewCard(req.Title, req.Description, cardType, config, req.UserID)
	if req.Position != nil {
		card.Position = *req.Position
	} else {
		position, err := s.ordering.NextPosition(ctx)
		if err != nil {
			return nil, err
		}
		card.Position = position
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.LogCardAction("create", card.ID, map[string]interface{}{
		"type":     card.Type,
		"position": card.Position,
	})

	return card, nil
}

// UpdateCard applies the supplied fields of req and leaves the rest alone.
func (s *CardService) UpdateCard(ctx context.Context, id string, req ports.UpdateCardRequest) (*entities.Card, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, entities.InvalidInput("title", "must not be blank")
	}
	if req.Type != nil && !entities.CardType(*req.Type).IsValid() {
		return nil, entities.InvalidInput("type", fmt.Sprintf("must be one of %s", cardTypeList()))
	}

	var config entities.Config
	if req.Config != nil {
		cfg, err := requireObject("config", req.Config)
		if err != nil {
			return nil, err
		}
		config = cfg
	}

	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = req.Description
	}
	if req.Type != nil {
		card.Type = entities.CardType(*req.Type)
	}
	if config != nil {
		card.Config = config
	}
	if req.Position != nil {
		card.Position = *req.Position
	}
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	if req.Type != nil || config != nil {
		s.checkConfigShape(card.Type, card.Config)
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	s.logger.LogCardAction("update", card.ID, nil)

	return card, nil
}

// DeleteCard permanently removes a card.
func (s *CardService) DeleteCard(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return entities.InvalidInput("id", "is required")
	}

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.logger.LogCardAction("delete", id, nil)

	return nil
}

// ReorderCards gives ids[i] position i.
func (s *CardService) ReorderCards(ctx context.Context, ids []string) error {
	if err := s.ordering.Reorder(ctx, ids); err != nil {
		return err
	}

	s.logger.Infow("Cards reordered", "count", len(ids))
	return nil
}

// ListTemplates returns all templates, newest first.
func (s *CardService) ListTemplates(ctx context.Context) ([]*entities.CardTemplate, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// CreateCardFromTemplate creates a card named after the template. A
// non-empty override replaces the template's config wholesale.
func (s *CardService) CreateCardFromTemplate(ctx context.Context, templateID string, override entities.Config) (*entities.Card, error) {
	if strings.TrimSpace(templateID) == "" {
		return nil, entities.InvalidInput("templateId", "is required")
	}

	tmpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	config := tmpl.DefaultConfig
	if !override.IsEmpty() {
		config = override
	}
	if config == nil {
		config = entities.Config{}
	}

	return s.CreateCard(ctx, ports.CreateCardRequest{
		Title:       tmpl.Name,
		Description: tmpl.Description,
		Type:        string(tmpl.Type),
		Config:      config,
	})
}

// DefaultConfigFor returns the starting config for a card type. Unknown
// types get an empty config.
func (s *CardService) DefaultConfigFor(ctx context.Context, cardType string) entities.Config {
	return s.resolver.Resolve(ctx, cardType)
}

// checkConfigShape logs configs whose variant payload or style does not
// decode. Such configs are still stored as given.
func (s *CardService) checkConfigShape(cardType entities.CardType, cfg entities.Config) {
	schema, ok := entities.SchemaFor(cardType)
	if !ok {
		return
	}
	if _, err := schema.Decode(cfg); err != nil {
		s.logger.WithError(err).Warnw("Card config payload does not match its type", "type", cardType)
	}
	if _, err := cfg.Style(); err != nil {
		s.logger.WithError(err).Warnw("Card style is malformed", "type", cardType)
	}
}
