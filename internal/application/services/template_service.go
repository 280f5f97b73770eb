package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

// TemplateService maintains the template catalogue.
type TemplateService struct {
	templateRepo ports.TemplateRepository
	resolver     *DefaultResolver
	validate     *validator.Validate
	logger       *logger.Logger
}

var _ ports.TemplateService = (*TemplateService)(nil)

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo ports.TemplateRepository, resolver *DefaultResolver, validate *validator.Validate, logger *logger.Logger) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		resolver:     resolver,
		validate:     validate,
		logger:       logger.WithComponent("template_service"),
	}
}

// UpsertTemplate creates a template or replaces the one with the same name.
func (s *TemplateService) UpsertTemplate(ctx context.Context, req ports.UpsertTemplateRequest) (*entities.CardTemplate, error) {
	if err := validate(s.validate, req); err != nil {
		return nil, err
	}

	config, err := requireObject("defaultConfig", req.DefaultConfig)
	if err != nil {
		return nil, err
	}

	tmpl := &entities.CardTemplate{
		Name:          req.Name,
		Type:          entities.CardType(req.Type),
		DefaultConfig: config,
		Description:   req.Description,
		Preview:       req.Preview,
	}

	previous, err := s.templateRepo.Upsert(ctx, tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert template: %w", err)
	}

	s.resolver.Invalidate(ctx, tmpl.Type)
	if previous != "" && previous != tmpl.Type {
		s.resolver.Invalidate(ctx, previous)
	}

	s.logger.Infow("Template saved", "template_id", tmpl.ID, "name", tmpl.Name, "type", tmpl.Type)

	return tmpl, nil
}

// SeedBuiltinTemplates upserts one template per card type carrying the
// built-in default config. Running it again refreshes the same rows.
func (s *TemplateService) SeedBuiltinTemplates(ctx context.Context) ([]*entities.CardTemplate, error) {
	seeded := make([]*entities.CardTemplate, 0, len(entities.CardTypes))
	for _, ct := range entities.CardTypes {
		config, _ := entities.BuiltinDefault(ct)
		description := fmt.Sprintf("Default %s card", ct)

		tmpl, err := s.UpsertTemplate(ctx, ports.UpsertTemplateRequest{
			Name:          builtinTemplateName(ct),
			Type:          string(ct),
			DefaultConfig: config,
			Description:   &description,
		})
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %s template: %w", ct, err)
		}
		seeded = append(seeded, tmpl)
	}
	return seeded, nil
}

func builtinTemplateName(ct entities.CardType) string {
	return "Basic " + string(ct)
}
