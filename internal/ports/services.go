package ports

import (
	"context"

	"github.com/cardboard/core/internal/domain/entities"
)

// CardService interface for card management operations
type CardService interface {
	// ListCards returns one page of matching cards and the total match count.
	ListCards(ctx context.Context, filter ListCardsRequest) ([]*entities.Card, int64, error)
	ListActiveCards(ctx context.Context) ([]*entities.Card, error)
	GetCard(ctx context.Context, id string) (*entities.Card, error)
	CreateCard(ctx context.Context, req CreateCardRequest) (*entities.Card, error)
	UpdateCard(ctx context.Context, id string, req UpdateCardRequest) (*entities.Card, error)
	DeleteCard(ctx context.Context, id string) error
	ReorderCards(ctx context.Context, ids []string) error
	ListTemplates(ctx context.Context) ([]*entities.CardTemplate, error)
	CreateCardFromTemplate(ctx context.Context, templateID string, override entities.Config) (*entities.Card, error)
	DefaultConfigFor(ctx context.Context, cardType string) entities.Config
}

// TemplateService interface for the template administration path
type TemplateService interface {
	UpsertTemplate(ctx context.Context, req UpsertTemplateRequest) (*entities.CardTemplate, error)
	SeedBuiltinTemplates(ctx context.Context) ([]*entities.CardTemplate, error)
}

// Card related types
type CreateCardRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Type        string  `json:"type" validate:"required,cardtype"`
	Config      any     `json:"config" validate:"required"`
	Position    *int    `json:"position" validate:"omitempty,min=0"`
	UserID      *int64  `json:"userId"`
}

// UpdateCardRequest carries a partial update. A nil field is left unchanged.
type UpdateCardRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Type        *string `json:"type" validate:"omitempty,cardtype"`
	Config      any     `json:"config"`
	Position    *int    `json:"position" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"isActive"`
}

// ListCardsRequest is the caller facing filter. Page and Limit default to
// DefaultPage and DefaultLimit when zero.
type ListCardsRequest struct {
	Type     *string `json:"type" validate:"omitempty,cardtype"`
	IsActive *bool   `json:"isActive"`
	UserID   *int64  `json:"userId"`
	Search   *string `json:"search"`
	Page     int     `json:"page" validate:"omitempty,min=1"`
	Limit    int     `json:"limit" validate:"omitempty,min=1"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ReorderRequest is the ordered list of card ids; index becomes position.
type ReorderRequest []string

// Template related types
type UpsertTemplateRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Type          string  `json:"type" validate:"required,cardtype"`
	DefaultConfig any     `json:"defaultConfig" validate:"required"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	Preview       *string `json:"preview"`
}

// Response types for pagination and common structures
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    entities.ErrorKind `json:"code"`
	Message string             `json:"message"`
	Field   string             `json:"field,omitempty"`
}
