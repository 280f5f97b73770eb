package ports

import (
	"context"
	"errors"
	"time"

	"github.com/cardboard/core/internal/domain/entities"
)

// CardRepository is the storage contract for cards. Update and Delete of a
// missing id return a not-found error and change nothing.
type CardRepository interface {
	Create(ctx context.Context, card *entities.Card) error
	GetByID(ctx context.Context, id string) (*entities.Card, error)
	Update(ctx context.Context, card *entities.Card) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter CardFilter) ([]*entities.Card, error)
	Count(ctx context.Context, filter CardFilter) (int64, error)
	// MaxPosition returns the highest position over all cards and false
	// when there are none.
	MaxPosition(ctx context.Context) (int, bool, error)
	// UpdatePositions assigns each id its index in ids, atomically. If any
	// id does not exist nothing is written.
	UpdatePositions(ctx context.Context, ids []string) error
}

// TemplateRepository is the storage contract for card templates.
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*entities.CardTemplate, error)
	// List returns all templates, most recently created first.
	List(ctx context.Context) ([]*entities.CardTemplate, error)
	// LatestByType returns the most recently created template of a type.
	LatestByType(ctx context.Context, cardType entities.CardType) (*entities.CardTemplate, error)
	// Upsert inserts a template or replaces the one with the same name,
	// returning the replaced template's type ("" for an insert).
	Upsert(ctx context.Context, template *entities.CardTemplate) (entities.CardType, error)
}

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// CardFilter holds the storage level predicates for listing cards.
type CardFilter struct {
	Type     *entities.CardType
	IsActive *bool
	UserID   *int64
	Search   *string
	Limit    int
	Offset   int
}
