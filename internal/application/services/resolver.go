package services

import (
	"context"
	"errors"
	"time"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

const defaultConfigKeyPrefix = "default_config:"

// configSource yields a default config for a card type, or false to let the
// next source in the chain answer.
type configSource func(ctx context.Context, cardType string) (entities.Config, bool)

// cachedDefault is what the resolver stores per type. Found=false records
// that no template exists so the miss is not recomputed on every call.
type cachedDefault struct {
	Found  bool            `json:"found"`
	Config entities.Config `json:"config,omitempty"`
}

// DefaultResolver answers "what config should a new card of this type
// start with": the newest template of the type, then the built-in default,
// then an empty object. It never fails.
type DefaultResolver struct {
	templates ports.TemplateRepository
	cache     ports.CacheRepository
	ttl       time.Duration
	logger    *logger.Logger
	chain     []configSource
}

// NewDefaultResolver creates a resolver. cache may be nil.
func NewDefaultResolver(templates ports.TemplateRepository, cache ports.CacheRepository, ttl time.Duration, log *logger.Logger) *DefaultResolver {
	r := &DefaultResolver{
		templates: templates,
		cache:     cache,
		ttl:       ttl,
		logger:    log.WithComponent("default_resolver"),
	}
	r.chain = []configSource{r.fromTemplate, fromBuiltin}
	return r
}

// Resolve returns a fresh copy of the default config for cardType.
func (r *DefaultResolver) Resolve(ctx context.Context, cardType string) entities.Config {
	for _, source := range r.chain {
		if cfg, ok := source(ctx, cardType); ok {
			return cfg
		}
	}
	return entities.Config{}
}

// Invalidate drops any cached answer for cardType.
func (r *DefaultResolver) Invalidate(ctx context.Context, cardType entities.CardType) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, defaultConfigKeyPrefix+string(cardType)); err != nil {
		r.logger.WithError(err).Warnw("Failed to invalidate cached default config", "type", cardType)
	}
}

func (r *DefaultResolver) fromTemplate(ctx context.Context, cardType string) (entities.Config, bool) {
	ct := entities.CardType(cardType)
	if !ct.IsValid() {
		return nil, false
	}

	key := defaultConfigKeyPrefix + cardType
	if r.cache != nil {
		var cached cachedDefault
		err := r.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			if !cached.Found {
				return nil, false
			}
			return nonNil(cached.Config), true
		case !errors.Is(err, ports.ErrCacheMiss):
			r.logger.WithError(err).Warnw("Default config cache read failed", "type", cardType)
		}
	}

	tmpl, err := r.templates.LatestByType(ctx, ct)
	var result cachedDefault
	switch {
	case err == nil:
		result = cachedDefault{Found: true, Config: tmpl.DefaultConfig}
	case errors.Is(err, entities.ErrNotFound):
		result = cachedDefault{Found: false}
	default:
		// Storage trouble is not cached so the next call retries.
		r.logger.WithError(err).Errorw("Template lookup failed, using built-in default", "type", cardType)
		return nil, false
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, result, r.ttl); err != nil {
			r.logger.WithError(err).Warnw("Default config cache write failed", "type", cardType)
		}
	}

	if !result.Found {
		return nil, false
	}
	return nonNil(result.Config.Clone()), true
}

func fromBuiltin(_ context.Context, cardType string) (entities.Config, bool) {
	return entities.BuiltinDefault(entities.CardType(cardType))
}

func nonNil(cfg entities.Config) entities.Config {
	if cfg == nil {
		return entities.Config{}
	}
	return cfg
}
