package cache

import (
	"context"
	"time"

	"github.com/cardboard/core/internal/ports"
)

// Noop is the cache used when Redis is disabled: every lookup misses.
type Noop struct{}

var _ ports.CacheRepository = Noop{}

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) Get(context.Context, string, interface{}) error { return ports.ErrCacheMiss }

func (Noop) Delete(context.Context, string) error { return nil }

func (Noop) Ping(context.Context) error { return nil }
