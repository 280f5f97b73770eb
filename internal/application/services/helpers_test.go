package services_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cardboard/core/internal/adapters/cache"
	"github.com/cardboard/core/internal/adapters/repository"
	"github.com/cardboard/core/internal/application/services"
	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/config"
	"github.com/cardboard/core/internal/infrastructure/database"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

type fixture struct {
	cards     ports.CardRepository
	templates ports.TemplateRepository
	resolver  *services.DefaultResolver
	cardSvc   *services.CardService
	tmplSvc   *services.TemplateService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "cards.db"),
	}
	require.NoError(t, database.Migrate(cfg))

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.FromZap(zaptest.NewLogger(t))
	validate := services.NewValidator()

	f := &fixture{
		cards:     repository.NewCardRepository(db),
		templates: repository.NewTemplateRepository(db),
	}
	f.resolver = services.NewDefaultResolver(f.templates, cache.Noop{}, time.Minute, log)
	f.cardSvc = services.NewCardService(f.cards, f.templates, f.resolver, validate, log)
	f.tmplSvc = services.NewTemplateService(f.templates, f.resolver, validate, log)
	return f
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

// matchesSearch is the reference case-insensitive substring match over title
// and description.
func matchesSearch(c *entities.Card, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	return c.Description != nil && strings.Contains(strings.ToLower(*c.Description), q)
}
