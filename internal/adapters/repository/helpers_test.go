package repository_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/config"
	"github.com/cardboard/core/internal/infrastructure/database"
	"github.com/cardboard/core/internal/ports"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "cards.db"),
	}
	require.NoError(t, database.Migrate(cfg))

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func int64Ptr(i int64) *int64 { return &i }

func typePtr(ct entities.CardType) *entities.CardType { return &ct }

func mustCreate(t *testing.T, repo ports.CardRepository, card *entities.Card) *entities.Card {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), card))
	return card
}

func mustUpsert(t *testing.T, repo ports.TemplateRepository, template *entities.CardTemplate) entities.CardType {
	t.Helper()
	previous, err := repo.Upsert(context.Background(), template)
	require.NoError(t, err)
	return previous
}

func newCard(title string, ct entities.CardType, position int) *entities.Card {
	card := entities.NewCard(title, nil, ct, entities.Config{}, nil)
	card.Position = position
	return card
}

// matchesSearch is the reference case-insensitive substring match over title
// and description.
func matchesSearch(c *entities.Card, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	return c.Description != nil && strings.Contains(strings.ToLower(*c.Description), q)
}
