package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardboard/core/internal/adapters/repository"
	"github.com/cardboard/core/internal/domain/entities"
)

func TestTemplateRepository_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTemplateRepository(newTestDB(t))

	tmpl := &entities.CardTemplate{
		Name:          "Daily stats",
		Type:          entities.CardTypeStats,
		DefaultConfig: entities.Config{"stats": map[string]any{"label": "Visitors", "value": float64(0)}},
		Description:   strPtr("Visitors today"),
	}
	mustUpsert(t, repo, tmpl)
	require.NotEmpty(t, tmpl.ID)
	assert.False(t, tmpl.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily stats", got.Name)
	assert.Equal(t, entities.CardTypeStats, got.Type)
	assert.Equal(t, tmpl.DefaultConfig, got.DefaultConfig)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Visitors today", *got.Description)
	assert.Nil(t, got.Preview)
}

func TestTemplateRepository_UpsertByNameKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTemplateRepository(newTestDB(t))

	first := &entities.CardTemplate{Name: "Notes", Type: entities.CardTypeText, DefaultConfig: entities.Config{"v": float64(1)}}
	assert.Empty(t, mustUpsert(t, repo, first), "new name has no previous type")

	second := &entities.CardTemplate{Name: "Notes", Type: entities.CardTypeCustom, DefaultConfig: entities.Config{"v": float64(2)}}
	assert.Equal(t, entities.CardTypeText, mustUpsert(t, repo, second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	templates, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, entities.CardTypeCustom, templates[0].Type)
	assert.Equal(t, entities.Config{"v": float64(2)}, templates[0].DefaultConfig)
}

func TestTemplateRepository_LatestByType(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTemplateRepository(newTestDB(t))

	_, err := repo.LatestByType(ctx, entities.CardTypeImage)
	assert.ErrorIs(t, err, entities.ErrTemplateNotFound)

	older := &entities.CardTemplate{Name: "Photo", Type: entities.CardTypeImage, DefaultConfig: entities.Config{"n": "older"}}
	mustUpsert(t, repo, older)
	newer := &entities.CardTemplate{Name: "Banner", Type: entities.CardTypeImage, DefaultConfig: entities.Config{"n": "newer"}}
	mustUpsert(t, repo, newer)
	other := &entities.CardTemplate{Name: "Link", Type: entities.CardTypeLink, DefaultConfig: entities.Config{}}
	mustUpsert(t, repo, other)

	latest, err := repo.LatestByType(ctx, entities.CardTypeImage)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.Equal(t, "newer", latest.DefaultConfig["n"])

	templates, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, other.ID, templates[0].ID, "newest first")
	assert.Equal(t, older.ID, templates[2].ID)
}

func TestTemplateRepository_GetMissing(t *testing.T) {
	repo := repository.NewTemplateRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Contains(t, err.Error(), "Template")
}
