package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/database"
	"github.com/cardboard/core/internal/ports"
)

const templateColumns = `id, name, type, default_config, description, preview, created_at, updated_at`

type templateRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	DefaultConfig string         `db:"default_config"`
	Description   sql.NullString `db:"description"`
	Preview       sql.NullString `db:"preview"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r templateRow) toEntity() (*entities.CardTemplate, error) {
	cfg, err := entities.ParseConfig([]byte(r.DefaultConfig))
	if err != nil {
		return nil, entities.Internal(fmt.Sprintf("template %s has unreadable default config", r.ID), err)
	}

	t := &entities.CardTemplate{
		ID:            r.ID,
		Name:          r.Name,
		Type:          entities.CardType(r.Type),
		DefaultConfig: cfg,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Description.Valid {
		d := r.Description.String
		t.Description = &d
	}
	if r.Preview.Valid {
		p := r.Preview.String
		t.Preview = &p
	}
	return t, nil
}

// TemplateRepositoryImpl implements the TemplateRepository interface
type TemplateRepositoryImpl struct {
	db *database.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *database.DB) ports.TemplateRepository {
	return &TemplateRepositoryImpl{db: db}
}

func (r *TemplateRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.CardTemplate, error) {
	query := r.db.Rebind(`SELECT ` + templateColumns + ` FROM card_templates WHERE id = ?`)

	var row templateRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.NotFound("Template", id)
		}
		return nil, entities.Internal("get template by id", err)
	}

	return row.toEntity()
}

func (r *TemplateRepositoryImpl) List(ctx context.Context) ([]*entities.CardTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM card_templates ORDER BY created_at DESC, id ASC`

	var rows []templateRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, entities.Internal("list templates", err)
	}

	templates := make([]*entities.CardTemplate, 0, len(rows))
	for _, row := range rows {
		t, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}

func (r *TemplateRepositoryImpl) LatestByType(ctx context.Context, cardType entities.CardType) (*entities.CardTemplate, error) {
	query := r.db.Rebind(`
		SELECT ` + templateColumns + `
		FROM card_templates
		WHERE type = ?
		ORDER BY created_at DESC, id ASC
		LIMIT 1`)

	var row templateRow
	if err := r.db.GetContext(ctx, &row, query, string(cardType)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTemplateNotFound
		}
		return nil, entities.Internal("get latest template by type", err)
	}

	return row.toEntity()
}

// Upsert keeps the id and created_at of an existing template with the same
// name and replaces everything else. It returns the type the replaced
// template had, or "" when the name was new.
func (r *TemplateRepositoryImpl) Upsert(ctx context.Context, template *entities.CardTemplate) (entities.CardType, error) {
	config, err := template.DefaultConfig.Serialize()
	if err != nil {
		return "", entities.Internal("serialize template config", err)
	}

	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	byName := r.db.Rebind(`SELECT ` + templateColumns + ` FROM card_templates WHERE name = ?`)
	upsert := r.db.Rebind(`
		INSERT INTO card_templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET type = excluded.type,
			default_config = excluded.default_config,
			description = excluded.description,
			preview = excluded.preview,
			updated_at = excluded.updated_at`)

	var previous entities.CardType
	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var existing templateRow
		switch err := tx.GetContext(ctx, &existing, byName, template.Name); {
		case err == nil:
			previous = entities.CardType(existing.Type)
		case !errors.Is(err, sql.ErrNoRows):
			return entities.Internal("read template before upsert", err)
		}

		_, err := tx.ExecContext(ctx, upsert,
			template.ID, template.Name, string(template.Type), config,
			template.Description, template.Preview, now, now,
		)
		if err != nil {
			return mapWriteError("upsert template", err)
		}

		var row templateRow
		if err := tx.GetContext(ctx, &row, byName, template.Name); err != nil {
			return entities.Internal("reload upserted template", err)
		}

		template.ID = row.ID
		template.CreatedAt = row.CreatedAt
		template.UpdatedAt = row.UpdatedAt
		return nil
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}
