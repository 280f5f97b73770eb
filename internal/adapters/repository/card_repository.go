package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/database"
	"github.com/cardboard/core/internal/ports"
)

const cardColumns = `id, title, description, type, config, position, is_active, user_id, created_at, updated_at`

// cardRow is the persisted shape of a card: config is stored serialized.
type cardRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Type        string         `db:"type"`
	Config      string         `db:"config"`
	Position    int            `db:"position"`
	IsActive    bool           `db:"is_active"`
	UserID      sql.NullInt64  `db:"user_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r cardRow) toEntity() (*entities.Card, error) {
	cfg, err := entities.ParseConfig([]byte(r.Config))
	if err != nil {
		return nil, entities.Internal(fmt.Sprintf("card %s has unreadable config", r.ID), err)
	}

	card := &entities.Card{
		ID:        r.ID,
		Title:     r.Title,
		Type:      entities.CardType(r.Type),
		Config:    cfg,
		Position:  r.Position,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Description.Valid {
		d := r.Description.String
		card.Description = &d
	}
	if r.UserID.Valid {
		u := r.UserID.Int64
		card.UserID = &u
	}
	return card, nil
}

// CardRepositoryImpl implements the CardRepository interface
type CardRepositoryImpl struct {
	db *database.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *database.DB) ports.CardRepository {
	return &CardRepositoryImpl{db: db}
}

func (r *CardRepositoryImpl) Create(ctx context.Context, card *entities.Card) error {
	config, err := card.Config.Serialize()
	if err != nil {
		return entities.Internal("serialize card config", err)
	}

	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO cards (` + cardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		card.ID, card.Title, card.Description, string(card.Type), config,
		card.Position, card.IsActive, card.UserID, now, now,
	)
	if err != nil {
		return mapWriteError("create card", err)
	}

	card.CreatedAt = now
	card.UpdatedAt = now
	return nil
}

func (r *CardRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Card, error) {
	query := r.db.Rebind(`SELECT ` + cardColumns + ` FROM cards WHERE id = ?`)

	var row cardRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.NotFound("Card", id)
		}
		return nil, entities.Internal("get card by id", err)
	}

	return row.toEntity()
}

func (r *CardRepositoryImpl) Update(ctx context.Context, card *entities.Card) error {
	config, err := card.Config.Serialize()
	if err != nil {
		return entities.Internal("serialize card config", err)
	}
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE cards
		SET title = ?, description = ?, type = ?, config = ?, position = ?,
			is_active = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		card.Title, card.Description, string(card.Type), config, card.Position,
		card.IsActive, now, card.ID,
	)
	if err != nil {
		return mapWriteError("update card", err)
	}

	if err := requireAffected(result, "Card", card.ID); err != nil {
		return err
	}

	card.UpdatedAt = now
	return nil
}

func (r *CardRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind(`DELETE FROM cards WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return entities.Internal("delete card", err)
	}

	return requireAffected(result, "Card", id)
}

func (r *CardRepositoryImpl) List(ctx context.Context, filter ports.CardFilter) ([]*entities.Card, error) {
	where, args := buildCardWhere(filter, r.db.LowerFunc())

	query := `SELECT ` + cardColumns + ` FROM cards` + where +
		` ORDER BY position ASC, created_at ASC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, entities.Internal("list cards", err)
	}

	cards := make([]*entities.Card, 0, len(rows))
	for _, row := range rows {
		card, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func (r *CardRepositoryImpl) Count(ctx context.Context, filter ports.CardFilter) (int64, error) {
	where, args := buildCardWhere(filter, r.db.LowerFunc())

	var count int64
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM cards`+where), args...); err != nil {
		return 0, entities.Internal("count cards", err)
	}

	return count, nil
}

func (r *CardRepositoryImpl) MaxPosition(ctx context.Context) (int, bool, error) {
	var max sql.NullInt64
	if err := r.db.GetContext(ctx, &max, `SELECT MAX(position) FROM cards`); err != nil {
		return 0, false, entities.Internal("max card position", err)
	}

	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

// UpdatePositions runs the existence check and every position write in one
// transaction, so readers see either the old order or the new one.
func (r *CardRepositoryImpl) UpdatePositions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(`SELECT id FROM cards WHERE id IN (?)`, ids)
		if err != nil {
			return entities.Internal("build reorder lookup", err)
		}

		var found []string
		if err := tx.SelectContext(ctx, &found, tx.Rebind(query), args...); err != nil {
			return entities.Internal("reorder lookup", err)
		}

		existing := make(map[string]struct{}, len(found))
		for _, id := range found {
			existing[id] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := existing[id]; !ok {
				return entities.NotFound("Card", id)
			}
		}

		now := time.Now().UTC()
		update := tx.Rebind(`UPDATE cards SET position = ?, updated_at = ? WHERE id = ?`)
		for position, id := range ids {
			result, err := tx.ExecContext(ctx, update, position, now, id)
			if err != nil {
				return entities.Internal("update card position", err)
			}
			// A concurrent delete between the lookup and the write.
			if err := requireAffected(result, "Card", id); err != nil {
				return err
			}
		}

		return nil
	})
}

func buildCardWhere(filter ports.CardFilter, lower string) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.IsActive != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if filter.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(*filter.Search)) + "%"
		conds = append(conds, fmt.Sprintf(`(%[1]s(title) LIKE ? ESCAPE '\' OR %[1]s(COALESCE(description, '')) LIKE ? ESCAPE '\')`, lower))
		args = append(args, pattern, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
