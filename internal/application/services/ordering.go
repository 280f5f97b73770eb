package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/ports"
)

// OrderingEngine owns the position column: appending new cards after the
// last one and rewriting positions from an ordered id list.
type OrderingEngine struct {
	cards ports.CardRepository
}

// NewOrderingEngine creates an ordering engine over cards.
func NewOrderingEngine(cards ports.CardRepository) *OrderingEngine {
	return &OrderingEngine{cards: cards}
}

// NextPosition returns one past the highest position in use, or 0 for an
// empty board. Two concurrent callers may get the same value.
func (o *OrderingEngine) NextPosition(ctx context.Context) (int, error) {
	max, ok, err := o.cards.MaxPosition(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read max position: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return max + 1, nil
}

// Reorder sets the position of ids[i] to i. Cards not listed keep their
// position. Either every listed card moves or none does.
func (o *OrderingEngine) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return entities.InvalidInput("ids", "must contain at least one card id")
	}

	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return entities.InvalidInput(fmt.Sprintf("ids[%d]", i), "must not be empty")
		}
		if _, dup := seen[id]; dup {
			return entities.InvalidInput(fmt.Sprintf("ids[%d]", i), fmt.Sprintf("duplicate card id %q", id))
		}
		seen[id] = struct{}{}
	}

	if err := o.cards.UpdatePositions(ctx, ids); err != nil {
		return fmt.Errorf("failed to reorder cards: %w", err)
	}
	return nil
}
