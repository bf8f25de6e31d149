package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial append-only sobre PostgreSQL. No expone update ni delete.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create agrega un registro al historial.
func (r *HistoryRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	query := `
		INSERT INTO history_entries
			(id, part_id, location_id, action, shelf, section, quantity_before, quantity_after, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.PartID, e.LocationID, e.Action, e.Shelf, e.Section,
		e.QuantityBefore, e.QuantityAfter, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByPart lista el historial de una pieza, más reciente primero.
func (r *HistoryRepo) ListByPart(ctx context.Context, partID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, part_id, location_id, action, shelf, section, quantity_before, quantity_after, created_at, created_by
		FROM history_entries
		WHERE part_id = $1
		ORDER BY seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.PartID, &e.LocationID, &e.Action, &e.Shelf, &e.Section,
			&e.QuantityBefore, &e.QuantityAfter, &e.CreatedAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
