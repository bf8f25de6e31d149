package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial append-only sobre SQLite.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create agrega un registro al historial.
func (r *HistoryRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	query := `
		INSERT INTO history_entries
			(id, part_id, location_id, action, shelf, section, quantity_before, quantity_after, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		e.ID, e.PartID, e.LocationID, e.Action, e.Shelf, e.Section,
		e.QuantityBefore.String(), e.QuantityAfter.String(), formatTime(e.CreatedAt), e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByPart lista el historial de una pieza, más reciente primero (rowid desempata).
func (r *HistoryRepo) ListByPart(ctx context.Context, partID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, part_id, location_id, action, shelf, section, quantity_before, quantity_after, created_at, created_by
		FROM history_entries
		WHERE part_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`
	rows, err := r.q.QueryContext(ctx, query, partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var (
			e         entity.HistoryEntry
			createdAt string
		)
		if err := rows.Scan(
			&e.ID, &e.PartID, &e.LocationID, &e.Action, &e.Shelf, &e.Section,
			&e.QuantityBefore, &e.QuantityAfter, &createdAt, &e.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
