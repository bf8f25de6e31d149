package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	inv "github.com/jhoicas/parts-catalog/internal/domain/inventory"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, part_id, shelf, section, quantity, created_at, updated_at`

// LocationRepo implementación de LocationRepository sobre SQLite.
type LocationRepo struct {
	q   Querier
	now func() time.Time
}

// NewLocationRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q, now: time.Now}
}

// AddQuantity suma qty a la ubicación (part_id, shelf, section) o la crea.
// La suma se hace en decimal dentro de la transacción; BEGIN IMMEDIATE impide escritores concurrentes.
func (r *LocationRepo) AddQuantity(ctx context.Context, partID, shelf, section string, qty decimal.Decimal) (*entity.Location, error) {
	now := r.now().UTC()
	existing, err := scanLocation(r.q.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE part_id = ? AND shelf = ? AND section = ?`,
		partID, shelf, section,
	))
	switch {
	case err == nil:
		total := existing.Quantity.Add(qty)
		if err := inv.ValidateStockLevel(total); err != nil {
			return nil, err
		}
		existing.Quantity = total
		existing.UpdatedAt = now
		if _, err := r.q.ExecContext(ctx,
			`UPDATE locations SET quantity = ?, updated_at = ? WHERE id = ?`,
			existing.Quantity.String(), formatTime(now), existing.ID,
		); err != nil {
			return nil, fmt.Errorf("update location: %w", err)
		}
		return existing, nil
	case errors.Is(err, sql.ErrNoRows):
		loc := &entity.Location{
			ID:        uuid.New().String(),
			PartID:    partID,
			Shelf:     shelf,
			Section:   section,
			Quantity:  qty,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO locations (`+locationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			loc.ID, loc.PartID, loc.Shelf, loc.Section, loc.Quantity.String(), formatTime(now), formatTime(now),
		); err != nil {
			return nil, fmt.Errorf("insert location: %w", err)
		}
		return loc, nil
	default:
		return nil, fmt.Errorf("get location: %w", err)
	}
}

// GetForUpdate dentro de una tx IMMEDIATE la base ya está reservada para escritura: basta un SELECT.
func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	return r.GetByID(ctx, id)
}

// UpdateQuantity fija la cantidad de la ubicación.
func (r *LocationRepo) UpdateQuantity(ctx context.Context, id string, qty decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE locations SET quantity = ?, updated_at = ? WHERE id = ?`,
		qty.String(), formatTime(r.now()), id,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad negativa", domain.ErrInsufficientStock)
		}
		return fmt.Errorf("update location quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	loc, err := scanLocation(r.q.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// ListByPart lista las ubicaciones de una pieza ordenadas por estante y sección.
func (r *LocationRepo) ListByPart(ctx context.Context, partID string) ([]*entity.Location, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE part_id = ? ORDER BY shelf, section`, partID)
	if err != nil {
		return nil, fmt.Errorf("list locations by part: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, loc)
	}
	return list, rows.Err()
}

// ListByShelf lista el contenido de un estante ordenado por sección y código.
func (r *LocationRepo) ListByShelf(ctx context.Context, shelf string) ([]*entity.PartLocation, error) {
	query := `
		SELECT l.id, l.part_id, l.shelf, l.section, l.quantity, l.created_at, l.updated_at, p.code, p.description
		FROM locations l
		JOIN parts p ON p.id = l.part_id
		WHERE l.shelf = ?
		ORDER BY l.section, p.code_key`
	rows, err := r.q.QueryContext(ctx, query, shelf)
	if err != nil {
		return nil, fmt.Errorf("list locations by shelf: %w", err)
	}
	return collectPartLocations(rows)
}

// ListAllWithParts lista todas las ubicaciones con su pieza, ordenadas por código, estante y sección.
func (r *LocationRepo) ListAllWithParts(ctx context.Context) ([]*entity.PartLocation, error) {
	query := `
		SELECT l.id, l.part_id, l.shelf, l.section, l.quantity, l.created_at, l.updated_at, p.code, p.description
		FROM locations l
		JOIN parts p ON p.id = l.part_id
		ORDER BY p.code_key, l.shelf, l.section`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return collectPartLocations(rows)
}

// ShelfSummary cuenta piezas distintas y ubicaciones por estante.
func (r *LocationRepo) ShelfSummary(ctx context.Context) ([]*entity.ShelfSummary, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT shelf, COUNT(DISTINCT part_id), COUNT(*)
		FROM locations
		GROUP BY shelf
		ORDER BY shelf`)
	if err != nil {
		return nil, fmt.Errorf("shelf summary: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShelfSummary
	for rows.Next() {
		var s entity.ShelfSummary
		if err := rows.Scan(&s.Shelf, &s.PartCount, &s.LocationCount); err != nil {
			return nil, fmt.Errorf("scan shelf summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func scanLocation(row scanner) (*entity.Location, error) {
	var (
		l                    entity.Location
		createdAt, updatedAt string
	)
	if err := row.Scan(&l.ID, &l.PartID, &l.Shelf, &l.Section, &l.Quantity, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func collectPartLocations(rows *sql.Rows) ([]*entity.PartLocation, error) {
	defer rows.Close()
	var list []*entity.PartLocation
	for rows.Next() {
		var (
			pl                   entity.PartLocation
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&pl.ID, &pl.PartID, &pl.Shelf, &pl.Section, &pl.Quantity, &createdAt, &updatedAt,
			&pl.Code, &pl.Description,
		); err != nil {
			return nil, fmt.Errorf("scan part location: %w", err)
		}
		var err error
		if pl.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if pl.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}
