package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, part_id, shelf, section, quantity, created_at, updated_at`

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// AddQuantity inserta la ubicación o suma qty a la existente en una sola sentencia.
func (r *LocationRepo) AddQuantity(ctx context.Context, partID, shelf, section string, qty decimal.Decimal) (*entity.Location, error) {
	query := `
		INSERT INTO locations (id, part_id, shelf, section, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (part_id, shelf, section)
		DO UPDATE SET quantity = locations.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING ` + locationColumns
	loc, err := scanLocation(r.q.QueryRow(ctx, query, uuid.New().String(), partID, shelf, section, qty))
	if err != nil {
		if isNumericOverflow(err) {
			return nil, fmt.Errorf("%w: el stock resultante excede el máximo", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("upsert location: %w", err)
	}
	return loc, nil
}

// GetForUpdate obtiene la ubicación y bloquea la fila para update (SELECT FOR UPDATE).
func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	loc, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location for update: %w", err)
	}
	return loc, nil
}

// UpdateQuantity fija la cantidad de la ubicación.
func (r *LocationRepo) UpdateQuantity(ctx context.Context, id string, qty decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE locations SET quantity = $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad negativa", domain.ErrInsufficientStock)
		}
		return fmt.Errorf("update location quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, id)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	loc, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// ListByPart lista las ubicaciones de una pieza ordenadas por estante y sección.
func (r *LocationRepo) ListByPart(ctx context.Context, partID string) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations WHERE part_id = $1 ORDER BY shelf, section`, partID)
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
		WHERE l.shelf = $1
		ORDER BY l.section, p.code_key`
	rows, err := r.q.Query(ctx, query, shelf)
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
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return collectPartLocations(rows)
}

// ShelfSummary cuenta piezas distintas y ubicaciones por estante.
func (r *LocationRepo) ShelfSummary(ctx context.Context) ([]*entity.ShelfSummary, error) {
	query := `
		SELECT shelf, COUNT(DISTINCT part_id), COUNT(*)
		FROM locations
		GROUP BY shelf
		ORDER BY shelf`
	rows, err := r.q.Query(ctx, query)
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

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.PartID, &l.Shelf, &l.Section, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func collectPartLocations(rows pgx.Rows) ([]*entity.PartLocation, error) {
	defer rows.Close()
	var list []*entity.PartLocation
	for rows.Next() {
		var pl entity.PartLocation
		if err := rows.Scan(
			&pl.ID, &pl.PartID, &pl.Shelf, &pl.Section, &pl.Quantity, &pl.CreatedAt, &pl.UpdatedAt,
			&pl.Code, &pl.Description,
		); err != nil {
			return nil, fmt.Errorf("scan part location: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}
