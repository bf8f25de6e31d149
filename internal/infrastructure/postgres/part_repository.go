package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, code, code_key, description, photo_ref, created_at, updated_at`

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de piezas. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// CreateIfAbsent inserta la pieza; si ya existe una con el mismo code_key devuelve la existente.
// ON CONFLICT DO NOTHING espera a la tx concurrente que insertó el mismo código, así que la
// lectura posterior siempre encuentra la fila.
func (r *PartRepo) CreateIfAbsent(ctx context.Context, part *entity.Part) (*entity.Part, bool, error) {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code_key) DO NOTHING
		RETURNING ` + partColumns
	created, err := scanPart(r.q.QueryRow(ctx, query,
		part.ID, part.Code, part.CodeKey, part.Description, part.PhotoRef, part.CreatedAt, part.UpdatedAt,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert part: %w", err)
	}
	existing, err := r.GetByCodeKey(ctx, part.CodeKey)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("%w: pieza %s no visible tras conflicto", domain.ErrConflict, part.Code)
	}
	return existing, false, nil
}

// GetByID obtiene una pieza por ID. nil si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetByCodeKey obtiene una pieza por su código normalizado. nil si no existe.
func (r *PartRepo) GetByCodeKey(ctx context.Context, codeKey string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE code_key = $1`, codeKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by code: %w", err)
	}
	return p, nil
}

// Update actualiza los datos maestros de la pieza.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	query := `
		UPDATE parts SET code = $2, code_key = $3, description = $4, photo_ref = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, part.ID, part.Code, part.CodeKey, part.Description, part.PhotoRef, part.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, part.Code)
		}
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pieza %s", domain.ErrNotFound, part.ID)
	}
	return nil
}

// Search busca por subcadena en código o descripción, sin distinguir mayúsculas.
// El código se compara contra code_key, ya plegado en Go, para no depender de la collation.
func (r *PartRepo) Search(ctx context.Context, q string, limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts
		WHERE code_key LIKE $1 ESCAPE '\' OR description ILIKE $2 ESCAPE '\'
		ORDER BY code_key
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, likePattern(catalog.Fold(q)), likePattern(q), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return collectParts(rows)
}

// ListAll lista todas las piezas ordenadas por código.
func (r *PartRepo) ListAll(ctx context.Context) ([]*entity.Part, error) {
	rows, err := r.q.Query(ctx, `SELECT `+partColumns+` FROM parts ORDER BY code_key`)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return collectParts(rows)
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	if err := row.Scan(&p.ID, &p.Code, &p.CodeKey, &p.Description, &p.PhotoRef, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectParts(rows pgx.Rows) ([]*entity.Part, error) {
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
