package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, code, code_key, description, photo_ref, created_at, updated_at`

// PartRepo implementación de PartRepository sobre SQLite.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// CreateIfAbsent inserta la pieza si no hay otra con el mismo code_key; si la hay la devuelve.
func (r *PartRepo) CreateIfAbsent(ctx context.Context, part *entity.Part) (*entity.Part, bool, error) {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code_key) DO NOTHING`
	res, err := r.q.ExecContext(ctx, query,
		part.ID, part.Code, part.CodeKey, part.Description, part.PhotoRef,
		formatTime(part.CreatedAt), formatTime(part.UpdatedAt),
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert part: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		created := *part
		return &created, true, nil
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
	p, err := scanPart(r.q.QueryRowContext(ctx, `SELECT `+partColumns+` FROM parts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetByCodeKey obtiene una pieza por su código normalizado. nil si no existe.
func (r *PartRepo) GetByCodeKey(ctx context.Context, codeKey string) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRowContext(ctx, `SELECT `+partColumns+` FROM parts WHERE code_key = ?`, codeKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by code: %w", err)
	}
	return p, nil
}

// Update actualiza los datos maestros de la pieza.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	query := `
		UPDATE parts SET code = ?, code_key = ?, description = ?, photo_ref = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		part.Code, part.CodeKey, part.Description, part.PhotoRef, formatTime(part.UpdatedAt), part.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, part.Code)
		}
		return fmt.Errorf("update part: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: pieza %s", domain.ErrNotFound, part.ID)
	}
	return nil
}

// Search busca por subcadena en código o descripción, sin distinguir mayúsculas (case folding Unicode).
func (r *PartRepo) Search(ctx context.Context, q string, limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT ` + partColumns + `
		FROM parts
		WHERE instr(code_key, ?1) > 0 OR instr(` + foldFunc + `(description), ?1) > 0
		ORDER BY code_key
		LIMIT ?2 OFFSET ?3`
	rows, err := r.q.QueryContext(ctx, query, catalog.Fold(q), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return collectParts(rows)
}

// ListAll lista todas las piezas ordenadas por código.
func (r *PartRepo) ListAll(ctx context.Context) ([]*entity.Part, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+partColumns+` FROM parts ORDER BY code_key`)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return collectParts(rows)
}

func scanPart(row scanner) (*entity.Part, error) {
	var (
		p                    entity.Part
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Code, &p.CodeKey, &p.Description, &p.PhotoRef, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectParts(rows *sql.Rows) ([]*entity.Part, error) {
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
