package repository

import (
	"context"

	"github.com/jhoicas/parts-catalog/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para Part (DIP).
// Las piezas no se eliminan: el historial que las referencia es append-only.
type PartRepository interface {
	// CreateIfAbsent inserta la pieza si no existe otra con el mismo CodeKey.
	// Devuelve la pieza persistida (nueva o existente) y si fue creada.
	CreateIfAbsent(ctx context.Context, part *entity.Part) (*entity.Part, bool, error)
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	GetByCodeKey(ctx context.Context, codeKey string) (*entity.Part, error)
	// Update persiste code, code_key, description y photo_ref. ErrDuplicate si el código choca.
	Update(ctx context.Context, part *entity.Part) error
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.Part, error)
	ListAll(ctx context.Context) ([]*entity.Part, error)
}
