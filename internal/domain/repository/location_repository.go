package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/parts-catalog/internal/domain/entity"
)

// LocationRepository define el puerto para ubicaciones (pieza + estante + sección).
// Usado dentro de transacciones para garantizar consistencia.
type LocationRepository interface {
	// AddQuantity hace upsert atómico sobre (part_id, shelf, section): crea la fila con qty
	// o suma qty a la existente. Devuelve la ubicación resultante.
	AddQuantity(ctx context.Context, partID, shelf, section string, qty decimal.Decimal) (*entity.Location, error)
	// GetForUpdate obtiene la ubicación y bloquea la fila (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Location, error)
	UpdateQuantity(ctx context.Context, id string, qty decimal.Decimal) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	ListByPart(ctx context.Context, partID string) ([]*entity.Location, error)
	ListByShelf(ctx context.Context, shelf string) ([]*entity.PartLocation, error)
	ListAllWithParts(ctx context.Context) ([]*entity.PartLocation, error)
	ShelfSummary(ctx context.Context) ([]*entity.ShelfSummary, error)
}
