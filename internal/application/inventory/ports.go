package inventory

import (
	"context"

	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del mutador de inventario: búsqueda + cambio + historial o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		locationRepo repository.LocationRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}
