package repository

import (
	"context"

	"github.com/jhoicas/parts-catalog/internal/domain/entity"
)

// HistoryRepository puerto del historial de cambios. Solo alta y consulta: nunca se modifica.
type HistoryRepository interface {
	Create(ctx context.Context, entry *entity.HistoryEntry) error
	ListByPart(ctx context.Context, partID string, limit, offset int) ([]*entity.HistoryEntry, error)
}
