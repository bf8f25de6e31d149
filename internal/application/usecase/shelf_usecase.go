package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

// ShelfUseCase vistas por estante.
type ShelfUseCase struct {
	locations repository.LocationRepository
}

// NewShelfUseCase construye el caso de uso.
func NewShelfUseCase(locations repository.LocationRepository) *ShelfUseCase {
	return &ShelfUseCase{locations: locations}
}

// Summary devuelve todos los estantes con cantidad de piezas y de ubicaciones.
func (uc *ShelfUseCase) Summary(ctx context.Context) ([]dto.ShelfSummaryResponse, error) {
	list, err := uc.locations.ShelfSummary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShelfSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ShelfSummaryResponse{Shelf: s.Shelf, PartCount: s.PartCount, LocationCount: s.LocationCount})
	}
	return out, nil
}

// View devuelve el contenido de un estante. Un estante sin ubicaciones no existe.
func (uc *ShelfUseCase) View(ctx context.Context, shelf string) (*dto.ShelfViewResponse, error) {
	shelf = catalog.NormalizeShelf(shelf)
	if shelf == "" {
		return nil, fmt.Errorf("%w: estante vacío", domain.ErrInvalidInput)
	}
	list, err := uc.locations.ListByShelf(ctx, shelf)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: estante %s", domain.ErrNotFound, shelf)
	}
	out := &dto.ShelfViewResponse{Shelf: shelf, Items: make([]dto.ShelfItemResponse, 0, len(list))}
	for _, pl := range list {
		out.Items = append(out.Items, dto.ShelfItemResponse{
			LocationID:  pl.ID,
			PartID:      pl.PartID,
			Code:        pl.Code,
			Description: pl.Description,
			Section:     pl.Section,
			Quantity:    pl.Quantity,
		})
	}
	return out, nil
}
