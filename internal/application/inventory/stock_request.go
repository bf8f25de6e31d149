package inventory

import (
	"context"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
)

// AddStockFromRequest adapta el request HTTP al caso de uso AddStock.
// Usar desde handlers HTTP o desde la CLI con el userID autenticado (vacío en la CLI).
func (uc *StockUseCase) AddStockFromRequest(ctx context.Context, userID string, in dto.AddStockRequest) (*dto.StockResultResponse, error) {
	res, err := uc.AddStock(ctx, AddStockInput{
		UserID:      userID,
		Code:        in.Code,
		Description: in.Description,
		PhotoRef:    in.PhotoRef,
		Shelf:       in.Shelf,
		Section:     in.Section,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return ToStockResultResponse(res), nil
}

// AddLocationFromRequest adapta POST /api/parts/:id/locations a AddStockToPart.
func (uc *StockUseCase) AddLocationFromRequest(ctx context.Context, userID, partID string, in dto.AddLocationRequest) (*dto.StockResultResponse, error) {
	res, err := uc.AddStockToPart(ctx, AddLocationInput{
		UserID:   userID,
		PartID:   partID,
		Shelf:    in.Shelf,
		Section:  in.Section,
		Quantity: in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return ToStockResultResponse(res), nil
}

// WithdrawFromRequest adapta POST /api/stock/withdraw a WithdrawStock.
func (uc *StockUseCase) WithdrawFromRequest(ctx context.Context, userID string, in dto.WithdrawStockRequest) (*dto.StockResultResponse, error) {
	res, err := uc.WithdrawStock(ctx, WithdrawInput{
		UserID:     userID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return ToStockResultResponse(res), nil
}

// ToStockResultResponse convierte el resultado de una operación de stock a su DTO.
func ToStockResultResponse(res *StockResult) *dto.StockResultResponse {
	if res == nil {
		return nil
	}
	return &dto.StockResultResponse{
		Part:        ToPartResponse(res.Part),
		Location:    ToLocationResponse(res.Location),
		History:     ToHistoryEntryResponse(res.Entry),
		PartCreated: res.PartCreated,
	}
}

// ToPartResponse convierte una pieza a su DTO.
func ToPartResponse(p *entity.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:          p.ID,
		Code:        p.Code,
		Description: p.Description,
		PhotoRef:    p.PhotoRef,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToLocationResponse convierte una ubicación a su DTO.
func ToLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:        l.ID,
		PartID:    l.PartID,
		Shelf:     l.Shelf,
		Section:   l.Section,
		Quantity:  l.Quantity,
		UpdatedAt: l.UpdatedAt,
	}
}

// ToHistoryEntryResponse convierte un registro del historial a su DTO.
func ToHistoryEntryResponse(h *entity.HistoryEntry) dto.HistoryEntryResponse {
	return dto.HistoryEntryResponse{
		ID:             h.ID,
		PartID:         h.PartID,
		LocationID:     h.LocationID,
		Action:         h.Action,
		Shelf:          h.Shelf,
		Section:        h.Section,
		QuantityBefore: h.QuantityBefore,
		QuantityAfter:  h.QuantityAfter,
		Change:         h.Change(),
		CreatedAt:      h.CreatedAt,
		CreatedBy:      h.CreatedBy,
	}
}
