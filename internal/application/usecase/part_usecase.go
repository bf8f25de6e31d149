package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

// PartUseCase consultas y edición de datos maestros de piezas. Las cantidades solo cambian vía StockUseCase.
type PartUseCase struct {
	parts     repository.PartRepository
	locations repository.LocationRepository
	history   repository.HistoryRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(parts repository.PartRepository, locations repository.LocationRepository, history repository.HistoryRepository) *PartUseCase {
	return &PartUseCase{parts: parts, locations: locations, history: history}
}

// GetDetail devuelve la pieza con sus ubicaciones y la cantidad total.
func (uc *PartUseCase) GetDetail(ctx context.Context, id string) (*dto.PartDetailResponse, error) {
	part, err := uc.parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: pieza %s", domain.ErrNotFound, id)
	}
	locs, err := uc.locations.ListByPart(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.PartDetailResponse{
		Part:          inventory.ToPartResponse(part),
		Locations:     make([]dto.LocationResponse, 0, len(locs)),
		TotalQuantity: decimal.Zero,
	}
	for _, l := range locs {
		out.Locations = append(out.Locations, inventory.ToLocationResponse(l))
		out.TotalQuantity = out.TotalQuantity.Add(l.Quantity)
	}
	return out, nil
}

// CheckCode indica si el código ya existe (aviso de duplicado en el formulario de alta).
func (uc *PartUseCase) CheckCode(ctx context.Context, code string) (*dto.CheckCodeResponse, error) {
	if catalog.NormalizeCode(code) == "" {
		return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
	}
	part, err := uc.parts.GetByCodeKey(ctx, catalog.CodeKey(code))
	if err != nil {
		return nil, err
	}
	if part == nil {
		return &dto.CheckCodeResponse{Exists: false}, nil
	}
	resp := inventory.ToPartResponse(part)
	return &dto.CheckCodeResponse{Exists: true, Part: &resp}, nil
}

// Search busca piezas por código o descripción. Consulta vacía = listado completo paginado.
func (uc *PartUseCase) Search(ctx context.Context, query string, limit, offset int) (*dto.PartListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.parts.Search(ctx, strings.TrimSpace(query), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, inventory.ToPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita código, descripción y foto. Un código que ya usa otra pieza devuelve ErrConflict.
func (uc *PartUseCase) Update(ctx context.Context, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: pieza %s", domain.ErrNotFound, id)
	}
	if in.Code != nil {
		code := catalog.NormalizeCode(*in.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
		}
		key := catalog.CodeKey(code)
		if key != part.CodeKey {
			other, err := uc.parts.GetByCodeKey(ctx, key)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("%w: el código %s ya existe", domain.ErrConflict, other.Code)
			}
		}
		part.Code = code
		part.CodeKey = key
	}
	if in.Description != nil {
		part.Description = strings.TrimSpace(*in.Description)
	}
	if in.PhotoRef != nil {
		part.PhotoRef = *in.PhotoRef
	}
	part.UpdatedAt = time.Now().UTC()
	if err := uc.parts.Update(ctx, part); err != nil {
		return nil, err
	}
	resp := inventory.ToPartResponse(part)
	return &resp, nil
}

// History lista el historial de la pieza, más reciente primero.
func (uc *PartUseCase) History(ctx context.Context, partID string, limit, offset int) (*dto.HistoryListResponse, error) {
	part, err := uc.parts.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("%w: pieza %s", domain.ErrNotFound, partID)
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := uc.history.ListByPart(ctx, partID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, inventory.ToHistoryEntryResponse(e))
	}
	return &dto.HistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
