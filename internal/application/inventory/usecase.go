package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	inv "github.com/jhoicas/parts-catalog/internal/domain/inventory"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

// StockUseCase registra entradas y retiros de stock de forma transaccional.
// Cada operación (búsqueda + cambio + historial) corre en una sola transacción vía TxRunner.
type StockUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddStockInput entrada para registrar stock por código de pieza.
// Description y PhotoRef solo se usan al crear la pieza (o para completar una descripción vacía).
type AddStockInput struct {
	UserID      string
	Code        string
	Description string
	PhotoRef    string
	Shelf       string
	Section     string
	Quantity    decimal.Decimal
}

// AddLocationInput entrada para registrar stock en una pieza ya existente.
type AddLocationInput struct {
	UserID   string
	PartID   string
	Shelf    string
	Section  string
	Quantity decimal.Decimal
}

// WithdrawInput entrada para retirar stock de una ubicación.
type WithdrawInput struct {
	UserID     string
	LocationID string
	Quantity   decimal.Decimal
}

// StockResult estado resultante de una operación de stock.
type StockResult struct {
	Part        *entity.Part
	Location    *entity.Location
	Entry       *entity.HistoryEntry
	PartCreated bool
}

// AddStock busca la pieza por código (sin distinguir mayúsculas, sin espacios laterales) y la crea
// si no existe. Luego suma la cantidad en (estante, sección) o crea la ubicación, y registra
// el historial con before/after.
func (uc *StockUseCase) AddStock(ctx context.Context, in AddStockInput) (*StockResult, error) {
	code := catalog.NormalizeCode(in.Code)
	shelf := catalog.NormalizeShelf(in.Shelf)
	section := catalog.NormalizeSection(in.Section)
	if code == "" || shelf == "" {
		return nil, fmt.Errorf("%w: código y estante son obligatorios", domain.ErrInvalidInput)
	}
	if err := inv.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	now := uc.now()

	var result *StockResult
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		locationRepo repository.LocationRepository,
		historyRepo repository.HistoryRepository,
	) error {
		part, created, err := partRepo.CreateIfAbsent(ctx, &entity.Part{
			ID:          uuid.New().String(),
			Code:        code,
			CodeKey:     catalog.CodeKey(code),
			Description: description,
			PhotoRef:    in.PhotoRef,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		// Pieza existente sin descripción: se completa con la que trae la entrada
		if !created && part.Description == "" && description != "" {
			part.Description = description
			part.UpdatedAt = now
			if err := partRepo.Update(ctx, part); err != nil {
				return err
			}
		}
		loc, entry, err := uc.addToLocation(ctx, locationRepo, historyRepo, part, shelf, section, in.Quantity, in.UserID, now)
		if err != nil {
			return err
		}
		result = &StockResult{Part: part, Location: loc, Entry: entry, PartCreated: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddStockToPart registra stock en una pieza existente (agregar ubicación desde el detalle).
func (uc *StockUseCase) AddStockToPart(ctx context.Context, in AddLocationInput) (*StockResult, error) {
	shelf := catalog.NormalizeShelf(in.Shelf)
	section := catalog.NormalizeSection(in.Section)
	if in.PartID == "" || shelf == "" {
		return nil, fmt.Errorf("%w: pieza y estante son obligatorios", domain.ErrInvalidInput)
	}
	if err := inv.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	now := uc.now()

	var result *StockResult
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		locationRepo repository.LocationRepository,
		historyRepo repository.HistoryRepository,
	) error {
		part, err := partRepo.GetByID(ctx, in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: pieza %s", domain.ErrNotFound, in.PartID)
		}
		loc, entry, err := uc.addToLocation(ctx, locationRepo, historyRepo, part, shelf, section, in.Quantity, in.UserID, now)
		if err != nil {
			return err
		}
		result = &StockResult{Part: part, Location: loc, Entry: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// WithdrawStock bloquea la ubicación (SELECT FOR UPDATE), verifica stock >= cantidad, resta y
// registra el historial. La ubicación se conserva aunque quede en cero.
func (uc *StockUseCase) WithdrawStock(ctx context.Context, in WithdrawInput) (*StockResult, error) {
	if in.LocationID == "" {
		return nil, fmt.Errorf("%w: ubicación obligatoria", domain.ErrInvalidInput)
	}
	if err := inv.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	now := uc.now()

	var result *StockResult
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		locationRepo repository.LocationRepository,
		historyRepo repository.HistoryRepository,
	) error {
		loc, err := locationRepo.GetForUpdate(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, in.LocationID)
		}
		before := loc.Quantity
		after, err := inv.ApplyWithdraw(before, in.Quantity)
		if err != nil {
			return err
		}
		if err := locationRepo.UpdateQuantity(ctx, loc.ID, after); err != nil {
			return err
		}
		loc.Quantity = after
		loc.UpdatedAt = now

		part, err := partRepo.GetByID(ctx, loc.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: pieza %s", domain.ErrNotFound, loc.PartID)
		}
		entry := &entity.HistoryEntry{
			ID:             uuid.New().String(),
			PartID:         loc.PartID,
			LocationID:     loc.ID,
			Action:         entity.HistoryActionWithdraw,
			Shelf:          loc.Shelf,
			Section:        loc.Section,
			QuantityBefore: before,
			QuantityAfter:  after,
			CreatedAt:      now,
			CreatedBy:      in.UserID,
		}
		if err := historyRepo.Create(ctx, entry); err != nil {
			return err
		}
		result = &StockResult{Part: part, Location: loc, Entry: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// addToLocation: upsert atómico de la ubicación + registro add en el historial.
func (uc *StockUseCase) addToLocation(
	ctx context.Context,
	locationRepo repository.LocationRepository,
	historyRepo repository.HistoryRepository,
	part *entity.Part,
	shelf, section string,
	qty decimal.Decimal,
	userID string,
	now time.Time,
) (*entity.Location, *entity.HistoryEntry, error) {
	loc, err := locationRepo.AddQuantity(ctx, part.ID, shelf, section, qty)
	if err != nil {
		return nil, nil, err
	}
	entry := &entity.HistoryEntry{
		ID:             uuid.New().String(),
		PartID:         part.ID,
		LocationID:     loc.ID,
		Action:         entity.HistoryActionAdd,
		Shelf:          loc.Shelf,
		Section:        loc.Section,
		QuantityBefore: loc.Quantity.Sub(qty),
		QuantityAfter:  loc.Quantity,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
	if err := historyRepo.Create(ctx, entry); err != nil {
		return nil, nil, err
	}
	return loc, entry, nil
}
