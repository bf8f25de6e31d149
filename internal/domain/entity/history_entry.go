package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones registradas en el historial.
const (
	HistoryActionAdd      = "add"      // entrada de stock
	HistoryActionWithdraw = "withdraw" // retiro de stock
)

// HistoryEntry registro inmutable de un cambio de cantidad (append-only).
type HistoryEntry struct {
	ID             string
	PartID         string
	LocationID     string
	Action         string
	Shelf          string
	Section        string
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string // usuario autenticado; vacío si vino de la CLI
}

// Change devuelve el cambio con signo (positivo en entradas, negativo en retiros).
func (h *HistoryEntry) Change() decimal.Decimal {
	return h.QuantityAfter.Sub(h.QuantityBefore)
}
