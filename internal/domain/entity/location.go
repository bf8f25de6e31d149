package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location es la ubicación (estante + sección) de una pieza con su cantidad en existencia.
// Hay como máximo una fila por (PartID, Shelf, Section); Section vacía = sin sección.
type Location struct {
	ID        string
	PartID    string
	Shelf     string
	Section   string
	Quantity  decimal.Decimal // nunca negativa
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartLocation une una ubicación con los datos de su pieza (vistas de estante y reportes).
type PartLocation struct {
	Location
	Code        string
	Description string
}
