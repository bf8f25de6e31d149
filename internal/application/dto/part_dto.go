package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartResponse salida de una pieza del catálogo.
type PartResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	PhotoRef    string    `json:"photo_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocationResponse salida de una ubicación (estante + sección) con su cantidad.
type LocationResponse struct {
	ID        string          `json:"id"`
	PartID    string          `json:"part_id"`
	Shelf     string          `json:"shelf"`
	Section   string          `json:"section,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PartDetailResponse pieza con todas sus ubicaciones y la cantidad total.
type PartDetailResponse struct {
	Part          PartResponse       `json:"part"`
	Locations     []LocationResponse `json:"locations"`
	TotalQuantity decimal.Decimal    `json:"total_quantity"`
}

// PartListResponse listado paginado de piezas (búsqueda).
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CheckCodeResponse indica si ya existe una pieza con el código (sin distinguir mayúsculas).
type CheckCodeResponse struct {
	Exists bool          `json:"exists"`
	Part   *PartResponse `json:"part,omitempty"`
}

// UpdatePartRequest campos editables de una pieza. nil = sin cambio.
type UpdatePartRequest struct {
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoRef    *string `json:"photo_ref,omitempty"`
}

// HistoryEntryResponse registro del historial de cambios.
type HistoryEntryResponse struct {
	ID             string          `json:"id"`
	PartID         string          `json:"part_id"`
	LocationID     string          `json:"location_id"`
	Action         string          `json:"action"`
	Shelf          string          `json:"shelf"`
	Section        string          `json:"section,omitempty"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Change         decimal.Decimal `json:"change"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// HistoryListResponse historial paginado de una pieza (más reciente primero).
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
