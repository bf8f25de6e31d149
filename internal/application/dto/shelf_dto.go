package dto

import "github.com/shopspring/decimal"

// ShelfSummaryResponse resumen de un estante.
type ShelfSummaryResponse struct {
	Shelf         string `json:"shelf"`
	PartCount     int    `json:"part_count"`
	LocationCount int    `json:"location_count"`
}

// ShelfItemResponse una ubicación del estante con los datos de su pieza.
type ShelfItemResponse struct {
	LocationID  string          `json:"location_id"`
	PartID      string          `json:"part_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Section     string          `json:"section,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ShelfViewResponse contenido de un estante ordenado por sección y código.
type ShelfViewResponse struct {
	Shelf string              `json:"shelf"`
	Items []ShelfItemResponse `json:"items"`
}
