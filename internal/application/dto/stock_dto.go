package dto

import "github.com/shopspring/decimal"

// AddStockRequest body para POST /api/stock/add.
type AddStockRequest struct {
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	PhotoRef    string          `json:"photo_ref,omitempty"`
	Shelf       string          `json:"shelf"`
	Section     string          `json:"section,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AddLocationRequest body para POST /api/parts/:id/locations.
type AddLocationRequest struct {
	Shelf    string          `json:"shelf"`
	Section  string          `json:"section,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
}

// WithdrawStockRequest body para POST /api/stock/withdraw.
type WithdrawStockRequest struct {
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// StockResultResponse estado después de una entrada o retiro.
type StockResultResponse struct {
	Part        PartResponse         `json:"part"`
	Location    LocationResponse     `json:"location"`
	History     HistoryEntryResponse `json:"history"`
	PartCreated bool                 `json:"part_created"`
}
