package entity

// ShelfSummary resumen de un estante para la vista general.
type ShelfSummary struct {
	Shelf         string
	PartCount     int
	LocationCount int
}
