package entity

import "time"

// Part representa una entrada del catálogo identificada por su código.
// CodeKey es el código normalizado (trim + case folding) y es único.
type Part struct {
	ID          string
	Code        string
	CodeKey     string
	Description string
	PhotoRef    string // referencia opaca a la foto (nombre de archivo o URL)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
