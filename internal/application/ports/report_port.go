package ports

import (
	"context"
	"time"
)

// Modos de reporte.
const (
	ReportModeByShelf = "by-shelf"
	ReportModeFull    = "full"
)

// ReportRow una fila de la lista impresa. Shaded marca filas de la misma pieza en el listado completo.
type ReportRow struct {
	Code        string
	Description string
	Shelf       string
	Section     string
	Quantity    string
	Shaded      bool
}

// ReportGroup bloque de filas; en by-shelf hay uno por estante, en full uno solo sin título.
type ReportGroup struct {
	Title string
	Rows  []ReportRow
}

// ReportDocument contenido ya ordenado y truncado, listo para renderizar.
type ReportDocument struct {
	Mode        string
	Title       string
	GeneratedAt time.Time
	Groups      []ReportGroup
}

// ReportRenderer puerto de salida para generar el PDF de una lista.
type ReportRenderer interface {
	Render(ctx context.Context, doc ReportDocument) ([]byte, error)
}
