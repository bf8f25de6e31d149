// Package report arma las listas imprimibles del catálogo (por estante e inventario completo).
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/domain"
	"github.com/jhoicas/parts-catalog/internal/domain/catalog"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/internal/domain/repository"
)

// Límites de texto por modo (ancho de columna de la lista impresa).
const (
	byShelfCodeMax = 25
	byShelfDescMax = 40
	fullCodeMax    = 20
	fullDescMax    = 35
)

// Export resultado de una exportación: bytes del PDF y nombre de archivo sugerido.
type Export struct {
	Filename string
	Content  []byte
}

// UseCase genera reportes a partir de todas las ubicaciones con su pieza.
type UseCase struct {
	locations repository.LocationRepository
	renderer  ports.ReportRenderer
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(locations repository.LocationRepository, renderer ports.ReportRenderer) *UseCase {
	return &UseCase{locations: locations, renderer: renderer, now: time.Now}
}

// Export genera el reporte del modo pedido (by-shelf | full).
func (uc *UseCase) Export(ctx context.Context, mode string) (*Export, error) {
	doc, err := uc.Build(ctx, mode)
	if err != nil {
		return nil, err
	}
	content, err := uc.renderer.Render(ctx, *doc)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return &Export{Filename: Filename(mode, doc.GeneratedAt), Content: content}, nil
}

// Build arma el documento (agrupado, ordenado y truncado) sin renderizarlo.
func (uc *UseCase) Build(ctx context.Context, mode string) (*ports.ReportDocument, error) {
	if mode != ports.ReportModeByShelf && mode != ports.ReportModeFull {
		return nil, fmt.Errorf("%w: modo de reporte %q", domain.ErrInvalidInput, mode)
	}
	items, err := uc.locations.ListAllWithParts(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if mode == ports.ReportModeByShelf {
		return &ports.ReportDocument{Mode: mode, Title: "Teileliste", GeneratedAt: now, Groups: byShelf(items)}, nil
	}
	return &ports.ReportDocument{Mode: mode, Title: "Inventarliste", GeneratedAt: now, Groups: full(items)}, nil
}

// Filename nombre del archivo según modo y fecha.
func Filename(mode string, at time.Time) string {
	if mode == ports.ReportModeByShelf {
		return "teileliste_regal_" + at.Format("20060102") + ".pdf"
	}
	return "inventar_" + at.Format("20060102") + ".pdf"
}

func byShelf(items []*entity.PartLocation) []ports.ReportGroup {
	sorted := append([]*entity.PartLocation(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Shelf != b.Shelf {
			return a.Shelf < b.Shelf
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return catalog.CodeKey(a.Code) < catalog.CodeKey(b.Code)
	})

	var groups []ports.ReportGroup
	for _, it := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].Title != it.Shelf {
			groups = append(groups, ports.ReportGroup{Title: it.Shelf})
		}
		g := &groups[len(groups)-1]
		g.Rows = append(g.Rows, ports.ReportRow{
			Code:        catalog.Truncate(it.Code, byShelfCodeMax),
			Description: catalog.Truncate(descriptionOrDash(it.Description), byShelfDescMax),
			Shelf:       it.Shelf,
			Section:     it.Section,
			Quantity:    it.Quantity.String(),
		})
	}
	return groups
}

func full(items []*entity.PartLocation) []ports.ReportGroup {
	sorted := append([]*entity.PartLocation(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ka, kb := catalog.CodeKey(a.Code), catalog.CodeKey(b.Code)
		if ka != kb {
			return ka < kb
		}
		if a.Shelf != b.Shelf {
			return a.Shelf < b.Shelf
		}
		return a.Section < b.Section
	})

	group := ports.ReportGroup{Rows: make([]ports.ReportRow, 0, len(sorted))}
	prevPart := ""
	for _, it := range sorted {
		group.Rows = append(group.Rows, ports.ReportRow{
			Code:        catalog.Truncate(it.Code, fullCodeMax),
			Description: catalog.Truncate(descriptionOrDash(it.Description), fullDescMax),
			Shelf:       it.Shelf,
			Section:     it.Section,
			Quantity:    it.Quantity.String(),
			// Filas siguientes de la misma pieza van sombreadas
			Shaded: it.PartID == prevPart,
		})
		prevPart = it.PartID
	}
	return []ports.ReportGroup{group}
}

func descriptionOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
