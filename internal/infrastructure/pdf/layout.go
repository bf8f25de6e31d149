package pdf

import "github.com/jhoicas/parts-catalog/internal/application/ports"

// pageCapacity alto útil (mm) de una página A4: 297 menos márgenes (10 + 15) y cabecera (20),
// con holgura para que Maroto nunca corte una página por su cuenta.
const pageCapacity = 250.0

type blockKind int

const (
	blockShelfBar blockKind = iota
	blockTableHeader
	blockRow
	blockSpacer
)

var blockHeights = map[blockKind]float64{
	blockShelfBar:    8,
	blockTableHeader: 7,
	blockRow:         7,
	blockSpacer:      3,
}

// block una fila lógica de la lista antes de convertirla en fila de Maroto.
type block struct {
	kind  blockKind
	title string
	row   ports.ReportRow
}

type paginator struct {
	capacity float64
	used     float64
	pages    [][]block
}

func newPaginator(capacity float64) *paginator {
	return &paginator{capacity: capacity, pages: [][]block{nil}}
}

func (p *paginator) fits(kinds ...blockKind) bool {
	h := 0.0
	for _, k := range kinds {
		h += blockHeights[k]
	}
	return p.used+h <= p.capacity
}

func (p *paginator) add(b block) {
	last := len(p.pages) - 1
	p.pages[last] = append(p.pages[last], b)
	p.used += blockHeights[b.kind]
}

func (p *paginator) newPage() {
	if len(p.pages[len(p.pages)-1]) == 0 {
		return
	}
	p.pages = append(p.pages, nil)
	p.used = 0
}

// layout reparte el documento en páginas. Si un estante continúa en la página siguiente se
// repiten la barra "Regal X (Fortsetzung)" y la cabecera de la tabla; en el listado completo
// se repite la cabecera.
func layout(doc ports.ReportDocument, capacity float64) [][]block {
	p := newPaginator(capacity)
	header := block{kind: blockTableHeader}

	if doc.Mode == ports.ReportModeByShelf {
		for _, g := range doc.Groups {
			if !p.fits(blockShelfBar, blockTableHeader, blockRow) {
				p.newPage()
			}
			p.add(block{kind: blockShelfBar, title: "Regal " + g.Title})
			p.add(header)
			for _, r := range g.Rows {
				if !p.fits(blockRow) {
					p.newPage()
					p.add(block{kind: blockShelfBar, title: "Regal " + g.Title + " (Fortsetzung)"})
					p.add(header)
				}
				p.add(block{kind: blockRow, row: r})
			}
			if p.fits(blockSpacer) {
				p.add(block{kind: blockSpacer})
			}
		}
		return p.pages
	}

	p.add(header)
	for _, g := range doc.Groups {
		for _, r := range g.Rows {
			if !p.fits(blockRow) {
				p.newPage()
				p.add(header)
			}
			p.add(block{kind: blockRow, row: r})
		}
	}
	return p.pages
}
