// Package catalog reúne las reglas de normalización del catálogo de piezas.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeCode limpia el código tal como lo escribió el usuario (solo trim).
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// Fold aplica case folding Unicode completo ("Größe" y "GRÖSSE" dan "grösse").
// Un Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// CodeKey devuelve la clave de deduplicación de un código: trim + case folding.
// Es el único mecanismo de detección de duplicados: "P-1234", "p-1234" y "P-1234 " comparten clave.
func CodeKey(code string) string {
	return Fold(NormalizeCode(code))
}

// NormalizeShelf limpia el nombre del estante.
func NormalizeShelf(shelf string) string {
	return strings.TrimSpace(shelf)
}

// NormalizeSection limpia la sección; vacía significa "sin sección".
func NormalizeSection(section string) string {
	return strings.TrimSpace(section)
}

// Truncate corta s a max runas (listas impresas).
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
