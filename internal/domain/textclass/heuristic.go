// Package textclass clasifica fragmentos de texto OCR como código de pieza o descripción.
package textclass

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Etiquetas de clasificación.
const (
	LabelCode        = "code"
	LabelDescription = "description"
)

// CodeThreshold puntaje mínimo para considerar un fragmento como código.
const CodeThreshold = 50.0

var (
	codePattern     = regexp.MustCompile(`^[A-Za-z0-9][-_./A-Za-z0-9]*[A-Za-z0-9]$|^[A-Za-z0-9]$`)
	separatorRe     = regexp.MustCompile(`[-_./]`)
	lowercaseWordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

	// Palabras típicas de descripciones (el catálogo se usa en inglés y alemán).
	descriptionWords = []string{"the", "and", "for", "with", "from", "this", "that", "part", "type", "size", "model"}
)

// Classification resultado de puntuar un fragmento.
type Classification struct {
	Label string
	Score float64 // 0-100, qué tan "código" parece
}

// Score puntúa qué tan parecido a un código de pieza es text.
// Los códigos suelen ser cortos, alfanuméricos con separadores (-, _, ., /), con dígitos y
// pocas palabras en minúscula.
func Score(text string) Classification {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)

	// Demasiado largo o corto, o con muchas palabras: descripción
	if n > 25 || n < 2 || strings.Count(text, " ") > 2 {
		return Classification{Label: LabelDescription, Score: 0}
	}

	score := 50.0

	if codePattern.MatchString(strings.ReplaceAll(text, " ", "")) {
		score += 20
	}

	digits, upper := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsUpper(r):
			upper++
		}
	}
	if digits > 0 {
		score += math.Min(30, float64(digits)/float64(n)*40)
	}

	if separatorRe.MatchString(text) {
		score += 15
	}

	switch {
	case n <= 10:
		score += 15
	case n <= 15:
		score += 5
	}

	if isAllUpper(text) || (upper > 0 && digits > 0) {
		score += 10
	}

	score -= float64(len(lowercaseWordRe.FindAllString(text, -1))) * 15

	words := strings.Fields(strings.ToLower(text))
	for _, dw := range descriptionWords {
		for _, w := range words {
			if w == dw {
				score -= 20
				break
			}
		}
	}

	label := LabelDescription
	if score >= CodeThreshold {
		label = LabelCode
	}
	return Classification{Label: label, Score: math.Max(0, math.Min(100, score))}
}

// isAllUpper: al menos una letra y ninguna minúscula.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
