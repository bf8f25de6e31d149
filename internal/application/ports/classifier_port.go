package ports

import "context"

// TextFragment fragmento reconocido por OCR. Confidence en escala 0-100.
type TextFragment struct {
	Text       string
	Confidence float64
}

// ClassifiedFragment fragmento etiquetado. CodeScore (0-100) indica qué tan "código" parece.
type ClassifiedFragment struct {
	Text       string
	Label      string // code | description
	Confidence float64
	CodeScore  float64
}

// TextClassifier define el puerto de salida para clasificar fragmentos OCR en código o descripción.
// Cualquier adaptador (heurístico, Anthropic, mock) debe implementar esta interfaz.
// Devuelve un resultado por fragmento, en el mismo orden de entrada.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type TextClassifier interface {
	Classify(ctx context.Context, fragments []TextFragment) ([]ClassifiedFragment, error)
}
