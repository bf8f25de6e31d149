package dto

// OCRFragment fragmento de texto reconocido por OCR con su confianza (0-100).
type OCRFragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ClassifyRequest body para POST /api/ocr/classify.
type ClassifyRequest struct {
	Fragments []OCRFragment `json:"fragments"`
}

// ClassifiedFragmentResponse fragmento etiquetado como código o descripción.
type ClassifiedFragmentResponse struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"` // code | description
	Confidence float64 `json:"confidence"`
	CodeScore  float64 `json:"code_score"`
}

// ClassifyResponse candidatos de código y de descripción, ya ordenados.
type ClassifyResponse struct {
	Codes        []ClassifiedFragmentResponse `json:"codes"`
	Descriptions []ClassifiedFragmentResponse `json:"descriptions"`
}
