package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/domain/textclass"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// classifierSystemPrompt define el rol del modelo y el formato de salida (compartido por los adaptadores LLM).
const classifierSystemPrompt = `Eres un asistente de almacén que separa el texto leído por OCR de la foto de una pieza.
Cada fragmento es un código de pieza (número de parte, referencia, SKU) o texto descriptivo.
Devuelve ÚNICAMENTE un objeto JSON (sin markdown, sin texto adicional) con esta estructura exacta:
{
  "labels": [
    {"index": <índice del fragmento>, "label": "code" | "description", "code_score": <entero 0-100>}
  ]
}

Reglas:
- Un elemento por fragmento, con el mismo índice de la entrada.
- code_score: qué tan probable es que el fragmento sea un código (100 = seguro).
- Los códigos suelen ser cortos, alfanuméricos y con separadores (-, _, ., /).`

// Option configura los adaptadores HTTP (endpoint y cliente; útil en tests).
type Option func(*httpOptions)

type httpOptions struct {
	endpoint   string
	httpClient *http.Client
}

// WithEndpoint reemplaza la URL del API.
func WithEndpoint(url string) Option {
	return func(o *httpOptions) { o.endpoint = url }
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(c *http.Client) Option {
	return func(o *httpOptions) { o.httpClient = c }
}

func buildOptions(defaultEndpoint string, opts []Option) httpOptions {
	o := httpOptions{
		endpoint: defaultEndpoint,
		// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ── Heurístico ────────────────────────────────────────────────────────────────

var _ ports.TextClassifier = (*HeuristicClassifier)(nil)

// HeuristicClassifier clasifica localmente con textclass.Score (sin red).
type HeuristicClassifier struct{}

// NewHeuristicClassifier construye el clasificador heurístico.
func NewHeuristicClassifier() *HeuristicClassifier { return &HeuristicClassifier{} }

// Classify puntúa cada fragmento.
func (h *HeuristicClassifier) Classify(_ context.Context, fragments []ports.TextFragment) ([]ports.ClassifiedFragment, error) {
	out := make([]ports.ClassifiedFragment, 0, len(fragments))
	for _, f := range fragments {
		c := textclass.Score(f.Text)
		out = append(out, ports.ClassifiedFragment{
			Text:       f.Text,
			Label:      c.Label,
			Confidence: f.Confidence,
			CodeScore:  c.Score,
		})
	}
	return out, nil
}

// ── Fallback ──────────────────────────────────────────────────────────────────

var _ ports.TextClassifier = (*FallbackClassifier)(nil)

// FallbackClassifier usa primary y, si falla, fallback (normalmente el heurístico).
type FallbackClassifier struct {
	primary  ports.TextClassifier
	fallback ports.TextClassifier
	log      *logger.Logger
}

// NewFallbackClassifier construye el clasificador con respaldo.
func NewFallbackClassifier(primary, fallback ports.TextClassifier, log *logger.Logger) *FallbackClassifier {
	return &FallbackClassifier{primary: primary, fallback: fallback, log: log}
}

// Classify delega en primary; ante error registra un warning y usa fallback.
func (f *FallbackClassifier) Classify(ctx context.Context, fragments []ports.TextFragment) ([]ports.ClassifiedFragment, error) {
	out, err := f.primary.Classify(ctx, fragments)
	if err == nil {
		return out, nil
	}
	f.log.Warn().Err(err).Int("fragments", len(fragments)).Msg("clasificador LLM falló, usando heurístico")
	return f.fallback.Classify(ctx, fragments)
}

// ── Protocolo común de los LLM ────────────────────────────────────────────────

type labelsPayload struct {
	Labels []struct {
		Index     int     `json:"index"`
		Label     string  `json:"label"`
		CodeScore float64 `json:"code_score"`
	} `json:"labels"`
}

// buildUserContent enumera los fragmentos: "0: texto".
func buildUserContent(fragments []ports.TextFragment) string {
	var b strings.Builder
	b.WriteString("Fragmentos OCR:\n")
	for i, f := range fragments {
		fmt.Fprintf(&b, "%d: %s\n", i, f.Text)
	}
	return b.String()
}

// parseLabels convierte la respuesta del modelo en fragmentos clasificados.
// Exige una etiqueta válida por fragmento; si falta alguna es error (y aplica el fallback).
func parseLabels(rawText string, fragments []ports.TextFragment) ([]ports.ClassifiedFragment, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var payload labelsPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de etiquetas: %w (JSON extraído: %s)", err, cleanJSON)
	}

	out := make([]ports.ClassifiedFragment, len(fragments))
	seen := make([]bool, len(fragments))
	for _, l := range payload.Labels {
		if l.Index < 0 || l.Index >= len(fragments) {
			return nil, fmt.Errorf("AI: índice fuera de rango %d", l.Index)
		}
		if l.Label != textclass.LabelCode && l.Label != textclass.LabelDescription {
			return nil, fmt.Errorf("AI: etiqueta desconocida %q", l.Label)
		}
		out[l.Index] = ports.ClassifiedFragment{
			Text:       fragments[l.Index].Text,
			Label:      l.Label,
			Confidence: fragments[l.Index].Confidence,
			CodeScore:  clamp(l.CodeScore, 0, 100),
		}
		seen[l.Index] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("AI: falta la etiqueta del fragmento %d", i)
		}
	}
	return out, nil
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
