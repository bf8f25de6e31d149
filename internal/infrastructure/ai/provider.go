package ai

import (
	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// NewFromConfig elige el clasificador según CLASSIFIER_PROVIDER.
// Los proveedores LLM quedan envueltos con el heurístico como respaldo.
func NewFromConfig(cfg config.ClassifierConfig, log *logger.Logger) ports.TextClassifier {
	heuristic := NewHeuristicClassifier()
	switch cfg.Provider {
	case config.ClassifierAnthropic:
		return NewFallbackClassifier(NewAnthropicClassifier(cfg.AnthropicAPIKey, cfg.AnthropicModel), heuristic, log)
	case config.ClassifierGemini:
		return NewFallbackClassifier(NewGeminiClassifier(cfg.GeminiAPIKey, cfg.GeminiModel), heuristic, log)
	default:
		return heuristic
	}
}
