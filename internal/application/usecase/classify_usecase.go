package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/domain/textclass"
)

// ClassifyUseCase separa los fragmentos OCR de una foto en candidatos de código y de descripción.
// Aplica un timeout de 10 segundos a cada llamada al clasificador.
type ClassifyUseCase struct {
	classifier    ports.TextClassifier
	minConfidence float64
}

// NewClassifyUseCase construye el caso de uso. Fragmentos con confianza OCR menor a minConfidence se descartan.
func NewClassifyUseCase(classifier ports.TextClassifier, minConfidence float64) *ClassifyUseCase {
	return &ClassifyUseCase{classifier: classifier, minConfidence: minConfidence}
}

// Categorize filtra, clasifica y ordena: códigos por (code_score, confianza) desc,
// descripciones por confianza desc.
func (uc *ClassifyUseCase) Categorize(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	fragments := make([]ports.TextFragment, 0, len(req.Fragments))
	for _, f := range req.Fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" || f.Confidence < uc.minConfidence {
			continue
		}
		fragments = append(fragments, ports.TextFragment{Text: text, Confidence: f.Confidence})
	}
	out := &dto.ClassifyResponse{
		Codes:        []dto.ClassifiedFragmentResponse{},
		Descriptions: []dto.ClassifiedFragmentResponse{},
	}
	if len(fragments) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	classified, err := uc.classifier.Classify(ctx, fragments)
	if err != nil {
		return nil, fmt.Errorf("clasificar fragmentos: %w", err)
	}

	for _, c := range classified {
		item := dto.ClassifiedFragmentResponse{Text: c.Text, Label: c.Label, Confidence: c.Confidence, CodeScore: c.CodeScore}
		if c.Label == textclass.LabelCode {
			out.Codes = append(out.Codes, item)
		} else {
			out.Descriptions = append(out.Descriptions, item)
		}
	}
	sort.SliceStable(out.Codes, func(i, j int) bool {
		a, b := out.Codes[i], out.Codes[j]
		if a.CodeScore != b.CodeScore {
			return a.CodeScore > b.CodeScore
		}
		return a.Confidence > b.Confidence
	})
	sort.SliceStable(out.Descriptions, func(i, j int) bool {
		return out.Descriptions[i].Confidence > out.Descriptions[j].Confidence
	})
	return out, nil
}
