// Package officer translates vernacular documents into formal
// English/Hindi for government officials.
package officer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SupportedScripts are the scripts the detection backend can name.
var SupportedScripts = []string{"devanagari", "latin", "bengali", "tamil"}

// OfficialHeader is the fixed header the formatting step prepends.
// Formatting is separable from translation so it can be swapped per
// target jurisdiction.
const OfficialHeader = "OFFICIAL TRANSLATION"

// ScriptDetector identifies the source script/language of a document image.
type ScriptDetector interface {
	DetectScript(ctx context.Context, image []byte) (string, error)
}

// FormalTranslator produces a formal translation of a document image,
// along with a document-type classification and a confidence in [0,1].
type FormalTranslator interface {
	TranslateFormal(ctx context.Context, image []byte) (text, documentType string, confidence float64, err error)
}

// OfficialResult is the outcome of translating one vernacular document.
type OfficialResult struct {
	DocumentID        string  `json:"document_id"`
	OriginalLanguage  string  `json:"original_language"`
	FormalTranslation string  `json:"formal_translation"`
	DocumentType      string  `json:"document_type"`
	ConfidenceScore   float64 `json:"confidence_score"`
}

// Service composes detection, translation, and formatting.
type Service struct {
	detector   ScriptDetector
	translator FormalTranslator
}

// New creates a Service with the given capability backends.
func New(detector ScriptDetector, translator FormalTranslator) *Service {
	return &Service{detector: detector, translator: translator}
}

// NewDefault creates a Service with the built-in stub backends.
func NewDefault() *Service {
	return New(StubDetector{}, StubTranslator{})
}

// ProcessVernacularDocument detects the source script, translates the
// document formally, and wraps it as an official document.
func (s *Service) ProcessVernacularDocument(ctx context.Context, image []byte) (OfficialResult, error) {
	script, err := s.detector.DetectScript(ctx, image)
	if err != nil {
		return OfficialResult{}, fmt.Errorf("detect script: %w", err)
	}

	text, docType, confidence, err := s.translator.TranslateFormal(ctx, image)
	if err != nil {
		return OfficialResult{}, fmt.Errorf("translate: %w", err)
	}

	return OfficialResult{
		DocumentID:        uuid.NewString(),
		OriginalLanguage:  script,
		FormalTranslation: FormatOfficial(text),
		DocumentType:      docType,
		ConfidenceScore:   confidence,
	}, nil
}

// FormatOfficial wraps a translation with the fixed official header.
func FormatOfficial(translated string) string {
	return fmt.Sprintf("%s\n\n%s", OfficialHeader, translated)
}

// StubDetector is the placeholder script-detection backend.
type StubDetector struct{}

func (StubDetector) DetectScript(_ context.Context, _ []byte) (string, error) {
	return "devanagari", nil
}

// StubTranslator is the placeholder formal-translation backend.
type StubTranslator struct{}

func (StubTranslator) TranslateFormal(_ context.Context, _ []byte) (string, string, float64, error) {
	return "Formal English/Hindi translation", "petition", 0.95, nil
}
