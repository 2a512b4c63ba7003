// Package legallens processes legal documents for citizens: text
// extraction, translation, and simplification to plain language.
//
// The OCR and translation backends are modeled as capability
// interfaces. The built-in implementations are trivial placeholders
// that double as test fakes; real integrations (e.g. Textract,
// Bedrock) slot in behind the same interfaces.
package legallens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SupportedLanguages are the language codes the service accepts.
var SupportedLanguages = []string{"hi", "en", "bn", "ta", "te", "mr", "gu"}

// ErrUnsupportedLanguage is returned for language codes outside the
// supported set. Requests are rejected, never silently defaulted.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// TextExtractor extracts text from a document image.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Simplifier translates text and rewrites it in plain language.
type Simplifier interface {
	Simplify(ctx context.Context, text, targetLanguage string) (string, error)
}

// DocumentResult is the outcome of processing one document.
type DocumentResult struct {
	DocumentID     string   `json:"document_id"`
	ExtractedText  string   `json:"extracted_text,omitempty"`
	SimplifiedText string   `json:"simplified_text"`
	Deadlines      []string `json:"deadlines"`
	ActionItems    []string `json:"action_items"`
	Language       string   `json:"language"`
	ProcessingTime float64  `json:"processing_time"`
}

// Service composes extraction and simplification.
type Service struct {
	extractor  TextExtractor
	simplifier Simplifier
	supported  map[string]bool
}

// New creates a Service with the given capability backends.
func New(extractor TextExtractor, simplifier Simplifier) *Service {
	supported := make(map[string]bool, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		supported[l] = true
	}
	return &Service{
		extractor:  extractor,
		simplifier: simplifier,
		supported:  supported,
	}
}

// NewDefault creates a Service with the built-in stub backends.
func NewDefault() *Service {
	return New(StubExtractor{}, StubSimplifier{})
}

// ProcessDocument extracts, translates, and simplifies a legal
// document image. Deadlines are display strings as they appear in the
// document — no date format is assumed.
func (s *Service) ProcessDocument(ctx context.Context, image []byte, language string) (DocumentResult, error) {
	if language == "" {
		language = "hi"
	}
	if !s.supported[language] {
		return DocumentResult{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	start := time.Now()

	extracted, err := s.extractor.ExtractText(ctx, image)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("extract text: %w", err)
	}

	simplified, err := s.simplifier.Simplify(ctx, extracted, language)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("simplify: %w", err)
	}

	return DocumentResult{
		DocumentID:     uuid.NewString(),
		ExtractedText:  extracted,
		SimplifiedText: simplified,
		Deadlines:      []string{},
		ActionItems:    []string{},
		Language:       language,
		ProcessingTime: time.Since(start).Seconds(),
	}, nil
}

// StubExtractor is the placeholder OCR backend.
type StubExtractor struct{}

func (StubExtractor) ExtractText(_ context.Context, _ []byte) (string, error) {
	return "Sample extracted text", nil
}

// StubSimplifier is the placeholder translation/simplification backend.
type StubSimplifier struct{}

func (StubSimplifier) Simplify(_ context.Context, _ string, targetLanguage string) (string, error) {
	return fmt.Sprintf("Simplified text in %s", targetLanguage), nil
}
