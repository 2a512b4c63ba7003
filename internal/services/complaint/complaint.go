// Package complaint files voice complaints: transcription,
// categorization, department routing, and tracking-ID issuance.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrackingPrefix is the fixed human-readable prefix of tracking IDs.
const TrackingPrefix = "NYC-"

// Status is a complaint lifecycle state.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// Valid reports whether s belongs to the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition s → next is allowed.
// The machine is forward-only: submitted → in_progress → resolved or
// rejected. Filing only ever produces submitted; later states exist so
// downstream tracking can adopt them without a contract change.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusSubmitted:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusResolved || next == StatusRejected
	}
	return false
}

// ErrUnroutedCategory is returned when no department matches the
// complaint's category. Unmatched complaints are reported, never
// routed to a guessed department.
var ErrUnroutedCategory = errors.New("no department for complaint category")

// Transcriber converts a referenced audio recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Categorization is the outcome of classifying a complaint text.
type Categorization struct {
	Type       string `json:"type"`
	Category   string `json:"category"`
	Department string `json:"department"`
}

// Result is the outcome of filing one voice complaint.
type Result struct {
	TrackingID      string `json:"tracking_id"`
	ComplaintType   string `json:"complaint_type"`
	Category        string `json:"category"`
	TranscribedText string `json:"transcribed_text"`
	Location        string `json:"location"`
	Status          Status `json:"status"`
	DepartmentEmail string `json:"department_email"`
	Timestamp       string `json:"timestamp"`
}

// Service composes transcription, categorization, and routing.
type Service struct {
	transcriber Transcriber
	departments map[string]string
}

// New creates a Service with the given transcription backend and
// category→department table.
func New(transcriber Transcriber, departments map[string]string) *Service {
	if departments == nil {
		departments = DefaultDepartments()
	}
	return &Service{transcriber: transcriber, departments: departments}
}

// NewDefault creates a Service with the stub transcriber and the
// built-in department table.
func NewDefault() *Service {
	return New(StubTranscriber{}, DefaultDepartments())
}

// NewTrackingID issues a tracking identifier: the fixed prefix plus an
// 8-char uppercase hex suffix drawn from a UUIDv4, so IDs are globally
// unique and leak no ordering information.
func NewTrackingID() string {
	u := uuid.New()
	return TrackingPrefix + strings.ToUpper(fmt.Sprintf("%x", u[:4]))
}

// ProcessVoiceComplaint transcribes the audio, categorizes the
// complaint, resolves the responsible department, and issues a
// tracking ID with the initial lifecycle status.
func (s *Service) ProcessVoiceComplaint(ctx context.Context, audioURL, language string) (Result, error) {
	if language == "" {
		language = "hi"
	}
	_ = language // transcription backends take the language hint; the stub ignores it

	text, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}

	cat, err := s.Categorize(text)
	if err != nil {
		return Result{}, err
	}

	return Result{
		TrackingID:      NewTrackingID(),
		ComplaintType:   cat.Type,
		Category:        cat.Category,
		TranscribedText: text,
		Location:        extractLocation(text),
		Status:          StatusSubmitted,
		DepartmentEmail: cat.Department,
		Timestamp:       time.Now().Format(time.RFC3339),
	}, nil
}

// categoryKeywords maps complaint categories to trigger words for the
// placeholder classifier.
var categoryKeywords = map[string][]string{
	"water":       {"water", "pipeline", "sewage", "drainage"},
	"roads":       {"road", "pothole", "street", "footpath"},
	"electricity": {"electricity", "power", "transformer", "streetlight"},
}

// Categorize classifies a complaint text and resolves its department
// from the category table. A category with no department entry is an
// explicit unrouted outcome.
func (s *Service) Categorize(text string) (Categorization, error) {
	lower := strings.ToLower(text)
	for category, words := range categoryKeywords {
		for _, w := range words {
			if strings.Contains(lower, w) {
				email, ok := s.departments[category]
				if !ok {
					return Categorization{}, fmt.Errorf("%w: %q", ErrUnroutedCategory, category)
				}
				return Categorization{
					Type:       "municipal",
					Category:   category,
					Department: email,
				}, nil
			}
		}
	}
	return Categorization{}, fmt.Errorf("%w: no category matched", ErrUnroutedCategory)
}

// extractLocation pulls a rough location phrase from the transcript.
func extractLocation(text string) string {
	lower := strings.ToLower(text)
	if i := strings.Index(lower, "near "); i >= 0 {
		loc := text[i+len("near "):]
		if j := strings.IndexAny(loc, ".,;"); j >= 0 {
			loc = loc[:j]
		}
		return strings.TrimSpace(loc)
	}
	return "unspecified"
}

// StubTranscriber is the placeholder speech-to-text backend.
type StubTranscriber struct{}

func (StubTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return "There is a large pothole on the road near the market", nil
}
