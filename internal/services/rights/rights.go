// Package rights answers legal-rights questions with citations into
// authoritative sources (Constitution, IPC, BNS).
//
// Retrieval is a capability interface; the built-in CorpusRetriever is
// a keyword ranker over a small corpus, standing in for a vector
// search backend.
package rights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyQuestion is returned for blank questions (a client error).
var ErrEmptyQuestion = errors.New("question is empty")

// ErrNoCitations is returned when composition would produce an answer
// without a single citation. For a legal-information system that is a
// policy violation, surfaced as a failure rather than a bare answer.
var ErrNoCitations = errors.New("answer has no citations")

// Citation grounds an answer in an authoritative document.
type Citation struct {
	Source  string `json:"source"`
	Article string `json:"article"`
	Text    string `json:"text"`
}

// SearchHit is one ranked retrieval result.
type SearchHit struct {
	Document  string  `json:"document"`
	Section   string  `json:"section"`
	Relevance float64 `json:"relevance"`
}

// Retriever searches the legal corpus for passages relevant to a query.
// Hits come back ranked by descending relevance.
type Retriever interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// AnswerResult is the outcome of answering one legal query.
type AnswerResult struct {
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Citations    []Citation `json:"citations"`
	Language     string     `json:"language"`
	Confidence   float64    `json:"confidence"`
	ResponseTime float64    `json:"response_time"`
}

// Service composes retrieval and answer formatting. Composition is
// kept separate from search so the ranking backend is swappable.
type Service struct {
	retriever Retriever
	corpus    *Corpus
}

// New creates a Service with the given retrieval backend and corpus.
func New(retriever Retriever, corpus *Corpus) *Service {
	if corpus == nil {
		corpus = DefaultCorpus()
	}
	return &Service{retriever: retriever, corpus: corpus}
}

// NewDefault creates a Service retrieving from the built-in corpus.
func NewDefault() *Service {
	corpus := DefaultCorpus()
	return New(NewCorpusRetriever(corpus), corpus)
}

// AnswerLegalQuery answers a rights question, citing every source the
// answer draws on. At least one citation always accompanies a
// successful answer.
func (s *Service) AnswerLegalQuery(ctx context.Context, question, language string) (AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return AnswerResult{}, ErrEmptyQuestion
	}
	if language == "" {
		language = "hi"
	}

	start := time.Now()

	hits, err := s.retriever.Search(ctx, question)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("search legal corpus: %w", err)
	}

	citations := s.corpus.CitationsFor(hits)
	if len(citations) == 0 {
		return AnswerResult{}, ErrNoCitations
	}

	confidence := 0.0
	if len(hits) > 0 {
		confidence = hits[0].Relevance
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return AnswerResult{
		Question:     question,
		Answer:       composeAnswer(citations),
		Citations:    citations,
		Language:     language,
		Confidence:   confidence,
		ResponseTime: time.Since(start).Seconds(),
	}, nil
}

// composeAnswer renders a plain-language answer from the cited passages.
func composeAnswer(citations []Citation) string {
	var b strings.Builder
	b.WriteString("Based on ")
	b.WriteString(citations[0].Source)
	b.WriteString(", ")
	b.WriteString(citations[0].Article)
	b.WriteString(": ")
	b.WriteString(citations[0].Text)
	for _, c := range citations[1:] {
		b.WriteString(" See also ")
		b.WriteString(c.Source)
		b.WriteString(", ")
		b.WriteString(c.Article)
		b.WriteString(".")
	}
	return b.String()
}
