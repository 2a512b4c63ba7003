package rights

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerLegalQuery_Article21(t *testing.T) {
	s := NewDefault()

	result, err := s.AnswerLegalQuery(context.Background(), "What are my rights under Article 21?", "en")
	require.NoError(t, err)

	assert.Equal(t, "en", result.Language)
	require.NotEmpty(t, result.Citations)

	found := false
	for _, c := range result.Citations {
		if strings.Contains(c.Article, "Article 21") {
			found = true
		}
	}
	assert.True(t, found, "citations must reference Article 21: %+v", result.Citations)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.NotEmpty(t, result.Answer)
}

func TestAnswerLegalQuery_AlwaysCited(t *testing.T) {
	s := NewDefault()
	ctx := context.Background()

	questions := []string{
		"What are my rights under Article 21?",
		"Can I be arrested for speaking at a protest?",
		"My phone was stolen, what law applies?",
		"completely unrelated gibberish question",
	}

	for _, q := range questions {
		result, err := s.AnswerLegalQuery(ctx, q, "hi")
		require.NoError(t, err, "question %q", q)
		assert.NotEmpty(t, result.Citations, "every answer needs at least one citation: %q", q)
	}
}

func TestAnswerLegalQuery_EmptyQuestion(t *testing.T) {
	s := NewDefault()

	for _, q := range []string{"", "   ", "\n"} {
		_, err := s.AnswerLegalQuery(context.Background(), q, "hi")
		assert.ErrorIs(t, err, ErrEmptyQuestion, "question %q", q)
	}
}

func TestAnswerLegalQuery_DefaultLanguage(t *testing.T) {
	s := NewDefault()

	result, err := s.AnswerLegalQuery(context.Background(), "What is Article 14?", "")
	require.NoError(t, err)
	assert.Equal(t, "hi", result.Language)
}

type emptyRetriever struct{}

func (emptyRetriever) Search(context.Context, string) ([]SearchHit, error) {
	return nil, nil
}

func TestAnswerLegalQuery_NoCitationsIsFailure(t *testing.T) {
	// A backend that returns nothing must surface as a policy
	// violation, never a citation-less success.
	s := New(emptyRetriever{}, DefaultCorpus())

	_, err := s.AnswerLegalQuery(context.Background(), "what are my rights?", "en")
	assert.ErrorIs(t, err, ErrNoCitations)
}

func TestCorpusRetriever_Ranking(t *testing.T) {
	r := NewCorpusRetriever(DefaultCorpus())

	hits, err := r.Search(context.Background(), "my property was stolen, is that theft?")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "IPC", hits[0].Document)
	assert.Equal(t, "Section 378", hits[0].Section)

	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Relevance, 0.0)
		assert.LessOrEqual(t, h.Relevance, 1.0)
	}
}

func TestCorpusRetriever_FallsBackToGeneralEntry(t *testing.T) {
	r := NewCorpusRetriever(DefaultCorpus())

	hits, err := r.Search(context.Background(), "zzz nothing matches this")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Article 21", hits[0].Section)
}

func TestLoadCorpus_MissingFileUsesDefaults(t *testing.T) {
	c, err := LoadCorpus(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.entries)
}

func TestLoadCorpus_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	content := `entries:
  - source: RTI Act
    article: Section 6
    text: A person may request information from a public authority.
    keywords: [rti, information]
    general: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := LoadCorpus(path)
	require.NoError(t, err)

	r := NewCorpusRetriever(c)
	hits, err := r.Search(context.Background(), "how do I file an RTI?")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "RTI Act", hits[0].Document)

	citations := c.CitationsFor(hits)
	require.Len(t, citations, 1)
	assert.Equal(t, "Section 6", citations[0].Article)
}
