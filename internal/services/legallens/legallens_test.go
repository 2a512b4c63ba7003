package legallens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDocument_LanguageEcho(t *testing.T) {
	s := NewDefault()
	ctx := context.Background()

	for _, lang := range SupportedLanguages {
		result, err := s.ProcessDocument(ctx, []byte("fake-image"), lang)
		require.NoError(t, err, "language %q", lang)
		assert.Equal(t, lang, result.Language, "language must echo input unchanged")
	}
}

func TestProcessDocument_DefaultLanguage(t *testing.T) {
	s := NewDefault()

	result, err := s.ProcessDocument(context.Background(), []byte("fake-image"), "")
	require.NoError(t, err)
	assert.Equal(t, "hi", result.Language)
}

func TestProcessDocument_UnsupportedLanguage(t *testing.T) {
	s := NewDefault()

	for _, lang := range []string{"fr", "xx", "HI", "hindi"} {
		_, err := s.ProcessDocument(context.Background(), []byte("fake-image"), lang)
		assert.ErrorIs(t, err, ErrUnsupportedLanguage, "language %q", lang)
	}
}

func TestProcessDocument_ResultShape(t *testing.T) {
	s := NewDefault()

	result, err := s.ProcessDocument(context.Background(), []byte("fake-image"), "en")
	require.NoError(t, err)

	assert.NotEmpty(t, result.DocumentID)
	assert.NotEmpty(t, result.SimplifiedText)
	assert.NotNil(t, result.Deadlines)
	assert.NotNil(t, result.ActionItems)
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)
}

func TestProcessDocument_UniqueDocumentIDs(t *testing.T) {
	s := NewDefault()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		result, err := s.ProcessDocument(ctx, []byte("fake-image"), "hi")
		require.NoError(t, err)
		assert.False(t, seen[result.DocumentID], "document ID reused: %s", result.DocumentID)
		seen[result.DocumentID] = true
	}
}

type failingExtractor struct{}

func (failingExtractor) ExtractText(context.Context, []byte) (string, error) {
	return "", errors.New("ocr backend down")
}

func TestProcessDocument_ExtractorFailure(t *testing.T) {
	s := New(failingExtractor{}, StubSimplifier{})

	_, err := s.ProcessDocument(context.Background(), []byte("fake-image"), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract text")
}
