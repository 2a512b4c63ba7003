package rights

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one citable passage in the legal corpus.
type Entry struct {
	Source   string   `yaml:"source"`
	Article  string   `yaml:"article"`
	Text     string   `yaml:"text"`
	Keywords []string `yaml:"keywords"`
	General  bool     `yaml:"general"` // fallback entry when nothing matches
}

// Corpus is the set of passages the stub retriever ranks over.
type Corpus struct {
	entries []Entry
	byKey   map[string]Entry // "source|article" → entry
}

// NewCorpus builds a corpus from entries.
func NewCorpus(entries []Entry) *Corpus {
	byKey := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byKey[entryKey(e.Source, e.Article)] = e
	}
	return &Corpus{entries: entries, byKey: byKey}
}

func entryKey(source, article string) string {
	return source + "|" + article
}

// DefaultCorpus returns the built-in corpus covering the Constitution,
// IPC, and BNS.
func DefaultCorpus() *Corpus {
	return NewCorpus([]Entry{
		{
			Source:   "Indian Constitution",
			Article:  "Article 21",
			Text:     "No person shall be deprived of his life or personal liberty except according to procedure established by law.",
			Keywords: []string{"article 21", "life", "liberty", "rights"},
			General:  true,
		},
		{
			Source:   "Indian Constitution",
			Article:  "Article 14",
			Text:     "The State shall not deny to any person equality before the law or the equal protection of the laws.",
			Keywords: []string{"article 14", "equality", "discrimination"},
		},
		{
			Source:   "Indian Constitution",
			Article:  "Article 19",
			Text:     "All citizens shall have the right to freedom of speech and expression.",
			Keywords: []string{"article 19", "speech", "expression", "freedom"},
		},
		{
			Source:   "IPC",
			Article:  "Section 378",
			Text:     "Whoever, intending to take dishonestly any movable property out of the possession of any person without that person's consent, is said to commit theft.",
			Keywords: []string{"theft", "stolen", "property"},
		},
		{
			Source:   "BNS",
			Article:  "Section 115",
			Text:     "Whoever voluntarily causes hurt shall be punished as provided.",
			Keywords: []string{"hurt", "assault", "injury"},
		},
	})
}

// corpusFile is the top-level structure of corpus.yaml.
type corpusFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadCorpus reads corpus entries from a YAML file. A missing file
// falls back to the built-in corpus.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCorpus(), nil
		}
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus file: %w", err)
	}
	if len(f.Entries) == 0 {
		return DefaultCorpus(), nil
	}
	return NewCorpus(f.Entries), nil
}

// CitationsFor resolves ranked hits back to citation records.
func (c *Corpus) CitationsFor(hits []SearchHit) []Citation {
	citations := make([]Citation, 0, len(hits))
	for _, h := range hits {
		e, ok := c.byKey[entryKey(h.Document, h.Section)]
		if !ok {
			continue
		}
		citations = append(citations, Citation{
			Source:  e.Source,
			Article: e.Article,
			Text:    e.Text,
		})
	}
	return citations
}

// CorpusRetriever ranks corpus entries by keyword overlap with the
// query. It always returns at least the corpus's general entry, the
// way the production vector backend always returns its top-k.
type CorpusRetriever struct {
	corpus *Corpus
}

// NewCorpusRetriever creates a retriever over the given corpus.
func NewCorpusRetriever(corpus *Corpus) *CorpusRetriever {
	return &CorpusRetriever{corpus: corpus}
}

// Search ranks entries by how many of their keywords appear in the query.
func (r *CorpusRetriever) Search(_ context.Context, query string) ([]SearchHit, error) {
	lower := strings.ToLower(query)

	var hits []SearchHit
	for _, e := range r.corpus.entries {
		matched := 0
		for _, kw := range e.Keywords {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		relevance := 0.6 + 0.35*float64(matched)/float64(len(e.Keywords))
		hits = append(hits, SearchHit{
			Document:  e.Source,
			Section:   e.Article,
			Relevance: relevance,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Relevance > hits[j].Relevance })

	if len(hits) == 0 {
		for _, e := range r.corpus.entries {
			if e.General {
				hits = append(hits, SearchHit{Document: e.Source, Section: e.Article, Relevance: 0.5})
				break
			}
		}
	}
	return hits, nil
}
