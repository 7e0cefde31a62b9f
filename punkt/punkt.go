// Package punkt provides a sentence classifier backed by the Punkt
// unsupervised sentence boundary detector.
//
// German training data is embedded in this package; English comes from
// github.com/neurosnap/sentences. Custom training data can be loaded from a
// JSON file.
package punkt

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

// ErrUnknownLanguage indicates no training data is available for a language.
var ErrUnknownLanguage = errors.New("punkt: unknown language")

//go:embed data/*.json
var embedded embed.FS

// languages maps ISO 639-1 codes to training file names.
var languages = map[string]string{
	"de": "german",
	"en": "english",
}

// Languages returns the names of the languages that LoadLanguage can load.
func Languages() []string {
	var names []string
	entries, _ := fs.ReadDir(embedded, "data")
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	for _, asset := range sentencesdata.AssetNames() {
		name := strings.TrimSuffix(path.Base(asset), ".json")
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Classifier segments text with a Punkt model. It is safe for concurrent use.
type Classifier struct {
	mu        sync.RWMutex
	storage   *sentences.Storage
	tokenizer *sentences.DefaultSentenceTokenizer
}

// Load resolves ref to a training file path (anything ending in .json or
// containing a path separator) or a language. Languages may be given by name
// ("german"), ISO code ("de") or a spaCy-style model name ("de_core_news_sm").
func Load(ref string) (*Classifier, error) {
	if strings.EqualFold(filepath.Ext(ref), ".json") || strings.ContainsAny(ref, `/\`) {
		return LoadFile(ref)
	}
	return LoadLanguage(ref)
}

// LoadLanguage loads the embedded training data for a language.
func LoadLanguage(lang string) (*Classifier, error) {
	name := languageName(lang)
	data, err := embedded.ReadFile("data/" + name + ".json")
	if err != nil {
		data, err = sentencesdata.Asset("data/" + name + ".json")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return New(data)
}

// LoadFile loads Punkt training data from a JSON file.
func LoadFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading training data: %w", err)
	}
	return New(data)
}

// New creates a classifier from Punkt JSON training data.
func New(training []byte) (*Classifier, error) {
	storage, err := sentences.LoadTraining(training)
	if err != nil {
		return nil, fmt.Errorf("parsing training data: %w", err)
	}
	if storage.AbbrevTypes == nil {
		storage.AbbrevTypes = sentences.SetString{}
	}
	return &Classifier{
		storage:   storage,
		tokenizer: sentences.NewSentenceTokenizer(storage),
	}, nil
}

// AddSpecialCase registers literal as an abbreviation, so a period at its end
// is not taken as a sentence end. Punkt stores abbreviations lower-cased and
// without the final period.
func (c *Classifier) AddSpecialCase(literal string) {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(literal), "."))
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storage.AbbrevTypes[key] = 1
}

// IsAbbreviation reports whether literal is a known abbreviation.
func (c *Classifier) IsAbbreviation(literal string) bool {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(literal), "."))
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.storage.AbbrevTypes[key]
	return ok
}

// Segment returns the Punkt sentences of text with their whitespace.
func (c *Classifier) Segment(_ context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	sents := c.tokenizer.Tokenize(text)
	chunks := make([]string, 0, len(sents))
	for _, s := range sents {
		if s.Text == "" {
			continue
		}
		chunks = append(chunks, s.Text)
	}
	return chunks, nil
}

func languageName(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if code, _, ok := strings.Cut(lang, "_"); ok {
		lang = code
	}
	if name, ok := languages[lang]; ok {
		return name
	}
	return lang
}
