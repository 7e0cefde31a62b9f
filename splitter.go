package sentsplit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Splitter splits text into sentences with offsets into the original text.
// It is safe for concurrent use.
type Splitter struct {
	classifier        Classifier
	ownsClassifier    bool
	cache             Cache
	splitOnLineBreaks bool
	maxLenBeforeSplit int
	logger            *slog.Logger
}

// New loads the classifier identified by modelRef and returns a Splitter
// using it. Loading a model may be slow; create a Splitter once and reuse it.
func New(modelRef string, opts ...Option) (*Splitter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	classifier, err := loadClassifier(modelRef, cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger.Info("loaded sentence classifier", "model", modelRef)

	s, err := newSplitter(classifier, cfg)
	if err != nil {
		closeClassifier(classifier)
		return nil, err
	}
	s.ownsClassifier = true
	return s, nil
}

// NewWithClassifier returns a Splitter using an already prepared classifier.
// Close does not close c; the caller keeps ownership of it.
func NewWithClassifier(c Classifier, opts ...Option) (*Splitter, error) {
	if c == nil {
		return nil, invalidConfig("classifier must not be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newSplitter(c, cfg)
}

func newSplitter(c Classifier, cfg config) (*Splitter, error) {
	if len(cfg.abbreviations) > 0 {
		adder, ok := c.(SpecialCaseAdder)
		if !ok {
			return nil, invalidConfig("classifier %T does not support abbreviations", c)
		}
		for _, abbrev := range cfg.abbreviations {
			adder.AddSpecialCase(abbrev)
		}
		cfg.logger.Debug("registered abbreviations", "count", len(cfg.abbreviations))
	}

	cache, err := newCache(cfg)
	if err != nil {
		return nil, err
	}

	return &Splitter{
		classifier:        c,
		cache:             cache,
		splitOnLineBreaks: cfg.splitOnLineBreaks,
		maxLenBeforeSplit: cfg.maxLenBeforeSplit,
		logger:            cfg.logger,
	}, nil
}

// Split returns the sentences of text in order. Repeated calls with the same
// text return equal results, served from the cache after the first call.
//
// Split fails only when the classifier fails, which the rule-based backends
// never do.
func (s *Splitter) Split(ctx context.Context, text string) ([]Sentence, error) {
	if sentences, ok := s.cache.Get(text); ok {
		s.logger.Debug("split cache hit", "bytes", len(text))
		return sentences, nil
	}

	sentences, err := s.segment(ctx, text)
	if err != nil {
		return nil, err
	}
	s.cache.Add(text, sentences)
	s.logger.Debug("split text", "sentences", len(sentences))
	return sentences, nil
}

// ClearCache drops all memoized results.
func (s *Splitter) ClearCache() {
	s.cache.Purge()
}

// Close releases the classifier if the Splitter loaded it.
func (s *Splitter) Close() error {
	if !s.ownsClassifier {
		return nil
	}
	if closer, ok := s.classifier.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing classifier: %w", err)
		}
	}
	return nil
}

func closeClassifier(c Classifier) {
	if closer, ok := c.(io.Closer); ok {
		_ = closer.Close() // Best-effort cleanup; original error takes precedence
	}
}
