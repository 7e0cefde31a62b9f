package sat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/jamesainslie/go-sentsplit/inference"
	"github.com/jamesainslie/go-sentsplit/internal/boundary"
	"github.com/jamesainslie/go-sentsplit/tokenizer"
)

const (
	// maxSeqLen is the maximum sequence length fed to the model, including
	// the <s> and </s> tokens. The model supports positions 0-513.
	maxSeqLen = 512

	// chunkOverlap is the number of overlapping tokens between windows.
	chunkOverlap = 64

	// windowLen is the number of text tokens per window.
	windowLen = maxSeqLen - 2
)

// Segmenter detects sentence boundaries using wtpsplit/SaT ONNX models.
// It is safe for concurrent use.
type Segmenter struct {
	tokenizer *tokenizer.Tokenizer
	pool      *inference.Pool
	threshold float32
	literals  boundary.Literals
	logger    *slog.Logger
}

// New creates a Segmenter with the specified model files.
func New(modelPath, tokenizerPath string, opts ...Option) (*Segmenter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Check model file exists
	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	tok, err := tokenizer.New(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}

	if cfg.libraryPath != "" {
		inference.SetLibraryPath(cfg.libraryPath)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize, inference.SessionConfig{
		IntraOpThreads: cfg.threads,
	})
	if err != nil {
		_ = tok.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	cfg.logger.Debug("created SaT segmenter",
		"model", modelPath,
		"vocab", tok.VocabSize(),
		"pool", pool.Size(),
		"threshold", cfg.threshold,
	)

	return &Segmenter{
		tokenizer: tok,
		pool:      pool,
		threshold: cfg.threshold,
		logger:    cfg.logger,
	}, nil
}

// AddSpecialCase protects literal from being split, e.g. an abbreviation
// the model tends to end sentences on.
func (s *Segmenter) AddSpecialCase(literal string) {
	s.literals.Add(literal)
}

// IsComplete returns whether text appears to be a complete sentence.
func (s *Segmenter) IsComplete(ctx context.Context, text string) (complete bool, confidence float32, err error) {
	if text == "" {
		return false, 0.0, nil
	}

	tokens := s.tokenizer.Encode(text)
	if len(tokens) == 0 {
		return false, 0.0, nil
	}

	logits, err := s.getLogits(ctx, tokens)
	if err != nil {
		return false, 0, err
	}

	// Check last token's boundary probability
	prob := sigmoid(logits[len(logits)-1])
	return prob > s.threshold, prob, nil
}

// Segment splits text into chunks, each ending after a detected sentence
// boundary. Whitespace is kept, so the chunks concatenate to text.
func (s *Segmenter) Segment(ctx context.Context, text string) ([]string, error) {
	ends, err := s.boundaries(ctx, text)
	if err != nil {
		return nil, err
	}
	return boundary.Cut(text, ends), nil
}

// SegmentWithBoundaries splits text like Segment and also returns the byte
// offset at which each chunk ends in text.
func (s *Segmenter) SegmentWithBoundaries(ctx context.Context, text string) (sentences []string, boundaries []int, err error) {
	sentences, err = s.Segment(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	end := 0
	for _, sentence := range sentences {
		end += len(sentence)
		boundaries = append(boundaries, end)
	}
	return sentences, boundaries, nil
}

// boundaries returns the byte offsets after tokens whose boundary
// probability exceeds the threshold, minus those inside protected literals.
func (s *Segmenter) boundaries(ctx context.Context, text string) ([]int, error) {
	if text == "" {
		return nil, nil
	}

	tokens := s.tokenizer.Encode(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	logits, err := s.getLogits(ctx, tokens)
	if err != nil {
		return nil, err
	}

	var ends []int
	for i, logit := range logits {
		if sigmoid(logit) > s.threshold {
			ends = append(ends, tokens[i].End)
		}
	}

	s.logger.Debug("detected boundaries", "tokens", len(tokens), "boundaries", len(ends))
	return s.literals.Filter(text, ends), nil
}

// getLogits returns logits for all tokens, windowing if necessary.
func (s *Segmenter) getLogits(ctx context.Context, tokens []tokenizer.TokenInfo) ([]float32, error) {
	var logits []float32
	err := s.pool.Do(ctx, func(session *inference.Session) error {
		var err error
		logits, err = s.windowedLogits(ctx, session, tokens)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logits, nil
}

func (s *Segmenter) windowedLogits(ctx context.Context, session *inference.Session, tokens []tokenizer.TokenInfo) ([]float32, error) {
	if len(tokens) <= windowLen {
		return s.inferChunk(ctx, session, tokens)
	}

	// Process in overlapping windows
	logits := make([]float32, len(tokens))
	counts := make([]int, len(tokens))

	stride := windowLen - chunkOverlap
	for start := 0; start < len(tokens); start += stride {
		end := min(start+windowLen, len(tokens))

		chunkLogits, err := s.inferChunk(ctx, session, tokens[start:end])
		if err != nil {
			return nil, err
		}

		// Accumulate logits for averaging in overlap regions
		for i, logit := range chunkLogits {
			logits[start+i] += logit
			counts[start+i]++
		}

		if end >= len(tokens) {
			break
		}
	}

	for i := range logits {
		if counts[i] > 1 {
			logits[i] /= float32(counts[i])
		}
	}

	return logits, nil
}

// inferChunk runs inference on one window of tokens wrapped in <s> and </s>,
// and returns one logit per token of the window.
func (s *Segmenter) inferChunk(ctx context.Context, session *inference.Session, tokens []tokenizer.TokenInfo) ([]float32, error) {
	inputIDs := make([]int64, 0, len(tokens)+2)
	inputIDs = append(inputIDs, int64(s.tokenizer.BOSID()))
	for _, t := range tokens {
		inputIDs = append(inputIDs, int64(t.ID))
	}
	inputIDs = append(inputIDs, int64(s.tokenizer.EOSID()))

	attentionMask := make([]int64, len(inputIDs))
	for i := range attentionMask {
		attentionMask[i] = 1
	}

	logits, err := session.Infer(ctx, inputIDs, attentionMask)
	if err != nil {
		return nil, err
	}
	return logits[1 : len(tokens)+1], nil
}

// Close releases all resources.
func (s *Segmenter) Close() error {
	var errs []error

	if s.pool != nil {
		if err := s.pool.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if s.tokenizer != nil {
		if err := s.tokenizer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}
