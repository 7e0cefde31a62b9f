package sentsplit

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-sentsplit/punkt"
	"github.com/jamesainslie/go-sentsplit/sat"
	"github.com/jamesainslie/go-sentsplit/uax29"
)

// Model reference schemes understood by New.
const (
	SchemePunkt = "punkt"
	SchemeUAX29 = "uax29"
	SchemeSaT   = "sat"
)

// File names looked up when a SaT reference names a directory.
const (
	SaTModelFile     = "model_optimized.onnx"
	SaTTokenizerFile = "sentencepiece.bpe.model"
)

// ParseModelRef splits a model reference into its scheme and value.
// References without a scheme resolve to uax29 for "uax29", to sat for
// paths ending in .onnx and to punkt otherwise.
func ParseModelRef(ref string) (scheme, value string) {
	ref = strings.TrimSpace(ref)
	if prefix, rest, ok := strings.Cut(ref, ":"); ok && isSchemeName(prefix) {
		return strings.ToLower(prefix), rest
	}

	switch {
	case strings.EqualFold(ref, SchemeUAX29):
		return SchemeUAX29, ""
	case strings.EqualFold(filepath.Ext(ref), ".onnx"):
		return SchemeSaT, ref
	default:
		return SchemePunkt, ref
	}
}

// isSchemeName rejects single letters so Windows drive letters stay paths.
func isSchemeName(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// SaTPaths returns the model and tokenizer file paths for a SaT reference
// value: "model.onnx,tokenizer.model", "model.onnx" with the tokenizer next
// to it, or a directory holding both files.
func SaTPaths(value string) (modelPath, tokenizerPath string) {
	if m, t, ok := strings.Cut(value, ","); ok {
		return strings.TrimSpace(m), strings.TrimSpace(t)
	}
	if strings.EqualFold(filepath.Ext(value), ".onnx") {
		return value, filepath.Join(filepath.Dir(value), SaTTokenizerFile)
	}
	return filepath.Join(value, SaTModelFile), filepath.Join(value, SaTTokenizerFile)
}

func loadClassifier(ref string, cfg config) (Classifier, error) {
	scheme, value := ParseModelRef(ref)
	switch scheme {
	case SchemePunkt:
		c, err := punkt.Load(value)
		if err != nil {
			return nil, loadError(ref, err)
		}
		return c, nil

	case SchemeUAX29:
		return uax29.New(), nil

	case SchemeSaT:
		modelPath, tokenizerPath := SaTPaths(value)
		c, err := sat.New(modelPath, tokenizerPath,
			sat.WithThreshold(cfg.threshold),
			sat.WithPoolSize(cfg.poolSize),
			sat.WithThreads(cfg.threads),
			sat.WithLibraryPath(cfg.libraryPath),
			sat.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, loadError(ref, err)
		}
		return c, nil

	default:
		return nil, fmt.Errorf("%w: unknown scheme %q in %q", ErrModelNotFound, scheme, ref)
	}
}

func loadError(ref string, err error) error {
	if errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, punkt.ErrUnknownLanguage) ||
		errors.Is(err, sat.ErrModelNotFound) {
		return fmt.Errorf("%w: %s: %w", ErrModelNotFound, ref, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidModel, ref, err)
}
