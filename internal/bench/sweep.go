package bench

import (
	"context"
	"fmt"
	"sort"

	"github.com/jamesainslie/go-sentsplit"
)

// Factory builds a splitter for one sweep value.
type Factory[T any] func(value T) (*sentsplit.Splitter, error)

// SweepResult holds metrics for one swept value.
type SweepResult[T any] struct {
	Value   T
	Metrics Metrics
}

// SweepRange generates values from min to max inclusive with given step.
func SweepRange[T ~int | ~float32 | ~float64](min, max, step T) []T {
	if step <= 0 || max < min {
		return nil
	}
	// Count steps up front so float rounding cannot drop max.
	n := int(float64(max-min)/float64(step) + 1e-9)
	values := make([]T, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, min+T(i)*step)
	}
	return values
}

// Sweep evaluates the corpus once per value and returns results sorted by F1
// descending. Ties keep the order of values.
func Sweep[T any](ctx context.Context, docs []*Document, values []T, newSplitter Factory[T], cfg Config) ([]SweepResult[T], error) {
	results := make([]SweepResult[T], 0, len(values))

	for _, v := range values {
		s, err := newSplitter(v)
		if err != nil {
			return nil, fmt.Errorf("creating splitter for %v: %w", v, err)
		}

		report, err := EvaluateCorpus(ctx, s, docs, cfg)
		_ = s.Close() // Evaluation error takes precedence
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult[T]{Value: v, Metrics: report.Total})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.F1 > results[j].Metrics.F1
	})

	return results, nil
}

// SweepMaxLen evaluates the corpus for each max length before split, using
// a splitter that splits on line breaks.
func SweepMaxLen(ctx context.Context, docs []*Document, modelRef string, maxLens []int, cfg Config, opts ...sentsplit.Option) ([]SweepResult[int], error) {
	return Sweep(ctx, docs, maxLens, func(maxLen int) (*sentsplit.Splitter, error) {
		o := append([]sentsplit.Option{}, opts...)
		o = append(o,
			sentsplit.WithSplitOnLineBreaks(true),
			sentsplit.WithMaxLenBeforeSplit(maxLen),
			sentsplit.WithCacheSize(0),
		)
		return sentsplit.New(modelRef, o...)
	}, cfg)
}

// SweepThresholds evaluates a SaT model for each boundary threshold.
func SweepThresholds(ctx context.Context, docs []*Document, modelRef string, thresholds []float32, cfg Config, opts ...sentsplit.Option) ([]SweepResult[float32], error) {
	return Sweep(ctx, docs, thresholds, func(threshold float32) (*sentsplit.Splitter, error) {
		o := append([]sentsplit.Option{}, opts...)
		o = append(o, sentsplit.WithThreshold(threshold), sentsplit.WithCacheSize(0))
		return sentsplit.New(modelRef, o...)
	}, cfg)
}
