package bench

import "github.com/jamesainslie/go-sentsplit"

// Config holds evaluation parameters.
type Config struct {
	Tolerance       int // rune tolerance on both span ends; 0 means exact
	PrecisionWeight float64
	RecallWeight    float64
	Concurrency     int // documents evaluated in parallel
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       0,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
		Concurrency:     4,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Evaluate compares predicted spans against gold spans.
// Uses greedy left-to-right matching within tolerance; each gold span
// matches at most one prediction.
func Evaluate(predicted, gold []sentsplit.Span, cfg Config) Metrics {
	matched := make([]bool, len(gold))
	tp := 0

	for _, p := range predicted {
		for i, g := range gold {
			if matched[i] {
				continue
			}
			if abs(p.Start-g.Start) <= cfg.Tolerance && abs(p.End-g.End) <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return computeMetrics(tp, len(predicted)-tp, len(gold)-tp, cfg)
}

// Add returns the metrics over the combined counts of m and o.
func (m Metrics) Add(o Metrics, cfg Config) Metrics {
	return computeMetrics(
		m.TruePositives+o.TruePositives,
		m.FalsePositives+o.FalsePositives,
		m.FalseNegatives+o.FalseNegatives,
		cfg,
	)
}

func computeMetrics(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
