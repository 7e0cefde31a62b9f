package bench

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-sentsplit"
)

// Splitter is the part of *sentsplit.Splitter the evaluation needs.
type Splitter interface {
	Split(ctx context.Context, text string) ([]sentsplit.Sentence, error)
}

// DocumentResult holds the metrics for one document.
type DocumentResult struct {
	ID      string
	Spans   int // gold spans
	Metrics Metrics
}

// Report holds per-document results in corpus order and their aggregate.
type Report struct {
	Documents []DocumentResult
	Spans     int
	Total     Metrics
}

// EvaluateDocument splits the document text and scores it against its gold
// spans.
func EvaluateDocument(ctx context.Context, s Splitter, doc *Document, cfg Config) (DocumentResult, error) {
	sentences, err := s.Split(ctx, doc.Text)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("splitting %s: %w", doc.ID, err)
	}
	return DocumentResult{
		ID:      doc.ID,
		Spans:   len(doc.Gold),
		Metrics: Evaluate(sentsplit.Spans(sentences), doc.Gold, cfg),
	}, nil
}

// EvaluateCorpus evaluates all documents with up to cfg.Concurrency of them
// in flight. The first error cancels the remaining work.
func EvaluateCorpus(ctx context.Context, s Splitter, docs []*Document, cfg Config) (Report, error) {
	results := make([]DocumentResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for i, doc := range docs {
		g.Go(func() error {
			r, err := EvaluateDocument(gctx, s, doc, cfg)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Documents: results}
	for _, r := range results {
		report.Spans += r.Spans
		report.Total = report.Total.Add(r.Metrics, cfg)
	}
	return report, nil
}
