// Package sentsplit splits text into sentences and reports, for every
// sentence, its trimmed text and its character span in the original input.
//
// # Quick Start
//
//	sp, err := sentsplit.New("punkt:german",
//	    sentsplit.WithAbbreviations("Dr.", "z.B."),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sp.Close()
//
//	sentences, err := sp.Split(ctx, "Das ist ein Test. Das ist ein weiterer Test.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range sentences {
//	    fmt.Printf("%d-%d %q\n", s.Span.Start, s.Span.End, s.Text)
//	}
//
// # Offsets
//
// Spans count Unicode code points (runes), start inclusive and end exclusive.
// Leading and trailing whitespace is never part of a span, but it is always
// accounted for when computing the offsets of the following sentences.
//
// # Line Breaks
//
// With WithSplitOnLineBreaks the input is first cut at line breaks and every
// line is segmented on its own. Lines shorter than WithMaxLenBeforeSplit
// runes are reported as a single sentence without consulting the classifier,
// which keeps headings and list items intact.
//
// # Model References
//
// New accepts a model reference of the form scheme:value:
//   - punkt:german, punkt:de or punkt:/path/to/training.json
//   - uax29
//   - sat:/path/to/dir or sat:/path/to/model.onnx,/path/to/tokenizer.model
//
// A reference without a scheme is treated as a Punkt language or training
// file, or as a SaT model when it ends in .onnx.
//
// # Thread Safety
//
// Splitter is safe for concurrent use. Results are memoized per Splitter in a
// bounded LRU cache keyed by the exact input text.
package sentsplit
