//go:build ignore

// Process Universal Dependencies CoNLL-U files into the evaluation corpus
// format: NAME.txt with running text and NAME.split with one gold sentence
// per line. Paragraphs are separated by a newline, sentences within a
// paragraph by a space.
// Usage: go run ./scripts/process-ud.go -in testdata/ud-german/de_gsd-ud-test.conllu -out testdata/ud-german
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// document is a run of paragraphs, each a list of sentences.
type document struct {
	id         string
	paragraphs [][]string
}

func main() {
	var (
		inFile  = flag.String("in", "", "CoNLL-U file to convert (required)")
		outDir  = flag.String("out", "testdata/ud-german", "Output directory")
		prefix  = flag.String("prefix", "", "Document name prefix (default: input file name)")
		maxSent = flag.Int("max-sentences", 200, "Start a new document after this many sentences (0 = only at # newdoc)")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "error: -in required")
		flag.Usage()
		os.Exit(1)
	}
	if *prefix == "" {
		base := filepath.Base(*inFile)
		*prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}

	docs, err := processCoNLLU(*inFile, *prefix, *maxSent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *inFile, err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	total := 0
	for _, doc := range docs {
		n, err := writeDocument(*outDir, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", doc.id, err)
			os.Exit(1)
		}
		total += n
	}

	fmt.Printf("Done! %d documents, %d sentences in %s\n", len(docs), total, *outDir)
}

func processCoNLLU(path, prefix string, maxSent int) ([]document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		docs      []document
		cur       document
		sentInDoc int
	)
	flush := func() {
		if sentInDoc > 0 {
			cur.id = fmt.Sprintf("%s-%04d", prefix, len(docs)+1)
			docs = append(docs, cur)
		}
		cur = document{}
		sentInDoc = 0
	}
	// Treebanks without "# newpar" yield one paragraph per document.
	newParagraph := func() {
		if n := len(cur.paragraphs); n == 0 || len(cur.paragraphs[n-1]) > 0 {
			cur.paragraphs = append(cur.paragraphs, nil)
		}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "# newdoc"):
			flush()
		case strings.HasPrefix(line, "# newpar"):
			newParagraph()
		case strings.HasPrefix(line, "# text = "):
			if maxSent > 0 && sentInDoc >= maxSent {
				flush()
			}
			if len(cur.paragraphs) == 0 {
				cur.paragraphs = append(cur.paragraphs, nil)
			}
			sent := strings.TrimSpace(strings.TrimPrefix(line, "# text = "))
			if sent == "" {
				continue
			}
			last := len(cur.paragraphs) - 1
			cur.paragraphs[last] = append(cur.paragraphs[last], sent)
			sentInDoc++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	flush()

	return docs, nil
}

func writeDocument(dir string, doc document) (int, error) {
	var text, split strings.Builder
	n := 0
	for _, para := range doc.paragraphs {
		if len(para) == 0 {
			continue
		}
		text.WriteString(strings.Join(para, " "))
		text.WriteString("\n")
		for _, sent := range para {
			split.WriteString(sent)
			split.WriteString("\n")
			n++
		}
	}

	if err := os.WriteFile(filepath.Join(dir, doc.id+".txt"), []byte(text.String()), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(dir, doc.id+".split"), []byte(split.String()), 0o644); err != nil {
		return 0, err
	}
	return n, nil
}
