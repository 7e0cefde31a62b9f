package punkt

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoad_Languages(t *testing.T) {
	for _, ref := range []string{"german", "de", "DE", "de_core_news_sm"} {
		t.Run(ref, func(t *testing.T) {
			c, err := Load(ref)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", ref, err)
			}
			if c.tokenizer == nil {
				t.Error("expected non-nil tokenizer")
			}
		})
	}
}

func TestLoad_UnknownLanguage(t *testing.T) {
	for _, ref := range []string{"klingon", "french", "fr"} {
		if _, err := Load(ref); !errors.Is(err, ErrUnknownLanguage) {
			t.Errorf("Load(%q): expected ErrUnknownLanguage, got: %v", ref, err)
		}
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("nonexistent/training.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got: %v", err)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed training data")
	}
}

func TestLanguages(t *testing.T) {
	names := Languages()
	if !slices.Contains(names, "german") || !slices.Contains(names, "english") {
		t.Errorf("Languages() = %v, want german and english", names)
	}
	if !slices.IsSorted(names) {
		t.Errorf("Languages() not sorted: %v", names)
	}
	for _, name := range names {
		if _, err := LoadLanguage(name); err != nil {
			t.Errorf("LoadLanguage(%q) failed: %v", name, err)
		}
	}
}

func TestSegment_German(t *testing.T) {
	c, err := LoadLanguage("german")
	if err != nil {
		t.Fatalf("LoadLanguage failed: %v", err)
	}

	text := "Das ist ein Test. Das ist ein weiterer Test."
	chunks, err := c.Segment(context.Background(), text)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %q", chunks)
	}
	if strings.TrimSpace(chunks[0]) != "Das ist ein Test." {
		t.Errorf("chunk[0] = %q", chunks[0])
	}
	if strings.Join(chunks, "") != text {
		t.Errorf("chunks %q do not reconstruct input", chunks)
	}
}

func TestSegment_Empty(t *testing.T) {
	c, err := LoadLanguage("english")
	if err != nil {
		t.Fatalf("LoadLanguage failed: %v", err)
	}
	chunks, err := c.Segment(context.Background(), "")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if chunks != nil {
		t.Errorf("expected nil for empty string, got: %q", chunks)
	}
}

func TestAddSpecialCase(t *testing.T) {
	c, err := LoadLanguage("german")
	if err != nil {
		t.Fatalf("LoadLanguage failed: %v", err)
	}
	if c.IsAbbreviation("A00.") {
		t.Fatal("A00. should not be a known abbreviation before registration")
	}

	c.AddSpecialCase("A00.")
	c.AddSpecialCase(" . ")

	if !c.IsAbbreviation("a00.") {
		t.Error("expected a00 to be registered")
	}
	if c.IsAbbreviation("") {
		t.Error("empty literal must not be registered")
	}
}
