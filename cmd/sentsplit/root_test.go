package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command with args and stdin, returning stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	envFile := filepath.Join(t.TempDir(), "empty.env")
	if err := os.WriteFile(envFile, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file=" + envFile, "--log-level=error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestSplit_Stdin(t *testing.T) {
	out, err := runCmd(t, "Das ist ein Test. Das ist ein weiterer Test.", "--model=uax29")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "Das ist ein Test.\nDas ist ein weiterer Test.\n"
	if out != want {
		t.Errorf("output = %q; want %q", out, want)
	}
}

func TestSplit_Spans(t *testing.T) {
	out, err := runCmd(t, " Hallo Welt.", "--model=uax29", "--spans")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "1\t12\tHallo Welt.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSplit_JSONLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("Erste Zeile\nZweite Zeile\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := runCmd(t, "", "--model=uax29", "--split-on-line-breaks", "--max-len=50", "--format=jsonl", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d: %q", len(lines), out)
	}
	var rec record
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.Text != "Zweite Zeile" || rec.Start != 12 || rec.End != 24 || rec.Source != path {
		t.Errorf("record = %+v", rec)
	}
}

func TestSplit_FilesWithDefaultModel(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "erste.txt")
	second := filepath.Join(dir, "zweite.txt")
	if err := os.WriteFile(first, []byte("Das ist ein Test. Das ist ein weiterer Test."), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(second, []byte("Noch ein Satz."), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := runCmd(t, "", first, second)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "Das ist ein Test.\nDas ist ein weiterer Test.\nNoch ein Satz.\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSplit_InvalidConfig(t *testing.T) {
	_, err := runCmd(t, "Text.", "--model=uax29", "--max-len=50")
	if err == nil {
		t.Error("expected error for max-len without line breaks")
	}
}

func TestSplit_InvalidFormat(t *testing.T) {
	_, err := runCmd(t, "Text.", "--model=uax29", "--format=xml")
	if err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLanguages(t *testing.T) {
	out, err := runCmd(t, "", "languages")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "german\n") {
		t.Errorf("languages output missing german: %q", out)
	}
}
