package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCorpus writes a one-document corpus and returns its directory.
func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"doc.txt":   "Das ist gut.\nZweiter  Satz hier.\n",
		"doc.split": "Das ist gut.\nZweiter Satz hier.\n",
		"empty.env": "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--env-file=" + filepath.Join(dir, "empty.env"),
		"--log-level=error",
		"--model=uax29",
		"--data-dir=" + dir,
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluate(t *testing.T) {
	out, err := runCmd(t, writeCorpus(t))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "doc: tp=2, fp=0, fn=0, f1=1.00000") {
		t.Errorf("missing per-document line: %q", out)
	}
	if !strings.Contains(out, "f1 using uax29: 1.00000 (2 spans from 1 files)") {
		t.Errorf("missing summary: %q", out)
	}
}

func TestEvaluate_EmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.env"), nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, dir); err == nil {
		t.Error("expected error for corpus without split files")
	}
}

func TestSweep_MaxLen(t *testing.T) {
	out, err := runCmd(t, writeCorpus(t), "sweep", "--min=0", "--max=40", "--step=20")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	// Header, rule and one row per value.
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d: %q", len(lines), out)
	}
}

func TestSweep_InvalidParam(t *testing.T) {
	if _, err := runCmd(t, writeCorpus(t), "sweep", "--param=depth"); err == nil {
		t.Error("expected error for unknown sweep parameter")
	}
}
