package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/jamesainslie/go-sentsplit"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder registers all flags and parses args.
func newFlagBinder(t *testing.T, defaults Config, args ...string) *fakeBinder {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)
	RegisterBenchFlags(fs, defaults)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return &fakeBinder{fs: fs}
}

// noEnvFile points Load at an empty env file so a stray .env in the package
// directory cannot leak into tests.
func noEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultConfig_ModelLoads(t *testing.T) {
	cfg := DefaultConfig()
	s, err := sentsplit.New(cfg.Model, cfg.SplitterOptions(nil)...)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", cfg.Model, err)
	}
	defer func() { _ = s.Close() }()
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "de" {
		t.Errorf("Model = %q; want %q", cfg.Model, "de")
	}
	if cfg.Splitter.CacheSize != 100 {
		t.Errorf("Splitter.CacheSize = %d; want 100", cfg.Splitter.CacheSize)
	}
	if cfg.Splitter.SplitOnLineBreaks {
		t.Error("Splitter.SplitOnLineBreaks = true; want false")
	}
	if cfg.SaT.Threshold != 0.025 {
		t.Errorf("SaT.Threshold = %g; want 0.025", cfg.SaT.Threshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	checks := []struct {
		flag string
		want string
	}{
		{"model", "de"},
		{"log-level", "info"},
		{"max-len", "0"},
		{"cache-size", "100"},
		{"split-on-line-breaks", "false"},
	}
	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}
		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}
	if fs.Lookup("data-dir") != nil {
		t.Error("bench flags registered by RegisterFlags")
	}
}

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Cmd:      newFlagBinder(t, defaults),
		EnvFile:  noEnvFile(t),
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != defaults.Model {
		t.Errorf("Model = %q; want %q", cfg.Model, defaults.Model)
	}
	if cfg.Bench.Concurrency != defaults.Bench.Concurrency {
		t.Errorf("Bench.Concurrency = %d; want %d", cfg.Bench.Concurrency, defaults.Bench.Concurrency)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(t, defaults,
		"--model=uax29",
		"--split-on-line-breaks",
		"--max-len=80",
		"--abbreviations=Dr.,z.B.",
		"--tolerance=2",
	)

	cfg, err := Load(LoadOptions{Cmd: binder, EnvFile: noEnvFile(t), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "uax29" {
		t.Errorf("Model = %q; want uax29", cfg.Model)
	}
	if !cfg.Splitter.SplitOnLineBreaks || cfg.Splitter.MaxLenBeforeSplit != 80 {
		t.Errorf("Splitter = %+v", cfg.Splitter)
	}
	if !slices.Equal(cfg.Splitter.Abbreviations, []string{"Dr.", "z.B."}) {
		t.Errorf("Abbreviations = %q", cfg.Splitter.Abbreviations)
	}
	if cfg.Bench.Tolerance != 2 {
		t.Errorf("Bench.Tolerance = %d; want 2", cfg.Bench.Tolerance)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SENTSPLIT_LOG_LEVEL", "warn")
	t.Setenv("SENTSPLIT_SPLITTER_MAX_LEN", "120")
	t.Setenv("ORT_LIBRARY_PATH", "/opt/ort/libonnxruntime.so")

	cfg, err := Load(LoadOptions{EnvFile: noEnvFile(t), Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want warn", cfg.LogLevel)
	}
	if cfg.Splitter.MaxLenBeforeSplit != 120 {
		t.Errorf("MaxLenBeforeSplit = %d; want 120", cfg.Splitter.MaxLenBeforeSplit)
	}
	if cfg.SaT.ORTLibraryPath != "/opt/ort/libonnxruntime.so" {
		t.Errorf("ORTLibraryPath = %q", cfg.SaT.ORTLibraryPath)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SENTSPLIT_MODEL=punkt:en\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// godotenv sets process env; make sure it is restored afterwards.
	t.Setenv("SENTSPLIT_MODEL", "")
	if err := os.Unsetenv("SENTSPLIT_MODEL"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{EnvFile: path, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "punkt:en" {
		t.Errorf("Model = %q; want punkt:en", cfg.Model)
	}
}

func TestLoad_EnvFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{
		EnvFile:  filepath.Join(t.TempDir(), "missing.env"),
		Defaults: DefaultConfig(),
	})
	if err == nil {
		t.Error("expected error for missing explicit env file")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "sentsplit.yaml")
	content := `
model: uax29
log_format: json
splitter:
  split_on_line_breaks: true
  max_len: 60
  abbreviations: ["Dr.", "Nr."]
bench:
  concurrency: 8
`
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{
		Cmd:        newFlagBinder(t, defaults),
		ConfigFile: cfgFile,
		EnvFile:    noEnvFile(t),
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "uax29" || cfg.LogFormat != "json" {
		t.Errorf("Model = %q, LogFormat = %q", cfg.Model, cfg.LogFormat)
	}
	if !cfg.Splitter.SplitOnLineBreaks || cfg.Splitter.MaxLenBeforeSplit != 60 {
		t.Errorf("Splitter = %+v", cfg.Splitter)
	}
	if !slices.Equal(cfg.Splitter.Abbreviations, []string{"Dr.", "Nr."}) {
		t.Errorf("Abbreviations = %q", cfg.Splitter.Abbreviations)
	}
	if cfg.Bench.Concurrency != 8 {
		t.Errorf("Bench.Concurrency = %d; want 8", cfg.Bench.Concurrency)
	}
}

func TestLoad_ConfigFileNotFound(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "missing.yaml"),
		EnvFile:    noEnvFile(t),
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"empty model", func(c *Config) { c.Model = "  " }},
		{"threshold zero", func(c *Config) { c.SaT.Threshold = 0 }},
		{"threshold one", func(c *Config) { c.SaT.Threshold = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil; want error")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON record, got: %s", out)
	}
}

func TestSplitterOptions(t *testing.T) {
	cfg := DefaultConfig()
	base := len(cfg.SplitterOptions(nil))

	cfg.Splitter.Abbreviations = []string{"Dr."}
	if got := len(cfg.SplitterOptions(nil)); got != base+1 {
		t.Errorf("len(SplitterOptions) = %d; want %d", got, base+1)
	}
}
