// Package config loads settings for the command line tools from flags,
// SENTSPLIT_* environment variables, an optional .env file and an optional
// sentsplit.{yaml,toml,json} file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jamesainslie/go-sentsplit"
)

const envPrefix = "SENTSPLIT"

// Config is the configuration shared by the command-line tools.
type Config struct {
	Model     string         `mapstructure:"model"`
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
	Splitter  SplitterConfig `mapstructure:"splitter"`
	SaT       SaTConfig      `mapstructure:"sat"`
	Bench     BenchConfig    `mapstructure:"bench"`
}

// SplitterConfig holds the sentence splitter settings.
type SplitterConfig struct {
	SplitOnLineBreaks bool     `mapstructure:"split_on_line_breaks"`
	MaxLenBeforeSplit int      `mapstructure:"max_len"`
	Abbreviations     []string `mapstructure:"abbreviations"`
	CacheSize         int      `mapstructure:"cache_size"`
}

// SaTConfig holds the settings of the SaT backend.
type SaTConfig struct {
	Threshold      float64 `mapstructure:"threshold"`
	PoolSize       int     `mapstructure:"pool_size"`
	Threads        int     `mapstructure:"threads"`
	ORTLibraryPath string  `mapstructure:"ort_library_path"`
}

// BenchConfig holds the corpus evaluation settings.
type BenchConfig struct {
	DataDir     string `mapstructure:"data_dir"`
	Tolerance   int    `mapstructure:"tolerance"`
	Concurrency int    `mapstructure:"concurrency"`
}

// LoadOptions controls where Load reads configuration from.
type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	EnvFile    string // loaded before reading the environment; ".env" when empty
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Model:     "de",
		LogLevel:  "info",
		LogFormat: "text",
		Splitter: SplitterConfig{
			SplitOnLineBreaks: false,
			MaxLenBeforeSplit: 0,
			CacheSize:         sentsplit.DefaultCacheSize,
		},
		SaT: SaTConfig{
			Threshold: 0.025,
			PoolSize:  1,
			Threads:   0,
		},
		Bench: BenchConfig{
			DataDir:     "testdata/ud-german",
			Tolerance:   0,
			Concurrency: 4,
		},
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"model":                "model",
	"log-level":            "log_level",
	"log-format":           "log_format",
	"split-on-line-breaks": "splitter.split_on_line_breaks",
	"max-len":              "splitter.max_len",
	"abbreviations":        "splitter.abbreviations",
	"cache-size":           "splitter.cache_size",
	"sat-threshold":        "sat.threshold",
	"sat-pool-size":        "sat.pool_size",
	"sat-threads":          "sat.threads",
	"ort-lib":              "sat.ort_library_path",
	"data-dir":             "bench.data_dir",
	"tolerance":            "bench.tolerance",
	"concurrency":          "bench.concurrency",
}

// RegisterFlags registers the flags shared by all tools.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.StringP("model", "m", defaults.Model, "Model reference: punkt:<lang|file>, uax29 or sat:<dir>")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("log-format", defaults.LogFormat, "Log format (text|json)")
	fs.Bool("split-on-line-breaks", defaults.Splitter.SplitOnLineBreaks, "Split text at line breaks before classifying")
	fs.Int("max-len", defaults.Splitter.MaxLenBeforeSplit, "Lines shorter than this many characters are one sentence (requires --split-on-line-breaks)")
	fs.StringSlice("abbreviations", defaults.Splitter.Abbreviations, "Abbreviations that never end a sentence")
	fs.Int("cache-size", defaults.Splitter.CacheSize, "Number of memoized inputs (0 disables)")
	fs.Float64("sat-threshold", defaults.SaT.Threshold, "SaT boundary probability threshold")
	fs.Int("sat-pool-size", defaults.SaT.PoolSize, "SaT ONNX session pool size")
	fs.Int("sat-threads", defaults.SaT.Threads, "SaT ONNX intra-op threads (0 = runtime default)")
	fs.String("ort-lib", defaults.SaT.ORTLibraryPath, "Path to ONNX Runtime shared library")
}

// RegisterBenchFlags registers the evaluation flags.
func RegisterBenchFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("data-dir", defaults.Bench.DataDir, "Directory with *.txt and *.split files")
	fs.Int("tolerance", defaults.Bench.Tolerance, "Span match tolerance in characters (0 = exact)")
	fs.Int("concurrency", defaults.Bench.Concurrency, "Documents evaluated in parallel")
}

// Load merges defaults, the config file, the environment (including the env
// file) and flags, in increasing order of precedence, and validates the result.
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v, opts.Defaults)

	if opts.Cmd != nil {
		fs := opts.Cmd.Flags()
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	if err := v.BindEnv("sat.ort_library_path", envPrefix+"_ORT_LIB", "ORT_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind ort env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("sentsplit")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFile loads path, or .env when path is empty. Variables already set
// in the environment win. A missing default .env is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("model", c.Model)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("log_format", c.LogFormat)
	v.SetDefault("splitter.split_on_line_breaks", c.Splitter.SplitOnLineBreaks)
	v.SetDefault("splitter.max_len", c.Splitter.MaxLenBeforeSplit)
	v.SetDefault("splitter.abbreviations", c.Splitter.Abbreviations)
	v.SetDefault("splitter.cache_size", c.Splitter.CacheSize)
	v.SetDefault("sat.threshold", c.SaT.Threshold)
	v.SetDefault("sat.pool_size", c.SaT.PoolSize)
	v.SetDefault("sat.threads", c.SaT.Threads)
	v.SetDefault("sat.ort_library_path", c.SaT.ORTLibraryPath)
	v.SetDefault("bench.data_dir", c.Bench.DataDir)
	v.SetDefault("bench.tolerance", c.Bench.Tolerance)
	v.SetDefault("bench.concurrency", c.Bench.Concurrency)
}

// Validate checks values the splitter options cannot check themselves.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model must not be empty")
	}
	if c.SaT.Threshold <= 0 || c.SaT.Threshold >= 1 {
		return fmt.Errorf("sat threshold must be in (0, 1), got %g", c.SaT.Threshold)
	}
	return nil
}

// SplitterOptions translates the configuration into splitter options.
func (c Config) SplitterOptions(logger *slog.Logger) []sentsplit.Option {
	opts := []sentsplit.Option{
		sentsplit.WithSplitOnLineBreaks(c.Splitter.SplitOnLineBreaks),
		sentsplit.WithMaxLenBeforeSplit(c.Splitter.MaxLenBeforeSplit),
		sentsplit.WithCacheSize(c.Splitter.CacheSize),
		sentsplit.WithThreshold(float32(c.SaT.Threshold)),
		sentsplit.WithPoolSize(c.SaT.PoolSize),
		sentsplit.WithThreads(c.SaT.Threads),
		sentsplit.WithLibraryPath(c.SaT.ORTLibraryPath),
		sentsplit.WithLogger(logger),
	}
	if len(c.Splitter.Abbreviations) > 0 {
		opts = append(opts, sentsplit.WithAbbreviations(c.Splitter.Abbreviations...))
	}
	return opts
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
