package sentsplit

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
)

// DefaultCacheSize is the number of distinct input texts memoized per Splitter.
const DefaultCacheSize = 100

// Option configures a Splitter.
type Option func(*config)

type config struct {
	abbreviations     []string
	splitOnLineBreaks bool
	maxLenBeforeSplit int
	cacheSize         int
	cache             Cache
	logger            *slog.Logger

	// SaT backend settings, ignored by other backends.
	threshold   float32
	poolSize    int
	threads     int
	libraryPath string
}

func defaultConfig() config {
	return config{
		cacheSize: DefaultCacheSize,
		logger:    slog.Default(),
		threshold: 0.025,
		poolSize:  runtime.NumCPU(),
	}
}

// WithAbbreviations registers literal strings the classifier must treat as
// indivisible units, e.g. "Dr." or "z.B.". Duplicates and empty strings are
// ignored.
func WithAbbreviations(abbrevs ...string) Option {
	return func(c *config) {
		for _, a := range abbrevs {
			if a == "" || slices.Contains(c.abbreviations, a) {
				continue
			}
			c.abbreviations = append(c.abbreviations, a)
		}
	}
}

// WithSplitOnLineBreaks enables pre-splitting the text at line breaks
// (default: false).
func WithSplitOnLineBreaks(enabled bool) Option {
	return func(c *config) {
		c.splitOnLineBreaks = enabled
	}
}

// WithMaxLenBeforeSplit sets the line length, in runes, below which a line is
// taken as a single sentence (default: 0). Requires WithSplitOnLineBreaks.
func WithMaxLenBeforeSplit(n int) Option {
	return func(c *config) {
		c.maxLenBeforeSplit = n
	}
}

// WithCacheSize sets the number of memoized inputs (default: 100).
// Zero disables memoization.
func WithCacheSize(n int) Option {
	return func(c *config) {
		c.cacheSize = n
	}
}

// WithCache replaces the default LRU cache. It takes precedence over
// WithCacheSize.
func WithCache(cache Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithThreshold sets the SaT boundary probability threshold (default: 0.025).
func WithThreshold(t float32) Option {
	return func(c *config) {
		c.threshold = t
	}
}

// WithPoolSize sets the SaT ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithThreads sets the SaT ONNX intra-op thread count (default: runtime decides).
func WithThreads(n int) Option {
	return func(c *config) {
		c.threads = n
	}
}

// WithLibraryPath sets the path of the ONNX Runtime shared library used by
// the SaT backend.
func WithLibraryPath(path string) Option {
	return func(c *config) {
		c.libraryPath = path
	}
}

func (c *config) validate() error {
	if c.maxLenBeforeSplit < 0 {
		return invalidConfig("max length before split must not be negative, got %d", c.maxLenBeforeSplit)
	}
	if c.maxLenBeforeSplit > 0 && !c.splitOnLineBreaks {
		return invalidConfig("max length before split (%d) requires splitting on line breaks", c.maxLenBeforeSplit)
	}
	if c.cache == nil && c.cacheSize < 0 {
		return invalidConfig("cache size must not be negative, got %d", c.cacheSize)
	}
	return nil
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
