package sentsplit

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes split results keyed by the exact input text.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(text string) ([]Sentence, bool)
	Add(text string, sentences []Sentence)
	Purge()
	Len() int
}

// LRUCache is a bounded Cache with least-recently-used eviction.
type LRUCache struct {
	cache *lru.Cache[string, []Sentence]
}

// NewLRUCache creates an LRU cache holding up to size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[string, []Sentence](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &LRUCache{cache: c}, nil
}

// Get returns a copy of the sentences stored for text.
func (c *LRUCache) Get(text string) ([]Sentence, bool) {
	sentences, ok := c.cache.Get(text)
	if !ok {
		return nil, false
	}
	return slices.Clone(sentences), true
}

// Add stores a copy of sentences for text, evicting the least recently used
// entry when full.
func (c *LRUCache) Add(text string, sentences []Sentence) {
	c.cache.Add(text, slices.Clone(sentences))
}

// Purge removes all entries.
func (c *LRUCache) Purge() {
	c.cache.Purge()
}

// Len returns the number of entries.
func (c *LRUCache) Len() int {
	return c.cache.Len()
}

// Contains reports whether text is cached without updating its recency.
func (c *LRUCache) Contains(text string) bool {
	return c.cache.Contains(text)
}

// nopCache disables memoization.
type nopCache struct{}

func (nopCache) Get(string) ([]Sentence, bool) { return nil, false }
func (nopCache) Add(string, []Sentence)        {}
func (nopCache) Purge()                        {}
func (nopCache) Len() int                      { return 0 }

func newCache(cfg config) (Cache, error) {
	if cfg.cache != nil {
		return cfg.cache, nil
	}
	if cfg.cacheSize == 0 {
		return nopCache{}, nil
	}
	return NewLRUCache(cfg.cacheSize)
}
