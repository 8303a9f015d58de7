// Package cache provides caching utilities for recall-stream.
package cache

import (
	"github.com/itchyny/gojq"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CodeCache provides thread-safe LRU caching for compiled jq programs,
// keyed by expression text.
type CodeCache struct {
	cache *lru.Cache[string, *gojq.Code]
}

// NewCodeCache creates a new LRU cache with the specified maximum number of items.
func NewCodeCache(maxItems int) (*CodeCache, error) {
	c, err := lru.New[string, *gojq.Code](maxItems)
	if err != nil {
		return nil, err
	}
	return &CodeCache{cache: c}, nil
}

// Get retrieves a compiled program by its expression.
// Returns the program and true if found, nil and false otherwise.
func (c *CodeCache) Get(expression string) (*gojq.Code, bool) {
	return c.cache.Get(expression)
}

// Put adds or updates a compiled program in the cache.
func (c *CodeCache) Put(expression string, code *gojq.Code) {
	c.cache.Add(expression, code)
}

// Len returns the current number of items in the cache.
func (c *CodeCache) Len() int {
	return c.cache.Len()
}
