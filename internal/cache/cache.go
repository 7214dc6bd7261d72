// Package cache memoizes extraction results by content digest.
//
// Extraction is a pure function of the source text and the declaration backend, so a
// summary computed once stays valid for as long as the text is unchanged; no
// invalidation beyond capacity and TTL eviction is needed.
package cache

import (
	"fmt"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/springctx/internal/extract"
)

// DefaultCapacity is the number of summaries kept when no capacity is configured.
const DefaultCapacity = 2048

// Options configures a SummaryCache.
type Options struct {
	// Capacity is the maximum number of cached summaries.
	Capacity int
	// TTL expires entries after they were written. Zero keeps them until evicted.
	TTL time.Duration
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64   `json:"hits"`
	Misses int64   `json:"misses"`
	Ratio  float64 `json:"ratio"`
	Size   int     `json:"size"`
}

// SummaryCache is a bounded, thread-safe map from Key to SourceSummary.
type SummaryCache struct {
	cache otter.Cache[string, *extract.SourceSummary]
}

// New builds a SummaryCache.
func New(opts Options) (*SummaryCache, error) {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	builder := otter.MustBuilder[string, *extract.SourceSummary](capacity).CollectStats()

	var (
		c   otter.Cache[string, *extract.SourceSummary]
		err error
	)
	if opts.TTL > 0 {
		c, err = builder.WithTTL(opts.TTL).Build()
	} else {
		c, err = builder.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build summary cache: %w", err)
	}
	return &SummaryCache{cache: c}, nil
}

// Get returns the summary stored under key.
func (c *SummaryCache) Get(key string) (*extract.SourceSummary, bool) {
	return c.cache.Get(key)
}

// Set stores a summary. It may be rejected when the cache is full and the entry is
// judged not worth admitting.
func (c *SummaryCache) Set(key string, summary *extract.SourceSummary) bool {
	return c.cache.Set(key, summary)
}

// Stats returns the hit and miss counters.
func (c *SummaryCache) Stats() Stats {
	s := c.cache.Stats()
	return Stats{
		Hits:   s.Hits(),
		Misses: s.Misses(),
		Ratio:  s.Ratio(),
		Size:   c.cache.Size(),
	}
}

// Clear drops every entry.
func (c *SummaryCache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines.
func (c *SummaryCache) Close() {
	c.cache.Close()
}
