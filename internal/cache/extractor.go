package cache

import (
	"github.com/mvp-joe/springctx/internal/extract"
)

// Extractor wraps an extract.Extractor with a SummaryCache. Cached summaries are shared
// between callers and must be treated as read-only.
type Extractor struct {
	*extract.Extractor
	cache *SummaryCache
}

// NewExtractor wraps ex. A nil cache disables caching.
func NewExtractor(ex *extract.Extractor, cache *SummaryCache) *Extractor {
	return &Extractor{Extractor: ex, cache: cache}
}

// Summarize returns the cached summary of text, computing it on a miss.
func (e *Extractor) Summarize(text string) *extract.SourceSummary {
	if e.cache == nil {
		return e.Extractor.Summarize(text)
	}

	key := Key(e.ParserName(), text)
	if summary, ok := e.cache.Get(key); ok {
		return summary
	}
	summary := e.Extractor.Summarize(text)
	e.cache.Set(key, summary)
	return summary
}

// Stats reports cache counters; zero when caching is disabled.
func (e *Extractor) Stats() Stats {
	if e.cache == nil {
		return Stats{}
	}
	return e.cache.Stats()
}
