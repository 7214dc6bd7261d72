package cache

import (
	"github.com/opencontainers/go-digest"
)

// Key returns the cache key for source text summarized by the named declaration
// backend. Format: {parser}@{sha256 digest}. The backend is part of the key because
// the regex and tree-sitter backends may disagree on the same text.
func Key(parser, text string) string {
	return parser + "@" + digest.FromString(text).String()
}
