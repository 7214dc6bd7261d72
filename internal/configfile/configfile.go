// Package configfile parses Spring configuration files with format-aware parsers:
// YAML (including nested maps, lists and multi-document files), .properties files and
// Spring XML bean definitions. Keys are flattened to the dotted form Spring itself uses
// ("spring.datasource.url"), so nested YAML no longer collides the way a line-by-line
// splitter does.
package configfile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/springctx/internal/extract"
)

// ErrUnsupportedKind is returned for config kinds without a parser.
var ErrUnsupportedKind = errors.New("unsupported config kind")

// Config is a parsed configuration file.
type Config struct {
	Kind extract.ConfigKind `json:"type"`
	// Keys holds every leaf value under its dotted key. Values are rendered as text.
	Keys map[string]string `json:"keys"`
	// Documents is the number of YAML documents in the file.
	Documents int    `json:"documents,omitempty"`
	Beans     []Bean `json:"beans,omitempty"`
}

// Parse parses data according to kind.
func Parse(kind extract.ConfigKind, data []byte) (*Config, error) {
	switch kind {
	case extract.ConfigYAML:
		return parseYAML(data)
	case extract.ConfigProperties:
		return parseProperties(data)
	case extract.ConfigXML:
		beans, err := ParseBeans(data)
		if err != nil {
			return nil, err
		}
		return &Config{Kind: kind, Keys: map[string]string{}, Beans: beans}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

// SortedKeys returns the keys in lexical order.
func (c *Config) SortedKeys() []string {
	keys := make([]string, 0, len(c.Keys))
	for k := range c.Keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key and whether it is set.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.Keys[key]
	return v, ok
}

// Matching returns the keys containing any of the fragments, case-insensitively.
func (c *Config) Matching(fragments []string) map[string]string {
	out := map[string]string{}
	for k, v := range c.Keys {
		lower := strings.ToLower(k)
		for _, f := range fragments {
			if strings.Contains(lower, strings.ToLower(f)) {
				out[k] = v
				break
			}
		}
	}
	return out
}

// TopLevel returns the distinct first segments of all keys, sorted.
func (c *Config) TopLevel() []string {
	seen := map[string]bool{}
	var out []string
	for k := range c.Keys {
		top := k
		if i := strings.IndexAny(k, ".["); i > 0 {
			top = k[:i]
		}
		if !seen[top] {
			seen[top] = true
			out = append(out, top)
		}
	}
	sort.Strings(out)
	return out
}
