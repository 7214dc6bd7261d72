package configfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/mvp-joe/springctx/internal/extract"
)

// parseYAML decodes every document of a YAML stream. Later documents override keys of
// earlier ones, matching how Spring layers profile documents.
func parseYAML(data []byte) (*Config, error) {
	cfg := &Config{Kind: extract.ConfigYAML, Keys: map[string]string{}}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc interface{}
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if doc == nil {
			continue
		}
		cfg.Documents++
		flatten("", doc, cfg.Keys)
	}
	return cfg, nil
}

// flatten writes the leaves of v into out under dotted keys. Sequence items use
// "key[i]" like Spring's relaxed binding.
func flatten(prefix string, v interface{}, out map[string]string) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			flatten(join(prefix, k), child, out)
		}
	case map[interface{}]interface{}:
		for k, child := range t {
			flatten(join(prefix, fmt.Sprint(k)), child, out)
		}
	case []interface{}:
		if len(t) == 0 {
			out[prefix] = ""
		}
		for i, child := range t {
			flatten(prefix+"["+strconv.Itoa(i)+"]", child, out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(t)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
