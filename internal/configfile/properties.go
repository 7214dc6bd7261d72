package configfile

import (
	"fmt"

	"github.com/magiconair/properties"

	"github.com/mvp-joe/springctx/internal/extract"
)

// parseProperties parses a Java .properties file. ${...} placeholders are kept verbatim:
// Spring resolves them at runtime against sources this tool cannot see.
func parseProperties(data []byte) (*Config, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	return &Config{Kind: extract.ConfigProperties, Keys: p.Map()}, nil
}
