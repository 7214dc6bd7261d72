// Package config provides configuration loading for springctx.
//
// Configuration is read from .springctx/config.yml (or config.yaml) in the workspace, or
// from an explicit file, with SPRINGCTX_* environment variables taking precedence:
//
//  1. Environment variables (SPRINGCTX_CACHE_ENABLED, SPRINGCTX_TOOLS_READ_ONLY, ...)
//  2. Config file
//  3. Built-in defaults
package config

import (
	"time"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// Declaration backends
const (
	ParserRegex      = "regex"
	ParserTreeSitter = "treesitter"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the complete springctx configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Tools     ToolsConfig     `yaml:"tools" mapstructure:"tools"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// WorkspaceConfig sets where tool paths are resolved.
type WorkspaceConfig struct {
	Root     string   `yaml:"root" mapstructure:"root"`         // relative paths resolve against this
	Restrict bool     `yaml:"restrict" mapstructure:"restrict"` // reject paths outside Root
	Ignore   []string `yaml:"ignore" mapstructure:"ignore"`     // directory names never walked
}

// AnalysisConfig tunes extraction.
type AnalysisConfig struct {
	Parser            string   `yaml:"parser" mapstructure:"parser"` // "regex" or "treesitter"
	LongLineThreshold int      `yaml:"long_line_threshold" mapstructure:"long_line_threshold"`
	InterestingKeys   []string `yaml:"interesting_keys" mapstructure:"interesting_keys"`
}

// CacheConfig configures the extraction result cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Capacity int           `yaml:"capacity" mapstructure:"capacity"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"` // 0 keeps entries until evicted
}

// ToolsConfig configures the MCP tool surface.
type ToolsConfig struct {
	ReadOnly     bool `yaml:"read_only" mapstructure:"read_only"` // omit create/update/delete tools
	DefaultDepth int  `yaml:"default_depth" mapstructure:"default_depth"`
}

// LoggingConfig configures logrus.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root:     ".",
			Restrict: false,
			Ignore:   append([]string(nil), files.DefaultIgnore...),
		},
		Analysis: AnalysisConfig{
			Parser:            ParserRegex,
			LongLineThreshold: extract.DefaultLongLineThreshold,
			InterestingKeys:   append([]string(nil), extract.DefaultInterestingKeys...),
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 2048,
			TTL:      30 * time.Minute,
		},
		Tools: ToolsConfig{
			ReadOnly:     false,
			DefaultDepth: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}
