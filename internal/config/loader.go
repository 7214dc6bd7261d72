package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPRINGCTX"

// DirName is the per-workspace configuration directory.
const DirName = ".springctx"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// LoaderOption configures a Loader.
type LoaderOption func(*loader)

// WithConfigFile reads the given file instead of searching .springctx/. A missing explicit
// file is an error.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) {
		l.configFile = path
	}
}

// NewLoader creates a new configuration loader for the given workspace directory.
func NewLoader(rootDir string, opts ...LoaderOption) Loader {
	l := &loader{rootDir: rootDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// keys lists every configuration key; each can be overridden from the environment.
var keys = []string{
	"workspace.root",
	"workspace.restrict",
	"workspace.ignore",
	"analysis.parser",
	"analysis.long_line_threshold",
	"analysis.interesting_keys",
	"cache.enabled",
	"cache.capacity",
	"cache.ttl",
	"tools.read_only",
	"tools.default_depth",
	"logging.level",
	"logging.format",
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SPRINGCTX_*)
// 2. Config file (.springctx/config.yml or .springctx/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, DirName))
	}

	// SPRINGCTX_CACHE_ENABLED -> cache.enabled
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Workspace.Ignore = splitList(cfg.Workspace.Ignore)
	cfg.Analysis.InterestingKeys = splitList(cfg.Analysis.InterestingKeys)

	if cfg.Workspace.Root == "" || cfg.Workspace.Root == "." {
		cfg.Workspace.Root = l.rootDir
	} else if !filepath.IsAbs(cfg.Workspace.Root) {
		cfg.Workspace.Root = filepath.Join(l.rootDir, cfg.Workspace.Root)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("workspace.root", d.Workspace.Root)
	v.SetDefault("workspace.restrict", d.Workspace.Restrict)
	v.SetDefault("workspace.ignore", d.Workspace.Ignore)

	v.SetDefault("analysis.parser", d.Analysis.Parser)
	v.SetDefault("analysis.long_line_threshold", d.Analysis.LongLineThreshold)
	v.SetDefault("analysis.interesting_keys", d.Analysis.InterestingKeys)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.capacity", d.Cache.Capacity)
	v.SetDefault("cache.ttl", d.Cache.TTL)

	v.SetDefault("tools.read_only", d.Tools.ReadOnly)
	v.SetDefault("tools.default_depth", d.Tools.DefaultDepth)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// splitList trims list entries, splitting any that still hold commas and dropping blanks.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// LoadConfig loads configuration for the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
