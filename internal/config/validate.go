package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidParser indicates an unknown declaration backend
	ErrInvalidParser = errors.New("invalid analysis parser")

	// ErrInvalidThreshold indicates a non-positive long line threshold
	ErrInvalidThreshold = errors.New("invalid long line threshold")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidDepth indicates an unusable default tree depth
	ErrInvalidDepth = errors.New("invalid default depth")

	// ErrInvalidLogLevel indicates a level logrus does not know
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unsupported log format
	ErrInvalidLogFormat = errors.New("invalid log format")

	// ErrEmptyRoot indicates a missing workspace root
	ErrEmptyRoot = errors.New("empty workspace root")
)

// maxDepth mirrors the tree depth cap of get_project_structure.
const maxDepth = 20

// Validate checks that the configuration is valid and complete. Every problem is
// reported; the result matches each sentinel with errors.Is.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Workspace.Root) == "" {
		errs = append(errs, fmt.Errorf("%w: workspace.root is required", ErrEmptyRoot))
	}

	switch strings.ToLower(cfg.Analysis.Parser) {
	case ParserRegex, ParserTreeSitter:
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidParser, ParserRegex, ParserTreeSitter, cfg.Analysis.Parser))
	}
	if cfg.Analysis.LongLineThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidThreshold, cfg.Analysis.LongLineThreshold))
	}

	if cfg.Cache.Capacity < 0 {
		errs = append(errs, fmt.Errorf("%w: capacity cannot be negative, got %d", ErrInvalidCacheSettings, cfg.Cache.Capacity))
	}
	if cfg.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("%w: ttl cannot be negative, got %s", ErrInvalidCacheSettings, cfg.Cache.TTL))
	}

	if cfg.Tools.DefaultDepth <= 0 || cfg.Tools.DefaultDepth > maxDepth {
		errs = append(errs, fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidDepth, maxDepth, cfg.Tools.DefaultDepth))
	}

	if _, err := logrus.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidLogLevel, cfg.Logging.Level))
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidLogFormat, LogFormatText, LogFormatJSON, cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
