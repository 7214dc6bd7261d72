package mcp

import (
	"fmt"

	"github.com/mvp-joe/springctx/internal/analysis"
	"github.com/mvp-joe/springctx/internal/cache"
	"github.com/mvp-joe/springctx/internal/config"
	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
	"github.com/mvp-joe/springctx/internal/parsers"
	"github.com/mvp-joe/springctx/internal/project"
)

// Services bundles the tool backends sharing one workspace and one extractor.
type Services struct {
	Provider  *files.Provider
	Extractor *cache.Extractor
	Files     *files.Service
	Analyzer  *analysis.Analyzer
	Projects  *project.Service

	cache *cache.SummaryCache
}

// NewWorkspaceProvider opens the configured workspace on the real filesystem.
func NewWorkspaceProvider(cfg *config.Config) *files.Provider {
	return files.NewOsProvider(cfg.Workspace.Root,
		files.WithRestrict(cfg.Workspace.Restrict),
		files.WithIgnore(cfg.Workspace.Ignore),
	)
}

// NewServices wires the services for provider according to cfg. Extra analysis options
// are applied after the configured ones.
func NewServices(cfg *config.Config, provider *files.Provider, opts ...analysis.Option) (*Services, error) {
	var ex *extract.Extractor
	switch cfg.Analysis.Parser {
	case config.ParserTreeSitter:
		ex = extract.NewExtractor(extract.WithDeclarationParser(parsers.NewJavaParser()))
	default:
		ex = extract.NewExtractor()
	}

	var summaries *cache.SummaryCache
	if cfg.Cache.Enabled {
		var err error
		summaries, err = cache.New(cache.Options{Capacity: cfg.Cache.Capacity, TTL: cfg.Cache.TTL})
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
	}
	extractor := cache.NewExtractor(ex, summaries)

	analysisOpts := append([]analysis.Option{
		analysis.WithLongLineThreshold(cfg.Analysis.LongLineThreshold),
		analysis.WithInterestingKeys(cfg.Analysis.InterestingKeys),
	}, opts...)

	return &Services{
		Provider:  provider,
		Extractor: extractor,
		Files:     files.NewService(provider, extractor, files.WithInterestingKeys(cfg.Analysis.InterestingKeys)),
		Analyzer:  analysis.New(provider, extractor, analysisOpts...),
		Projects:  project.NewService(provider, extractor, project.WithDefaultDepth(cfg.Tools.DefaultDepth)),
		cache:     summaries,
	}, nil
}

// Close releases the result cache.
func (s *Services) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}
