// Package analysis implements the code analysis and documentation tools: analyze_code,
// get_function_signatures, extract_comments and generate_docs. Files are read through a
// files.Provider and Java sources are summarized by the extract package, optionally
// through the result cache.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

var (
	ErrUnsupportedMode     = errors.New("unsupported analysis type")
	ErrUnsupportedLanguage = errors.New("language not yet supported for signature extraction")
	ErrUnsupportedFormat   = errors.New("unsupported documentation format")
	ErrNotJava             = errors.New("file is not a Java file")
)

// Mode selects the parts of an analysis report.
type Mode string

const (
	ModeStructure    Mode = "structure"
	ModeDependencies Mode = "dependencies"
	ModeQuality      Mode = "quality"
	ModeAll          Mode = "all"
)

// ParseMode validates a caller supplied mode; "" selects ModeAll.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAll, nil
	case ModeStructure, ModeDependencies, ModeQuality, ModeAll:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

func (m Mode) includes(part Mode) bool {
	return m == ModeAll || m == part
}

// ProgressFunc is told about every file a directory analysis has processed.
type ProgressFunc func(done, total int, path string)

// Analyzer runs the analysis tools.
type Analyzer struct {
	provider        *files.Provider
	summarizer      files.Summarizer
	longLine        int
	interestingKeys []string
	progress        ProgressFunc
	now             func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLongLineThreshold sets the length above which quality metrics count a line as long.
func WithLongLineThreshold(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.longLine = n
		}
	}
}

// WithInterestingKeys sets the key fragments highlighted in config summaries.
func WithInterestingKeys(keys []string) Option {
	return func(a *Analyzer) {
		if len(keys) > 0 {
			a.interestingKeys = keys
		}
	}
}

// WithProgress registers a progress callback for directory analysis.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// WithClock replaces the clock used for documentation timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates an Analyzer.
func New(provider *files.Provider, summarizer files.Summarizer, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider:        provider,
		summarizer:      summarizer,
		longLine:        extract.DefaultLongLineThreshold,
		interestingKeys: extract.DefaultInterestingKeys,
		progress:        func(int, int, string) {},
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report is the response of analyze_code. Structure, Dependencies and Quality hold the
// file or directory variants depending on IsDirectory.
type Report struct {
	Path         string           `json:"path"`
	IsDirectory  bool             `json:"is_directory"`
	Mode         Mode             `json:"analysis_type"`
	Language     extract.Language `json:"language,omitempty"`
	Binary       bool             `json:"binary,omitempty"`
	Structure    interface{}      `json:"structure,omitempty"`
	Dependencies interface{}      `json:"dependencies,omitempty"`
	Quality      interface{}      `json:"quality,omitempty"`
}

// Analyze analyzes a file or a directory tree.
func (a *Analyzer) Analyze(ctx context.Context, path string, mode Mode) (*Report, error) {
	if mode == "" {
		mode = ModeAll
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	_, info, err := a.provider.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return a.analyzeDirectory(ctx, path, mode)
	}
	return a.analyzeFile(path, mode)
}

// sourceFile is one file read during a directory walk.
type sourceFile struct {
	path    string
	rel     string
	lang    extract.Language
	text    string
	binary  bool
	lines   int
	summary *extract.SourceSummary
}

// collect reads every file below dir whose name matches include. Java sources are
// summarized. Progress is reported per file.
func (a *Analyzer) collect(ctx context.Context, dir string, include []string) ([]*sourceFile, error) {
	root, err := a.provider.Resolve(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = a.provider.Walk(ctx, dir, include, func(path string, _ os.FileInfo) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*sourceFile, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, err
		}
		f := &sourceFile{path: path, rel: filepath.ToSlash(rel), lang: extract.DetectLanguage(path)}

		text, err := a.provider.ReadText(path)
		switch {
		case errors.Is(err, files.ErrBinaryContent):
			f.binary = true
		case err != nil:
			return nil, err
		default:
			f.text = text
			f.lines = countLines(text)
			if f.lang == extract.LangJava {
				f.summary = a.summarizer.Summarize(text)
			}
		}
		out = append(out, f)
		a.progress(i+1, len(paths), f.rel)
	}
	return out, nil
}

// sourcePatterns matches the files analyzed in a directory.
func sourcePatterns() []string {
	exts := extract.SupportedExtensions()
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		patterns = append(patterns, "*"+ext)
	}
	return patterns
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
