package files

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/springctx/internal/extract"
)

// ErrExists is returned when create_file would overwrite an existing file.
var ErrExists = errors.New("file already exists")

// Summarizer produces the structural summary of Java source text. *extract.Extractor
// and the caching extractor both satisfy it.
type Summarizer interface {
	Summarize(text string) *extract.SourceSummary
}

// Service implements the file management tools on top of a Provider.
type Service struct {
	provider        *Provider
	summarizer      Summarizer
	interestingKeys []string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithInterestingKeys sets the key fragments reported by config analysis.
func WithInterestingKeys(keys []string) ServiceOption {
	return func(s *Service) {
		if len(keys) > 0 {
			s.interestingKeys = keys
		}
	}
}

// NewService creates a file Service.
func NewService(provider *Provider, summarizer Summarizer, opts ...ServiceOption) *Service {
	s := &Service{
		provider:        provider,
		summarizer:      summarizer,
		interestingKeys: extract.DefaultInterestingKeys,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the filesystem the service works on.
func (s *Service) Provider() *Provider {
	return s.provider
}

// ListResult is the response of list_files.
type ListResult struct {
	Directory   string  `json:"directory"`
	TotalFiles  int     `json:"total_files"`
	Files       []Info  `json:"files"`
	JavaFiles   []Info  `json:"spring_boot_files"`
	ConfigFiles []Info  `json:"config_files"`
	Layout      *Layout `json:"spring_boot_structure"`
}

// ListFiles lists the files of dir matching pattern with their metadata.
func (s *Service) ListFiles(ctx context.Context, dir, pattern string, recursive bool) (*ListResult, error) {
	var verrs ValidationErrors
	verrs.requirePath("directory", dir)
	verrs.checkPattern("pattern", pattern)
	if err := verrs.Err(); err != nil {
		return nil, err
	}
	if !s.provider.IsDir(dir) {
		return nil, fmt.Errorf("directory %w: %s", ErrNotFound, dir)
	}

	paths, err := s.provider.List(ctx, dir, pattern, recursive)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Directory:   dir,
		Files:       []Info{},
		JavaFiles:   []Info{},
		ConfigFiles: []Info{},
	}
	for _, path := range paths {
		info, err := s.provider.Info(path)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, *info)
		if info.IsJavaFile {
			result.JavaFiles = append(result.JavaFiles, *info)
		}
		if info.IsConfigFile {
			result.ConfigFiles = append(result.ConfigFiles, *info)
		}
	}
	result.TotalFiles = len(result.Files)

	result.Layout, err = s.provider.DetectLayout(ctx, dir)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// JavaAnalysis is the quick structural overview attached to read_file for Java sources.
type JavaAnalysis struct {
	Package           string              `json:"package"`
	ImportCount       int                 `json:"import_count"`
	ClassCount        int                 `json:"class_count"`
	InterfaceCount    int                 `json:"interface_count"`
	EnumCount         int                 `json:"enum_count"`
	MethodCount       int                 `json:"method_count"`
	SpringAnnotations []string            `json:"spring_annotations"`
	Components        []extract.Component `json:"spring_components"`
	Syntax            extract.SyntaxCheck `json:"syntax"`
}

// ReadResult is the response of read_file.
type ReadResult struct {
	FilePath       string                 `json:"file_path"`
	Content        string                 `json:"content"`
	Binary         bool                   `json:"binary,omitempty"`
	Metadata       *Info                  `json:"metadata"`
	JavaAnalysis   *JavaAnalysis          `json:"java_analysis,omitempty"`
	ConfigAnalysis *extract.ConfigSummary `json:"config_analysis,omitempty"`
}

// ReadFile returns the content of a file with its metadata and, for Java and config
// files, an analysis of the content. Binary files are reported by size only.
func (s *Service) ReadFile(ctx context.Context, path string) (*ReadResult, error) {
	var verrs ValidationErrors
	verrs.requirePath("file_path", path)
	if err := verrs.Err(); err != nil {
		return nil, err
	}

	info, err := s.provider.Info(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir {
		return nil, fmt.Errorf("not a file: %s", path)
	}

	result := &ReadResult{FilePath: path, Metadata: info}
	text, err := s.provider.ReadText(path)
	switch {
	case errors.Is(err, ErrBinaryContent):
		result.Binary = true
		result.Content = fmt.Sprintf("<Binary file - %d bytes>", info.Size)
		return result, nil
	case err != nil:
		return nil, err
	}
	result.Content = text

	lang := extract.DetectLanguage(path)
	switch {
	case lang == extract.LangJava:
		result.JavaAnalysis = s.analyzeJava(text)
	case lang.IsConfig():
		summary := extract.SummarizeConfig(text, lang.ConfigKind(), s.interestingKeys)
		result.ConfigAnalysis = &summary
	}
	return result, nil
}

func (s *Service) analyzeJava(text string) *JavaAnalysis {
	summary := s.summarizer.Summarize(text)
	a := &JavaAnalysis{
		Package:           summary.Package,
		ImportCount:       len(summary.Imports),
		SpringAnnotations: summary.Annotations,
		Components:        summary.Components,
		Syntax:            extract.ValidateSyntax(text),
	}
	extract.Walk(summary.Declarations, func(d extract.Declaration) {
		switch d.Kind {
		case extract.KindClass:
			a.ClassCount++
		case extract.KindInterface:
			a.InterfaceCount++
		case extract.KindEnum:
			a.EnumCount++
		}
		a.MethodCount += len(d.Methods)
	})
	return a
}

// WriteResult is the response of the create, update and delete tools.
type WriteResult struct {
	Success    bool   `json:"success"`
	FilePath   string `json:"file_path"`
	BackupPath string `json:"backup_path,omitempty"`
	Message    string `json:"message"`
	Metadata   *Info  `json:"metadata,omitempty"`
}

// CreateFile writes a new file. An existing file is only replaced with overwrite.
func (s *Service) CreateFile(ctx context.Context, path, content string, overwrite bool) (*WriteResult, error) {
	var verrs ValidationErrors
	verrs.requirePath("file_path", path)
	if err := verrs.Err(); err != nil {
		return nil, err
	}
	if _, err := s.provider.Resolve(path); err != nil {
		return nil, err
	}

	if s.provider.Exists(path) && !overwrite {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := s.provider.Write(path, []byte(content)); err != nil {
		return nil, err
	}

	info, err := s.provider.Info(path)
	if err != nil {
		return nil, err
	}
	return &WriteResult{
		Success:  true,
		FilePath: path,
		Message:  "File created successfully: " + path,
		Metadata: info,
	}, nil
}

// UpdateFile replaces the content of an existing file after copying it to
// <path>.backup.
func (s *Service) UpdateFile(ctx context.Context, path, content string) (*WriteResult, error) {
	var verrs ValidationErrors
	verrs.requirePath("file_path", path)
	if err := verrs.Err(); err != nil {
		return nil, err
	}

	resolved, stat, err := s.provider.Stat(path)
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("not a file: %s", path)
	}

	backup := resolved + ".backup"
	if err := s.provider.Copy(resolved, backup); err != nil {
		return nil, fmt.Errorf("failed to back up %s: %w", path, err)
	}
	if err := s.provider.Write(resolved, []byte(content)); err != nil {
		return nil, err
	}

	info, err := s.provider.Info(resolved)
	if err != nil {
		return nil, err
	}
	return &WriteResult{
		Success:    true,
		FilePath:   path,
		BackupPath: s.provider.Display(backup),
		Message:    "File updated successfully: " + path,
		Metadata:   info,
	}, nil
}

// DeleteFile removes a file or directory. With backup a file is first copied into a
// .backup directory next to it.
func (s *Service) DeleteFile(ctx context.Context, path string, backup bool) (*WriteResult, error) {
	var verrs ValidationErrors
	verrs.requirePath("file_path", path)
	if err := verrs.Err(); err != nil {
		return nil, err
	}

	resolved, stat, err := s.provider.Stat(path)
	if err != nil {
		return nil, err
	}
	if resolved == s.provider.Root() {
		return nil, fmt.Errorf("refusing to delete the workspace root")
	}

	result := &WriteResult{Success: true, FilePath: path, Message: "File deleted successfully: " + path}
	if backup {
		if stat.IsDir() {
			return nil, fmt.Errorf("backups are only made for files: %s", path)
		}
		dst := filepath.Join(filepath.Dir(resolved), ".backup", filepath.Base(resolved))
		if err := s.provider.Copy(resolved, dst); err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		result.BackupPath = s.provider.Display(dst)
	}

	if err := s.provider.Remove(resolved); err != nil {
		return nil, err
	}
	return result, nil
}

// LineMatch is one matching line of a search.
type LineMatch struct {
	LineNumber int    `json:"line_number"`
	Content    string `json:"content"`
}

// FileMatches are the matching lines of one file.
type FileMatches struct {
	File    string      `json:"file"`
	Matches int         `json:"matches"`
	Lines   []LineMatch `json:"lines"`
}

// SearchResult is the response of search_files.
type SearchResult struct {
	SearchTerm  string        `json:"search_term"`
	Directory   string        `json:"directory"`
	FilePattern string        `json:"file_pattern"`
	TotalFiles  int           `json:"total_matches"`
	Files       []FileMatches `json:"files_with_matches"`
}

// SearchFiles looks for a case-insensitive substring in every text file under dir that
// matches pattern. Binary and unreadable files are skipped.
func (s *Service) SearchFiles(ctx context.Context, dir, term, pattern string) (*SearchResult, error) {
	var verrs ValidationErrors
	verrs.requirePath("directory", dir)
	if term == "" {
		verrs.Add("search_term", term, "search term is required", "")
	}
	verrs.checkPattern("file_pattern", pattern)
	if err := verrs.Err(); err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = "*"
	}
	if !s.provider.IsDir(dir) {
		return nil, fmt.Errorf("directory %w: %s", ErrNotFound, dir)
	}

	paths, err := s.provider.List(ctx, dir, pattern, true)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	result := &SearchResult{SearchTerm: term, Directory: dir, FilePattern: pattern, Files: []FileMatches{}}
	for _, path := range paths {
		text, err := s.provider.ReadText(path)
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(text), needle) {
			continue
		}
		fm := FileMatches{File: s.provider.Display(path), Lines: []LineMatch{}}
		for i, line := range strings.Split(text, "\n") {
			if strings.Contains(strings.ToLower(line), needle) {
				fm.Lines = append(fm.Lines, LineMatch{LineNumber: i + 1, Content: strings.TrimSpace(line)})
			}
		}
		fm.Matches = len(fm.Lines)
		result.Files = append(result.Files, fm)
	}
	result.TotalFiles = len(result.Files)
	return result, nil
}
