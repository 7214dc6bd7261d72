// Package files is the workspace filesystem: a Provider that resolves and guards paths
// over an afero.Fs, and the Service behind the file management tools.
package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when a path does not exist.
	ErrNotFound = errors.New("path does not exist")
	// ErrBinaryContent is returned when text was requested from a binary file.
	ErrBinaryContent = errors.New("binary content")
	// ErrOutsideRoot is returned for paths escaping a restricted workspace.
	ErrOutsideRoot = errors.New("path is outside the workspace root")
)

// binarySniffLen is how much of a file is searched for NUL bytes.
const binarySniffLen = 1024

// Provider gives access to the files of one workspace. Relative paths are resolved
// against the root; when restricted, paths resolving outside the root are rejected.
type Provider struct {
	fs       afero.Fs
	root     string
	restrict bool
	ignore   []string
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRestrict confines all paths to the workspace root.
func WithRestrict(restrict bool) ProviderOption {
	return func(p *Provider) {
		p.restrict = restrict
	}
}

// WithIgnore replaces the directory names and patterns pruned during walks.
func WithIgnore(patterns []string) ProviderOption {
	return func(p *Provider) {
		p.ignore = patterns
	}
}

// NewProvider creates a Provider rooted at root.
func NewProvider(fsys afero.Fs, root string, opts ...ProviderOption) *Provider {
	if root == "" {
		root = "."
	}
	if _, ok := fsys.(*afero.OsFs); ok {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	p := &Provider{fs: fsys, root: filepath.Clean(root), ignore: DefaultIgnore}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewOsProvider creates a Provider over the real filesystem.
func NewOsProvider(root string, opts ...ProviderOption) *Provider {
	return NewProvider(afero.NewOsFs(), root, opts...)
}

// Root returns the workspace root.
func (p *Provider) Root() string {
	return p.root
}

// Fs exposes the underlying filesystem.
func (p *Provider) Fs() afero.Fs {
	return p.fs
}

// Resolve turns a caller supplied path into a cleaned filesystem path.
func (p *Provider) Resolve(path string) (string, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(p.root, resolved)
	}
	resolved = filepath.Clean(resolved)
	if p.restrict && !within(p.root, resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return resolved, nil
}

// Display renders a resolved path relative to the root when it lies inside it.
func (p *Provider) Display(resolved string) string {
	if within(p.root, resolved) {
		if rel, err := filepath.Rel(p.root, resolved); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(resolved)
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}

func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return err
}

// Stat resolves path and returns its file info.
func (p *Provider) Stat(path string) (string, os.FileInfo, error) {
	resolved, err := p.Resolve(path)
	if err != nil {
		return "", nil, err
	}
	info, err := p.fs.Stat(resolved)
	if err != nil {
		return "", nil, notFound(path, err)
	}
	return resolved, info, nil
}

// Exists reports whether path exists. Paths outside a restricted root do not exist.
func (p *Provider) Exists(path string) bool {
	_, _, err := p.Stat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func (p *Provider) IsDir(path string) bool {
	_, info, err := p.Stat(path)
	return err == nil && info.IsDir()
}

// ReadBytes returns the raw content of a file.
func (p *Provider) ReadBytes(path string) ([]byte, error) {
	resolved, err := p.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(p.fs, resolved)
	if err != nil {
		return nil, notFound(path, err)
	}
	return data, nil
}

// ReadText returns the content of a text file. Files with a NUL byte near the start or
// with invalid UTF-8 yield ErrBinaryContent.
func (p *Provider) ReadText(path string) (string, error) {
	data, err := p.ReadBytes(path)
	if err != nil {
		return "", err
	}
	if IsBinary(data) {
		return "", fmt.Errorf("%w: %s (%d bytes)", ErrBinaryContent, path, len(data))
	}
	return string(data), nil
}

// IsBinary reports whether data should be treated as binary.
func IsBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0 || !utf8.Valid(data)
}

// Write stores data at path, creating parent directories.
func (p *Provider) Write(path string, data []byte) error {
	resolved, err := p.Resolve(path)
	if err != nil {
		return err
	}
	if err := p.fs.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := afero.WriteFile(p.fs, resolved, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Copy duplicates a file, keeping its modification time.
func (p *Provider) Copy(src, dst string) error {
	_, info, err := p.Stat(src)
	if err != nil {
		return err
	}
	data, err := p.ReadBytes(src)
	if err != nil {
		return err
	}
	if err := p.Write(dst, data); err != nil {
		return err
	}
	resolved, err := p.Resolve(dst)
	if err != nil {
		return err
	}
	return p.fs.Chtimes(resolved, info.ModTime(), info.ModTime())
}

// Remove deletes a file or a whole directory tree.
func (p *Provider) Remove(path string) error {
	resolved, info, err := p.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		err = p.fs.RemoveAll(resolved)
	} else {
		err = p.fs.Remove(resolved)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// List returns the files under dir matching pattern, sorted. Patterns without a slash
// match file names; others match the slash separated path relative to dir. Without
// recursive only the direct children of dir are considered.
func (p *Provider) List(ctx context.Context, dir, pattern string, recursive bool) ([]string, error) {
	include := []string{}
	if pattern != "" && pattern != "*" {
		include = append(include, pattern)
	}
	matcher, err := NewMatcher(include, p.ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var out []string
	err = p.walk(ctx, dir, matcher, recursive, func(resolved string, _ os.FileInfo) error {
		out = append(out, resolved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// Walk visits every file under dir whose path matches one of include (all files when
// include is empty), pruning ignored directories. Cancellation is checked per entry.
func (p *Provider) Walk(ctx context.Context, dir string, include []string, fn func(path string, info os.FileInfo) error) error {
	matcher, err := NewMatcher(include, p.ignore)
	if err != nil {
		return err
	}
	return p.walk(ctx, dir, matcher, true, fn)
}

func (p *Provider) walk(ctx context.Context, dir string, matcher *Matcher, recursive bool, fn func(string, os.FileInfo) error) error {
	root, info, err := p.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	matcher.projectDir = p.projectDir(root)

	return afero.Walk(p.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if !recursive || matcher.Ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !matcher.Matches(rel) {
			return nil
		}
		return fn(path, info)
	})
}

// ReadDir lists the entries of dir, directories first and then by case-insensitive name.
// Ignored directories are left out.
func (p *Provider) ReadDir(dir string) ([]os.FileInfo, error) {
	resolved, info, err := p.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	matcher, err := NewMatcher(nil, p.ignore)
	if err != nil {
		return nil, err
	}
	matcher.projectDir = p.projectDir(resolved)
	entries, err := afero.ReadDir(p.fs, resolved)
	if err != nil {
		return nil, err
	}

	out := entries[:0]
	for _, e := range entries {
		if e.IsDir() && matcher.Ignored(e.Name()) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir() != out[j].IsDir() {
			return out[i].IsDir()
		}
		return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
	})
	return out, nil
}

// projectDir returns a Matcher callback that looks for build files below root.
func (p *Provider) projectDir(root string) func(string) bool {
	return func(relDir string) bool {
		dir := filepath.Join(root, filepath.FromSlash(relDir))
		for _, name := range BuildFiles {
			if ok, _ := afero.Exists(p.fs, filepath.Join(dir, name)); ok {
				return true
			}
		}
		return false
	}
}
