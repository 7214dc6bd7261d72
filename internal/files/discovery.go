package files

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultIgnore lists directories that are not descended into during walks: VCS
// metadata, IDE and build tool state, build output and backups written by this tool.
var DefaultIgnore = []string{".git", ".svn", ".idea", ".gradle", ".springctx", ".backup", "node_modules", "target", "build"}

// BuildOutputDirs are ignore entries naming build output. They are pruned only in a
// directory that holds a build file, so packages such as com.acme.build stay visible.
var BuildOutputDirs = []string{"target", "build", "out", "bin"}

// BuildFiles mark a Maven or Gradle project directory.
var BuildFiles = []string{"pom.xml", "build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts"}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// Patterns without a separator match the base name at any depth, like a shell glob
	// applied in every directory.
	base bool
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, compiledPattern{pattern: pattern, glob: g, base: !strings.Contains(pattern, "/")})
	}
	return out, nil
}

// Matcher selects files by glob pattern and prunes ignored directories. Paths given to it
// are slash separated and relative to the walk root.
type Matcher struct {
	include []compiledPattern
	ignore  []compiledPattern
	output  []compiledPattern

	// projectDir reports whether a directory, relative to the walk root, holds a build
	// file. Build output entries are never pruned when it is nil.
	projectDir func(relDir string) bool
}

// NewMatcher compiles include and ignore patterns. An empty include list matches every file.
func NewMatcher(include, ignore []string) (*Matcher, error) {
	inc, err := compilePatterns(include)
	if err != nil {
		return nil, err
	}
	var plain, output []string
	for _, pattern := range ignore {
		if isBuildOutput(pattern) {
			output = append(output, pattern)
		} else {
			plain = append(plain, pattern)
		}
	}
	ign, err := compilePatterns(plain)
	if err != nil {
		return nil, err
	}
	out, err := compilePatterns(output)
	if err != nil {
		return nil, err
	}
	return &Matcher{include: inc, ignore: ign, output: out}, nil
}

func isBuildOutput(pattern string) bool {
	for _, name := range BuildOutputDirs {
		if pattern == name {
			return true
		}
	}
	return false
}

// Matches reports whether a file path is selected by the include patterns.
func (m *Matcher) Matches(relPath string) bool {
	if len(m.include) == 0 {
		return true
	}
	return matchesAnyPattern(relPath, m.include)
}

// Ignored reports whether a directory should be skipped.
func (m *Matcher) Ignored(relPath string) bool {
	if matchesAnyPattern(relPath, m.ignore) {
		return true
	}
	// "node_modules/**" style patterns name the directory through its contents.
	if matchesAnyPattern(relPath+"/**", m.ignore) {
		return true
	}
	if m.projectDir == nil || !matchesAnyPattern(relPath, m.output) {
		return false
	}
	return m.projectDir(path.Dir(relPath))
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(relPath string, patterns []compiledPattern) bool {
	name := path.Base(relPath)
	for _, cp := range patterns {
		if cp.base {
			if cp.glob.Match(name) {
				return true
			}
			continue
		}
		if cp.glob.Match(relPath) {
			return true
		}
	}

	// Files in the walk root have no slash, so "**/*.java" also has to match "Main.java".
	if !strings.Contains(relPath, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(relPath) {
					return true
				}
			}
		}
	}

	return false
}
