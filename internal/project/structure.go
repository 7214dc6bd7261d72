// Package project implements get_project_structure and detect_technologies: a directory
// tree with totals, the Java and Spring Boot shape of the sources, and the technologies a
// project's build files declare.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mvp-joe/springctx/internal/analysis"
	"github.com/mvp-joe/springctx/internal/configfile"
	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// Tree depth limits
const (
	DefaultDepth = 3
	MaxDepth     = 20
)

// ErrNotDirectory is returned when a project root is a file.
var ErrNotDirectory = errors.New("path is not a directory")

// Node types
const (
	NodeDirectory = "directory"
	NodeFile      = "file"
)

// Service runs the project tools.
type Service struct {
	provider     *files.Provider
	summarizer   files.Summarizer
	defaultDepth int
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultDepth sets the tree depth used when a call does not give one.
func WithDefaultDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.defaultDepth = depth
		}
	}
}

// NewService creates a project Service.
func NewService(provider *files.Provider, summarizer files.Summarizer, opts ...Option) *Service {
	s := &Service{provider: provider, summarizer: summarizer, defaultDepth: DefaultDepth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TreeNode is one entry of the directory tree. Children of directories at the depth limit
// are not listed; Truncated marks such directories when they are not empty.
type TreeNode struct {
	Name      string      `json:"name"`
	Path      string      `json:"path"`
	Type      string      `json:"type"`
	Size      *int64      `json:"size,omitempty"`
	Children  []*TreeNode `json:"children,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
}

// FileTypeStats counts the files with one extension.
type FileTypeStats struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size"`
}

// SpringComponents lists source files by the stereotype of their first component.
type SpringComponents struct {
	Controllers  []string `json:"controllers"`
	Services     []string `json:"services"`
	Repositories []string `json:"repositories"`
	Components   []string `json:"components"`
}

// JavaAnalysis is the Java shape of a project.
type JavaAnalysis struct {
	TotalJavaFiles   int              `json:"total_java_files"`
	Packages         []string         `json:"packages"`
	MainClasses      []string         `json:"main_classes"`
	TestClasses      []string         `json:"test_classes"`
	ConfigClasses    []string         `json:"config_classes"`
	SpringComponents SpringComponents `json:"spring_components"`
}

// ApplicationConfig holds the keys of the conventional application config files.
type ApplicationConfig struct {
	Properties map[string]string `json:"properties,omitempty"`
	YAML       map[string]string `json:"yaml,omitempty"`
	Errors     []string          `json:"errors,omitempty"`
}

// SpringBootAnalysis is the Spring Boot shape of a project.
type SpringBootAnalysis struct {
	IsSpringBoot      bool              `json:"is_spring_boot_project"`
	Version           string            `json:"spring_boot_version,omitempty"`
	MainClass         string            `json:"main_class,omitempty"`
	ApplicationConfig ApplicationConfig `json:"application_config"`
	RestEndpoints     int               `json:"rest_endpoints"`
	AnnotationsFound  []string          `json:"spring_annotations_found"`
}

// Structure is the response of get_project_structure.
type Structure struct {
	ProjectName      string                    `json:"project_name"`
	RootPath         string                    `json:"root_path"`
	TotalSize        int64                     `json:"total_size"`
	TotalSizeHuman   string                    `json:"total_size_human"`
	TotalFiles       int                       `json:"total_files"`
	TotalDirectories int                       `json:"total_directories"`
	FileTypes        map[string]*FileTypeStats `json:"file_types"`
	Tree             *TreeNode                 `json:"directory_tree"`
	Java             *JavaAnalysis             `json:"java_analysis"`
	SpringBoot       *SpringBootAnalysis       `json:"spring_boot_analysis"`
	Build            *analysis.BuildInfo       `json:"build_system_analysis"`
}

// Structure describes the project at root. The tree stops at depth (the default depth
// when <= 0, at most MaxDepth); totals and file types always cover the whole project.
// Sizes are only reported when includeSizes is set.
func (s *Service) Structure(ctx context.Context, root string, depth int, includeSizes bool) (*Structure, error) {
	resolved, info, err := s.provider.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	if depth <= 0 {
		depth = s.defaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	st := &Structure{
		ProjectName: filepath.Base(resolved),
		RootPath:    s.provider.Display(resolved),
		FileTypes:   map[string]*FileTypeStats{},
	}
	if st.Tree, err = s.tree(ctx, root, ".", 0, depth, includeSizes, st); err != nil {
		return nil, err
	}
	if err := s.totals(ctx, root, includeSizes, st); err != nil {
		return nil, err
	}
	st.TotalSizeHuman = humanize.Bytes(uint64(st.TotalSize))

	sources, err := s.javaSources(ctx, root)
	if err != nil {
		return nil, err
	}
	st.Java = javaAnalysis(sources)
	st.Build = analysis.ReadBuild(s.provider, root)
	st.SpringBoot = s.springBootAnalysis(root, sources, st.Build)
	return st, nil
}

func (s *Service) tree(ctx context.Context, dir, rel string, level, depth int, includeSizes bool, st *Structure) (*TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Base(rel)
	if rel == "." {
		name = st.ProjectName
	}
	node := &TreeNode{Name: name, Path: rel, Type: NodeDirectory, Children: []*TreeNode{}}

	entries, err := s.provider.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	if level >= depth {
		node.Truncated = len(entries) > 0
		return node, nil
	}
	for _, e := range entries {
		childRel := path.Join(rel, e.Name())
		if e.IsDir() {
			child, err := s.tree(ctx, filepath.Join(dir, e.Name()), childRel, level+1, depth, includeSizes, st)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			continue
		}
		child := &TreeNode{Name: e.Name(), Path: childRel, Type: NodeFile}
		if includeSizes {
			size := e.Size()
			child.Size = &size
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// totals counts the files below root and the directories holding them. Ignored
// directories are not descended into.
func (s *Service) totals(ctx context.Context, root string, includeSizes bool, st *Structure) error {
	dirs := map[string]bool{}
	rootPath, err := s.provider.Resolve(root)
	if err != nil {
		return err
	}
	return s.provider.Walk(ctx, root, nil, func(p string, info os.FileInfo) error {
		st.TotalFiles++
		for d := filepath.Dir(p); d != rootPath && len(d) > len(rootPath); d = filepath.Dir(d) {
			if dirs[d] {
				break
			}
			dirs[d] = true
			st.TotalDirectories++
		}

		ext := strings.ToLower(filepath.Ext(p))
		stats, ok := st.FileTypes[ext]
		if !ok {
			stats = &FileTypeStats{}
			st.FileTypes[ext] = stats
		}
		stats.Count++
		if includeSizes {
			stats.TotalSize += info.Size()
			st.TotalSize += info.Size()
		}
		return nil
	})
}

type javaSource struct {
	rel     string
	text    string
	summary *extract.SourceSummary
}

func (s *Service) javaSources(ctx context.Context, root string) ([]javaSource, error) {
	rootPath, err := s.provider.Resolve(root)
	if err != nil {
		return nil, err
	}
	var out []javaSource
	err = s.provider.Walk(ctx, root, []string{"*.java"}, func(p string, _ os.FileInfo) error {
		text, err := s.provider.ReadText(p)
		if err != nil {
			// Unreadable or binary sources are skipped.
			return nil
		}
		rel, err := filepath.Rel(rootPath, p)
		if err != nil {
			return err
		}
		out = append(out, javaSource{rel: filepath.ToSlash(rel), text: text, summary: s.summarizer.Summarize(text)})
		return nil
	})
	return out, err
}

func isTestPath(rel string) bool {
	return strings.Contains("/"+rel, "/src/test/") || strings.HasSuffix(rel, "Test.java") || strings.HasSuffix(rel, "Tests.java")
}

func javaAnalysis(sources []javaSource) *JavaAnalysis {
	ja := &JavaAnalysis{
		TotalJavaFiles: len(sources),
		MainClasses:    []string{},
		TestClasses:    []string{},
		ConfigClasses:  []string{},
		SpringComponents: SpringComponents{
			Controllers:  []string{},
			Services:     []string{},
			Repositories: []string{},
			Components:   []string{},
		},
	}
	packages := map[string]bool{}
	for _, src := range sources {
		if pkg := src.summary.Package; pkg != "" && !packages[pkg] {
			packages[pkg] = true
			ja.Packages = append(ja.Packages, pkg)
		}
		if isTestPath(src.rel) {
			ja.TestClasses = append(ja.TestClasses, src.rel)
		} else {
			ja.MainClasses = append(ja.MainClasses, src.rel)
		}
		if len(src.summary.Components) == 0 {
			continue
		}
		switch src.summary.Components[0].Type {
		case extract.ComponentController:
			ja.SpringComponents.Controllers = append(ja.SpringComponents.Controllers, src.rel)
		case extract.ComponentService:
			ja.SpringComponents.Services = append(ja.SpringComponents.Services, src.rel)
		case extract.ComponentRepository:
			ja.SpringComponents.Repositories = append(ja.SpringComponents.Repositories, src.rel)
		case extract.ComponentComponent:
			ja.SpringComponents.Components = append(ja.SpringComponents.Components, src.rel)
		case extract.ComponentConfiguration:
			ja.ConfigClasses = append(ja.ConfigClasses, src.rel)
		}
	}
	if ja.Packages == nil {
		ja.Packages = []string{}
	}
	return ja
}

// springIndicators are the annotations reported as found in a project.
var springIndicators = []extract.Annotation{
	extract.AnnSpringBootApplication, extract.AnnRestController, extract.AnnController,
	extract.AnnService, extract.AnnRepository, extract.AnnComponent, extract.AnnAutowired,
	extract.AnnConfiguration,
}

// restMapping counts the mapping annotations, class level ones included.
var restMapping = regexp.MustCompile(`@(?:GetMapping|PostMapping|PutMapping|DeleteMapping|PatchMapping|RequestMapping)\b`)

func (s *Service) springBootAnalysis(root string, sources []javaSource, build *analysis.BuildInfo) *SpringBootAnalysis {
	sb := &SpringBootAnalysis{Version: build.SpringBootVersion, AnnotationsFound: []string{}}

	found := map[extract.Annotation]bool{}
	for _, src := range sources {
		if sb.MainClass == "" && extract.HasAnnotation(src.text, extract.AnnSpringBootApplication) {
			sb.MainClass = src.rel
			sb.IsSpringBoot = true
		}
		for _, a := range springIndicators {
			if extract.HasAnnotation(src.text, a) {
				found[a] = true
			}
		}
		sb.RestEndpoints += len(restMapping.FindAllStringIndex(src.text, -1))
	}
	for _, a := range springIndicators {
		if found[a] {
			sb.AnnotationsFound = append(sb.AnnotationsFound, a.String())
		}
	}

	resources := filepath.Join(root, "src", "main", "resources")
	for _, c := range []struct {
		name string
		kind extract.ConfigKind
		dst  *map[string]string
	}{
		{"application.properties", extract.ConfigProperties, &sb.ApplicationConfig.Properties},
		{"application.yml", extract.ConfigYAML, &sb.ApplicationConfig.YAML},
		{"application.yaml", extract.ConfigYAML, &sb.ApplicationConfig.YAML},
	} {
		data, err := s.provider.ReadBytes(filepath.Join(resources, c.name))
		if err != nil {
			continue
		}
		sb.IsSpringBoot = true
		parsed, err := configfile.Parse(c.kind, data)
		if err != nil {
			sb.ApplicationConfig.Errors = append(sb.ApplicationConfig.Errors, fmt.Sprintf("%s: %v", c.name, err))
			continue
		}
		if *c.dst == nil {
			*c.dst = parsed.Keys
		}
	}
	if sb.Version != "" {
		sb.IsSpringBoot = true
	}
	return sb
}
