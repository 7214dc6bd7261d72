package analysis

import (
	"context"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
	"github.com/mvp-joe/springctx/internal/graph"
)

// DirectoryStructure summarizes the files of a directory tree.
type DirectoryStructure struct {
	TotalFiles  int             `json:"total_files"`
	FilesByType map[string]int  `json:"files_by_type"`
	TotalLines  int             `json:"total_lines_of_code"`
	Packages    []string        `json:"packages"`
	Spring      SpringStructure `json:"spring_boot_structure"`
}

// SpringStructure describes the Spring Boot shape of a directory tree. The package lists
// name the packages declaring at least one component of each stereotype.
type SpringStructure struct {
	HasMainClass             bool          `json:"has_main_class"`
	MainClass                string        `json:"main_class,omitempty"`
	HasApplicationProperties bool          `json:"has_application_properties"`
	HasTestDirectory         bool          `json:"has_test_directory"`
	ControllerPackages       []string      `json:"controller_packages"`
	ServicePackages          []string      `json:"service_packages"`
	RepositoryPackages       []string      `json:"repository_packages"`
	ConfigurationPackages    []string      `json:"configuration_packages"`
	Layout                   *files.Layout `json:"layout"`
}

// ProjectDependencies lists what a directory tree depends on.
type ProjectDependencies struct {
	BuildSystem  string        `json:"build_system"`
	Maven        []string      `json:"maven_dependencies"`
	Gradle       []string      `json:"gradle_dependencies"`
	Starters     []string      `json:"spring_boot_starters"`
	Database     []string      `json:"database_dependencies"`
	BuildErrors  []string      `json:"build_errors,omitempty"`
	PackageGraph *PackageGraph `json:"package_graph"`
}

// PackageGraph is the import graph between the packages of the analyzed sources. Order
// is only present when the graph has no cycles.
type PackageGraph struct {
	*graph.GraphData
	Cycles [][]string `json:"cycles"`
	Order  []string   `json:"order,omitempty"`
}

// LanguageStats counts files and lines of one language.
type LanguageStats struct {
	Files int `json:"files"`
	Lines int `json:"lines"`
}

// SpringCounts counts declarations per Spring stereotype.
type SpringCounts struct {
	Controllers    int `json:"total_controllers"`
	Services       int `json:"total_services"`
	Repositories   int `json:"total_repositories"`
	Components     int `json:"total_components"`
	Configurations int `json:"total_config_classes"`
}

// SyntaxIssue is a Java file whose braces or parentheses do not balance.
type SyntaxIssue struct {
	File   string   `json:"file"`
	Errors []string `json:"errors"`
}

// DirectoryQuality aggregates quality metrics over a directory tree.
type DirectoryQuality struct {
	TotalFiles   int                                `json:"total_files"`
	TotalLines   int                                `json:"total_lines"`
	AverageLines float64                            `json:"avg_lines_per_file"`
	LongLines    int                                `json:"long_lines"`
	BinaryFiles  int                                `json:"binary_files,omitempty"`
	Languages    map[extract.Language]LanguageStats `json:"language_breakdown"`
	Spring       SpringCounts                       `json:"spring_specific"`
	SyntaxIssues []SyntaxIssue                      `json:"syntax_issues"`
}

func (a *Analyzer) analyzeDirectory(ctx context.Context, dir string, mode Mode) (*Report, error) {
	sources, err := a.collect(ctx, dir, sourcePatterns())
	if err != nil {
		return nil, err
	}
	report := &Report{Path: dir, IsDirectory: true, Mode: mode}

	if mode.includes(ModeStructure) {
		structure, err := a.directoryStructure(ctx, dir, sources)
		if err != nil {
			return nil, err
		}
		report.Structure = structure
	}
	if mode.includes(ModeDependencies) {
		deps, err := a.projectDependencies(dir, sources)
		if err != nil {
			return nil, err
		}
		report.Dependencies = deps
	}
	if mode.includes(ModeQuality) {
		report.Quality = a.directoryQuality(sources)
	}
	return report, nil
}

func (a *Analyzer) directoryStructure(ctx context.Context, dir string, sources []*sourceFile) (*DirectoryStructure, error) {
	layout, err := a.provider.DetectLayout(ctx, dir)
	if err != nil {
		return nil, err
	}

	s := &DirectoryStructure{
		TotalFiles:  len(sources),
		FilesByType: map[string]int{},
		Spring: SpringStructure{
			MainClass:        layout.MainClass,
			HasTestDirectory: layout.HasTestSources,
			Layout:           layout,
		},
	}
	packages := newStringSet()
	byType := map[extract.ComponentType]*stringSet{}
	for _, f := range sources {
		s.FilesByType[path.Ext(f.rel)]++
		s.TotalLines += f.lines
		if strings.Contains("/"+f.rel, "/src/test/") {
			s.Spring.HasTestDirectory = true
		}
		if isApplicationConfig(path.Base(f.rel)) {
			s.Spring.HasApplicationProperties = true
		}
		if f.summary == nil {
			continue
		}
		packages.add(f.summary.Package)
		for _, c := range f.summary.Components {
			if byType[c.Type] == nil {
				byType[c.Type] = newStringSet()
			}
			byType[c.Type].add(f.summary.Package)
		}
		if s.Spring.MainClass == "" && extract.HasAnnotation(f.text, extract.AnnSpringBootApplication) {
			s.Spring.MainClass = strings.TrimSuffix(f.rel, ".java")
		}
	}
	s.Spring.HasMainClass = s.Spring.MainClass != ""
	s.Packages = packages.sorted()
	s.Spring.ControllerPackages = byType[extract.ComponentController].sorted()
	s.Spring.ServicePackages = byType[extract.ComponentService].sorted()
	s.Spring.RepositoryPackages = byType[extract.ComponentRepository].sorted()
	s.Spring.ConfigurationPackages = byType[extract.ComponentConfiguration].sorted()
	return s, nil
}

func isApplicationConfig(name string) bool {
	if !strings.HasPrefix(name, "application") && !strings.HasPrefix(name, "bootstrap") {
		return false
	}
	switch path.Ext(name) {
	case ".properties", ".yml", ".yaml":
		return true
	}
	return false
}

func (a *Analyzer) projectDependencies(dir string, sources []*sourceFile) (*ProjectDependencies, error) {
	build := ReadBuild(a.provider, dir)
	deps := &ProjectDependencies{
		BuildSystem: build.System,
		Maven:       build.Coordinates(BuildMaven),
		Gradle:      build.Coordinates(BuildGradle),
		Starters:    []string{},
		Database:    []string{},
		BuildErrors: build.Errors,
	}
	for _, d := range build.Dependencies {
		if strings.Contains(d.ArtifactID, "spring-boot-starter") {
			deps.Starters = append(deps.Starters, d.ArtifactID)
		}
		if IsDatabaseDependency(d.Coordinate()) {
			deps.Database = append(deps.Database, d.Coordinate())
		}
	}

	pg, err := packageGraph(sources)
	if err != nil {
		return nil, err
	}
	deps.PackageGraph = pg
	return deps, nil
}

func packageGraph(sources []*sourceFile) (*PackageGraph, error) {
	b := graph.NewBuilder()
	for _, f := range sources {
		if f.summary != nil {
			b.AddFile(f.rel, f.summary.Package, f.summary.Imports)
		}
	}
	searcher, err := graph.NewSearcher(b.Build())
	if err != nil {
		return nil, err
	}
	cycles, err := searcher.Cycles()
	if err != nil {
		return nil, err
	}
	pg := &PackageGraph{GraphData: searcher.Data(), Cycles: cycles}
	if len(cycles) == 0 {
		if pg.Order, err = searcher.Order(); err != nil {
			return nil, err
		}
	}
	return pg, nil
}

func (a *Analyzer) directoryQuality(sources []*sourceFile) *DirectoryQuality {
	q := &DirectoryQuality{
		Languages:    map[extract.Language]LanguageStats{},
		SyntaxIssues: []SyntaxIssue{},
	}
	for _, f := range sources {
		if f.binary {
			q.BinaryFiles++
			continue
		}
		q.TotalFiles++
		q.TotalLines += f.lines

		stats := q.Languages[f.lang]
		stats.Files++
		stats.Lines += f.lines
		q.Languages[f.lang] = stats

		metrics := extract.Quality(f.text, f.lang, a.longLine)
		q.LongLines += metrics.LongLines
		if metrics.Syntax != nil && !metrics.Syntax.Valid {
			q.SyntaxIssues = append(q.SyntaxIssues, SyntaxIssue{File: f.rel, Errors: metrics.Syntax.Errors})
		}

		if f.summary == nil {
			continue
		}
		for _, c := range f.summary.Components {
			switch c.Type {
			case extract.ComponentController:
				q.Spring.Controllers++
			case extract.ComponentService:
				q.Spring.Services++
			case extract.ComponentRepository:
				q.Spring.Repositories++
			case extract.ComponentComponent:
				q.Spring.Components++
			case extract.ComponentConfiguration:
				q.Spring.Configurations++
			}
		}
	}
	if q.TotalFiles > 0 {
		q.AverageLines = math.Round(float64(q.TotalLines)/float64(q.TotalFiles)*100) / 100
	}
	return q
}

type stringSet struct {
	seen map[string]bool
}

func newStringSet() *stringSet {
	return &stringSet{seen: map[string]bool{}}
}

func (s *stringSet) add(v string) {
	s.seen[v] = true
}

// sorted returns the members in order; a nil set yields an empty slice.
func (s *stringSet) sorted() []string {
	out := []string{}
	if s == nil {
		return out
	}
	for v := range s.seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
