package analysis

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/russross/blackfriday/v2"

	"github.com/mvp-joe/springctx/internal/configfile"
	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// Format is the output format of generate_docs.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat validates a caller supplied format; "" selects markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "md":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// SpringInfo describes the Spring role of a documented file.
type SpringInfo struct {
	IsComponent   bool                  `json:"is_spring_component"`
	ComponentType extract.ComponentType `json:"component_type,omitempty"`
	Annotations   []string              `json:"annotations"`
	Endpoints     []extract.Endpoint    `json:"endpoints"`
}

// FileDoc documents one Java file.
type FileDoc struct {
	File         string                `json:"file"`
	Package      string                `json:"package"`
	Imports      []string              `json:"imports"`
	Declarations []extract.Declaration `json:"classes"`
	Spring       SpringInfo            `json:"spring_info"`
	Javadoc      extract.Javadoc       `json:"javadoc"`
	Binary       bool                  `json:"binary,omitempty"`
}

// ComponentDoc is a class listed in project documentation.
type ComponentDoc struct {
	Class       string   `json:"class"`
	Package     string   `json:"package"`
	File        string   `json:"file"`
	Annotations []string `json:"annotations"`
}

// APIEndpoint is a REST endpoint with its full path (controller base path included).
type APIEndpoint struct {
	Controller  string           `json:"controller"`
	HTTPMethod  extract.HTTPVerb `json:"http_method"`
	Path        string           `json:"path"`
	MethodName  string           `json:"method_name"`
	ReturnType  string           `json:"return_type"`
	Description string           `json:"description,omitempty"`
}

// ConfigDoc lists the keys of one application config file.
type ConfigDoc struct {
	File  string             `json:"file"`
	Type  extract.ConfigKind `json:"type"`
	Keys  []string           `json:"keys"`
	Error string             `json:"error,omitempty"`
}

// ProjectOverview is the shape of a documented project.
type ProjectOverview struct {
	BuildSystem    string   `json:"build_system"`
	IsMaven        bool     `json:"is_maven"`
	IsGradle       bool     `json:"is_gradle"`
	HasMainClass   bool     `json:"has_main_class"`
	MainClass      string   `json:"main_class,omitempty"`
	Packages       []string `json:"packages"`
	TotalJavaFiles int      `json:"total_java_files"`
	TotalTestFiles int      `json:"total_test_files"`
}

// ProjectDoc documents a project directory.
type ProjectDoc struct {
	Name          string          `json:"project_name"`
	Path          string          `json:"project_path"`
	Structure     ProjectOverview `json:"structure"`
	Configuration []ConfigDoc     `json:"configuration"`
	Controllers   []ComponentDoc  `json:"controllers"`
	Services      []ComponentDoc  `json:"services"`
	Repositories  []ComponentDoc  `json:"repositories"`
	Entities      []ComponentDoc  `json:"entities"`
	API           []APIEndpoint   `json:"api_documentation"`
}

// Documentation is the response of generate_docs. Content holds the rendered markdown
// or html; the json format carries the structured documents only.
type Documentation struct {
	Target      string      `json:"target"`
	Format      Format      `json:"format"`
	GeneratedAt time.Time   `json:"generated_at"`
	File        *FileDoc    `json:"file_documentation,omitempty"`
	Project     *ProjectDoc `json:"project_documentation,omitempty"`
	Content     string      `json:"content,omitempty"`
}

// GenerateDocs documents a Java file or a project directory.
func (a *Analyzer) GenerateDocs(ctx context.Context, target string, format Format) (*Documentation, error) {
	if format == "" {
		format = FormatMarkdown
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	_, info, err := a.provider.Stat(target)
	if err != nil {
		return nil, err
	}

	doc := &Documentation{Target: target, Format: format, GeneratedAt: a.now().UTC()}
	var markdown string
	if info.IsDir() {
		if doc.Project, err = a.projectDoc(ctx, target); err != nil {
			return nil, err
		}
		markdown = projectMarkdown(doc.Project, doc.GeneratedAt)
	} else {
		if doc.File, err = a.fileDoc(ctx, target); err != nil {
			return nil, err
		}
		markdown = fileMarkdown(doc.File)
	}

	switch format {
	case FormatMarkdown:
		doc.Content = markdown
	case FormatHTML:
		doc.Content = string(blackfriday.Run([]byte(markdown)))
	}
	return doc, nil
}

func (a *Analyzer) fileDoc(ctx context.Context, path string) (*FileDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if extract.DetectLanguage(path) != extract.LangJava {
		return nil, fmt.Errorf("%w: %s", ErrNotJava, path)
	}
	text, err := a.provider.ReadText(path)
	if errors.Is(err, files.ErrBinaryContent) {
		return &FileDoc{File: path, Package: "default", Imports: []string{}, Declarations: []extract.Declaration{}, Binary: true}, nil
	}
	if err != nil {
		return nil, err
	}
	summary := a.summarizer.Summarize(text)

	doc := &FileDoc{
		File:         path,
		Package:      summary.Package,
		Imports:      summary.Imports,
		Declarations: summary.Declarations,
		Spring: SpringInfo{
			Annotations: summary.Annotations,
			Endpoints:   summary.Endpoints,
		},
		Javadoc: summary.Javadoc,
	}
	if doc.Package == "" {
		doc.Package = "default"
	}
	if len(summary.Components) > 0 {
		doc.Spring.IsComponent = true
		doc.Spring.ComponentType = summary.Components[0].Type
	}
	return doc, nil
}

func (a *Analyzer) projectDoc(ctx context.Context, dir string) (*ProjectDoc, error) {
	root, err := a.provider.Resolve(dir)
	if err != nil {
		return nil, err
	}
	sources, err := a.collect(ctx, dir, sourcePatterns())
	if err != nil {
		return nil, err
	}
	layout, err := a.provider.DetectLayout(ctx, dir)
	if err != nil {
		return nil, err
	}

	doc := &ProjectDoc{
		Name: filepath.Base(root),
		Path: dir,
		Structure: ProjectOverview{
			BuildSystem: ReadBuild(a.provider, dir).System,
			IsMaven:     layout.HasMaven,
			IsGradle:    layout.HasGradle,
			MainClass:   layout.MainClass,
		},
		Configuration: []ConfigDoc{},
		Controllers:   []ComponentDoc{},
		Services:      []ComponentDoc{},
		Repositories:  []ComponentDoc{},
		Entities:      []ComponentDoc{},
		API:           []APIEndpoint{},
	}
	doc.Structure.HasMainClass = doc.Structure.MainClass != ""

	packages := newStringSet()
	for _, f := range sources {
		if f.lang.IsConfig() && isApplicationConfig(path.Base(f.rel)) && !f.binary {
			doc.Configuration = append(doc.Configuration, configDoc(f))
			continue
		}
		if f.summary == nil {
			continue
		}
		doc.Structure.TotalJavaFiles++
		if isTestSource(f.rel) {
			doc.Structure.TotalTestFiles++
		}
		packages.add(f.summary.Package)
		doc.addComponents(f)
	}
	doc.Structure.Packages = packages.sorted()
	return doc, nil
}

func (doc *ProjectDoc) addComponents(f *sourceFile) {
	s := f.summary
	for _, c := range s.Components {
		entry := ComponentDoc{Class: c.Class, Package: s.Package, File: f.rel, Annotations: c.Annotations}
		switch c.Type {
		case extract.ComponentController:
			doc.Controllers = append(doc.Controllers, entry)
		case extract.ComponentService:
			doc.Services = append(doc.Services, entry)
		case extract.ComponentRepository:
			doc.Repositories = append(doc.Repositories, entry)
		}
	}
	extract.Walk(s.Declarations, func(d extract.Declaration) {
		for _, ann := range d.Annotations {
			if ann == extract.AnnEntity.String() || ann == extract.AnnTable.String() {
				doc.Entities = append(doc.Entities, ComponentDoc{Class: d.Name, Package: s.Package, File: f.rel, Annotations: d.Annotations})
				return
			}
		}
	})

	descriptions := map[string]string{}
	for _, m := range s.Javadoc.Methods {
		if _, ok := descriptions[m.Target]; !ok {
			descriptions[m.Target] = m.Description
		}
	}
	for _, e := range s.Endpoints {
		doc.API = append(doc.API, APIEndpoint{
			Controller:  e.Controller,
			HTTPMethod:  e.Verb,
			Path:        joinRoute(e.BasePath, e.Path),
			MethodName:  e.Method,
			ReturnType:  e.ReturnType,
			Description: descriptions[e.Method],
		})
	}
}

func configDoc(f *sourceFile) ConfigDoc {
	kind := f.lang.ConfigKind()
	cd := ConfigDoc{File: f.rel, Type: kind, Keys: []string{}}
	parsed, err := configfile.Parse(kind, []byte(f.text))
	if err != nil {
		cd.Error = err.Error()
		return cd
	}
	cd.Keys = parsed.SortedKeys()
	return cd
}

func isTestSource(rel string) bool {
	base := path.Base(rel)
	return strings.Contains("/"+rel, "/src/test/") ||
		strings.HasSuffix(base, "Test.java") ||
		strings.HasSuffix(base, "Tests.java")
}

// joinRoute joins a controller base path and a method path with a single slash.
func joinRoute(base, route string) string {
	base = strings.TrimRight(base, "/")
	route = strings.TrimLeft(route, "/")
	switch {
	case route == "" && base == "":
		return "/"
	case route == "":
		return ensureLeadingSlash(base)
	}
	return ensureLeadingSlash(base + "/" + route)
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
