package analysis

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/springctx/internal/configfile"
	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// JavaStructure is the structure of a Java source file.
type JavaStructure struct {
	*extract.SourceSummary
	LinesOfCode int `json:"lines_of_code"`
}

// ConfigStructure is the structure of a configuration or build file. Summary is the
// line-oriented overview; Keys, Beans, POM and Gradle come from the format-aware parsers
// and are absent when parsing failed (see ParseError).
type ConfigStructure struct {
	Language    extract.Language        `json:"language"`
	LinesOfCode int                     `json:"lines_of_code"`
	Summary     *extract.ConfigSummary  `json:"summary,omitempty"`
	Keys        map[string]string       `json:"keys,omitempty"`
	Beans       []configfile.Bean       `json:"beans,omitempty"`
	POM         *configfile.POM         `json:"pom,omitempty"`
	Gradle      *configfile.GradleBuild `json:"gradle,omitempty"`
	ParseError  string                  `json:"parse_error,omitempty"`
}

// GenericStructure describes files of other languages.
type GenericStructure struct {
	Language    extract.Language `json:"language"`
	LinesOfCode int              `json:"lines_of_code"`
}

// FileDependencies sorts the imports of a Java file. Internal imports share the first two
// package segments with the file itself.
type FileDependencies struct {
	Imports  []string `json:"imports"`
	Spring   []string `json:"spring_imports"`
	JDK      []string `json:"java_imports"`
	Internal []string `json:"internal_imports"`
	External []string `json:"external_imports"`
}

func (a *Analyzer) analyzeFile(path string, mode Mode) (*Report, error) {
	lang := extract.DetectLanguage(path)
	report := &Report{Path: path, Mode: mode, Language: lang}

	text, err := a.provider.ReadText(path)
	switch {
	case errors.Is(err, files.ErrBinaryContent):
		report.Binary = true
		return report, nil
	case err != nil:
		return nil, err
	}

	var summary *extract.SourceSummary
	if lang == extract.LangJava {
		summary = a.summarizer.Summarize(text)
	}

	if mode.includes(ModeStructure) {
		report.Structure = a.fileStructure(path, text, lang, summary)
	}
	if mode.includes(ModeDependencies) {
		report.Dependencies = fileDependencies(path, text, summary)
	}
	if mode.includes(ModeQuality) {
		report.Quality = extract.Quality(text, lang, a.longLine)
	}
	return report, nil
}

func (a *Analyzer) fileStructure(path, text string, lang extract.Language, summary *extract.SourceSummary) interface{} {
	lines := countLines(text)
	switch {
	case summary != nil:
		return &JavaStructure{SourceSummary: summary, LinesOfCode: lines}
	case lang == extract.LangGradle:
		return &ConfigStructure{Language: lang, LinesOfCode: lines, Gradle: configfile.ParseGradle(text)}
	case !lang.IsConfig():
		return &GenericStructure{Language: lang, LinesOfCode: lines}
	}

	cs := &ConfigStructure{Language: lang, LinesOfCode: lines}
	configSummary := extract.SummarizeConfig(text, lang.ConfigKind(), a.interestingKeys)
	cs.Summary = &configSummary

	if filepath.Base(path) == "pom.xml" {
		pom, err := configfile.ParsePOM([]byte(text))
		if err != nil {
			cs.ParseError = err.Error()
		}
		cs.POM = pom
		return cs
	}
	parsed, err := configfile.Parse(lang.ConfigKind(), []byte(text))
	if err != nil {
		cs.ParseError = err.Error()
		return cs
	}
	cs.Keys = parsed.Keys
	cs.Beans = parsed.Beans
	return cs
}

// fileDependencies reports imports for Java files and declared libraries for build files.
// Other files have no dependencies.
func fileDependencies(path, text string, summary *extract.SourceSummary) interface{} {
	if summary != nil {
		return classifyImports(summary.Package, summary.Imports)
	}
	b := &BuildInfo{Dependencies: []Dependency{}, Plugins: []string{}, Profiles: []string{}}
	switch name := filepath.Base(path); {
	case name == "pom.xml":
		pom, err := configfile.ParsePOM([]byte(text))
		if err != nil {
			return nil
		}
		b.System, b.Files = BuildMaven, []string{name}
		b.addPOM(pom)
	case strings.HasPrefix(name, "build.gradle"):
		b.System, b.Files = BuildGradle, []string{name}
		b.addGradle(configfile.ParseGradle(text))
	default:
		return nil
	}
	return b
}

func classifyImports(pkg string, imports []string) *FileDependencies {
	deps := &FileDependencies{
		Imports:  imports,
		Spring:   []string{},
		JDK:      []string{},
		Internal: []string{},
		External: []string{},
	}
	root := projectRoot(pkg)
	for _, imp := range imports {
		switch {
		case strings.HasPrefix(imp, "org.springframework."):
			deps.Spring = append(deps.Spring, imp)
		case strings.HasPrefix(imp, "java.") || strings.HasPrefix(imp, "javax.") || strings.HasPrefix(imp, "jakarta."):
			deps.JDK = append(deps.JDK, imp)
		case root != "" && (imp == root || strings.HasPrefix(imp, root+".")):
			deps.Internal = append(deps.Internal, imp)
		default:
			deps.External = append(deps.External, imp)
		}
	}
	return deps
}

// projectRoot returns the first two segments of a package name.
func projectRoot(pkg string) string {
	parts := strings.SplitN(pkg, ".", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ".")
}
