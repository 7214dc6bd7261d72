package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/mvp-joe/springctx/internal/extract"
)

type mdWriter struct {
	strings.Builder
}

func (w *mdWriter) heading(level int, format string, args ...interface{}) {
	w.WriteString(strings.Repeat("#", level))
	w.WriteByte(' ')
	fmt.Fprintf(w, format, args...)
	w.WriteString("\n\n")
}

func (w *mdWriter) line(format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
	w.WriteByte('\n')
}

func (w *mdWriter) para(format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
	w.WriteString("\n\n")
}

func (w *mdWriter) bullets(items []string, format string) {
	if len(items) == 0 {
		return
	}
	for _, item := range items {
		w.line("- "+format, item)
	}
	w.WriteByte('\n')
}

func fileMarkdown(doc *FileDoc) string {
	var w mdWriter

	classDocs := map[string]extract.JavadocEntry{}
	for _, e := range doc.Javadoc.Classes {
		classDocs[e.Target] = e
	}
	methodDocs := map[string]extract.JavadocEntry{}
	for _, e := range doc.Javadoc.Methods {
		if _, ok := methodDocs[e.Target]; !ok {
			methodDocs[e.Target] = e
		}
	}

	extract.Walk(doc.Declarations, func(d extract.Declaration) {
		w.heading(1, "%s", d.Name)
		w.para("**Package:** `%s`", doc.Package)
		w.para("**Kind:** %s", d.Kind)
		if d.Component != "" {
			w.para("**Spring Component:** %s", d.Component)
		}
		if e, ok := classDocs[d.Name]; ok && e.Description != "" {
			w.para("%s", e.Description)
		}
		if len(d.Annotations) > 0 {
			w.heading(2, "Annotations")
			w.bullets(d.Annotations, "`%s`")
		}
		if d.Extends != "" {
			w.heading(2, "Extends")
			w.para("`%s`", d.Extends)
		}
		if len(d.Implements) > 0 {
			w.heading(2, "Implements")
			w.bullets(d.Implements, "`%s`")
		}
		if len(d.Fields) > 0 {
			w.heading(2, "Fields")
			for _, f := range d.Fields {
				w.line("- `%s %s`", f.Type, f.Name)
			}
			w.WriteByte('\n')
		}
		if len(d.Constructors)+len(d.Methods) > 0 {
			w.heading(2, "Methods")
			for _, m := range d.Constructors {
				w.heading(3, "`%s`", signature(m))
			}
			for _, m := range d.Methods {
				w.heading(3, "`%s`", signature(m))
				if e, ok := methodDocs[m.Name]; ok {
					methodJavadoc(&w, e)
				}
			}
		}
	})

	if len(doc.Spring.Endpoints) > 0 {
		w.heading(2, "Endpoints")
		w.line("| Method | Path | Handler | Returns |")
		w.line("|---|---|---|---|")
		for _, e := range doc.Spring.Endpoints {
			w.line("| %s | `%s` | `%s` | `%s` |", e.Verb, joinRoute(e.BasePath, e.Path), e.Method, e.ReturnType)
		}
		w.WriteByte('\n')
	}
	return w.String()
}

func methodJavadoc(w *mdWriter, e extract.JavadocEntry) {
	if e.Description != "" {
		w.para("%s", e.Description)
	}
	if len(e.Params) > 0 {
		w.para("**Parameters:**")
		for _, p := range e.Params {
			w.line("- `%s`: %s", p.Name, p.Description)
		}
		w.WriteByte('\n')
	}
	if e.Returns != "" {
		w.para("**Returns:** %s", e.Returns)
	}
	if len(e.Throws) > 0 {
		w.para("**Throws:**")
		for _, t := range e.Throws {
			w.line("- `%s`: %s", t.Exception, t.Description)
		}
		w.WriteByte('\n')
	}
}

func signature(m extract.Method) string {
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, p.Type+" "+p.Name)
	}
	sig := m.Name + "(" + strings.Join(params, ", ") + ")"
	if m.ReturnType != "" {
		sig = m.ReturnType + " " + sig
	}
	return sig
}

func projectMarkdown(doc *ProjectDoc, generated time.Time) string {
	var w mdWriter
	w.heading(1, "%s API Documentation", doc.Name)
	w.para("*Generated on %s*", generated.Format("2006-01-02 15:04:05 MST"))

	w.heading(2, "Project Overview")
	w.line("- **Build System:** %s", doc.Structure.BuildSystem)
	if doc.Structure.MainClass != "" {
		w.line("- **Main Class:** `%s`", doc.Structure.MainClass)
	}
	w.line("- **Java Files:** %d", doc.Structure.TotalJavaFiles)
	w.line("- **Test Files:** %d", doc.Structure.TotalTestFiles)
	w.line("- **Packages:** %d", len(doc.Structure.Packages))
	w.WriteByte('\n')

	if len(doc.API) > 0 {
		w.heading(2, "API Endpoints")
		for _, e := range doc.API {
			w.heading(3, "%s %s", e.HTTPMethod, e.Path)
			w.line("- **Controller:** `%s`", e.Controller)
			w.line("- **Handler:** `%s` returns `%s`", e.MethodName, e.ReturnType)
			w.WriteByte('\n')
			if e.Description != "" {
				w.para("%s", e.Description)
			}
		}
	}

	for _, section := range []struct {
		title   string
		entries []ComponentDoc
	}{
		{"Controllers", doc.Controllers},
		{"Services", doc.Services},
		{"Repositories", doc.Repositories},
		{"Entities", doc.Entities},
	} {
		if len(section.entries) == 0 {
			continue
		}
		w.heading(2, "%s", section.title)
		for _, c := range section.entries {
			w.line("- `%s` (`%s`)", c.Class, c.Package)
		}
		w.WriteByte('\n')
	}

	if len(doc.Configuration) > 0 {
		w.heading(2, "Configuration")
		for _, c := range doc.Configuration {
			w.heading(3, "%s", c.File)
			w.bullets(c.Keys, "`%s`")
		}
	}
	return w.String()
}
