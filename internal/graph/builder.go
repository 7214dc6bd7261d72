package graph

import (
	"sort"
	"strings"
)

type sourceFile struct {
	path    string
	pkg     string
	imports []string
}

// Builder collects the package and imports of each source file and links packages
// that import one another.
type Builder struct {
	files []sourceFile
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddFile records one source file.
func (b *Builder) AddFile(path, pkg string, imports []string) {
	b.files = append(b.files, sourceFile{path: path, pkg: pkg, imports: imports})
}

// Build produces the graph. An import only becomes an edge when it names a package
// declared by one of the added files (or a type or member inside one); imports of
// libraries and the JDK are not part of the graph. Self edges are dropped and each
// package pair appears once, attributed to the first file importing it.
func (b *Builder) Build() *GraphData {
	nodes := make(map[string]*Node)
	for _, f := range b.files {
		n, ok := nodes[f.pkg]
		if !ok {
			n = &Node{ID: f.pkg, Kind: NodePackage}
			nodes[f.pkg] = n
		}
		n.Files = append(n.Files, f.path)
	}

	data := &GraphData{Nodes: []Node{}, Edges: []Edge{}}
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := nodes[id]
		sort.Strings(n.Files)
		data.Nodes = append(data.Nodes, *n)
	}

	seen := make(map[[2]string]bool)
	for _, f := range b.files {
		for _, imp := range f.imports {
			target, ok := resolve(imp, nodes)
			if !ok || target == f.pkg {
				continue
			}
			key := [2]string{f.pkg, target}
			if seen[key] {
				continue
			}
			seen[key] = true
			data.Edges = append(data.Edges, Edge{From: f.pkg, To: target, Type: EdgeImports, File: f.path})
		}
	}
	sort.SliceStable(data.Edges, func(i, j int) bool {
		if data.Edges[i].From != data.Edges[j].From {
			return data.Edges[i].From < data.Edges[j].From
		}
		return data.Edges[i].To < data.Edges[j].To
	})
	return data
}

// resolve finds the longest known package that prefixes an import path. Class imports,
// nested classes, static member imports and wildcards all resolve this way.
func resolve(imp string, nodes map[string]*Node) (string, bool) {
	name := strings.TrimSuffix(imp, ".*")
	for name != "" {
		if _, ok := nodes[name]; ok {
			return name, true
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return "", false
}
