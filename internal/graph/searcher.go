package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// Query limits
const (
	DefaultDepth = 1
	MaxDepth     = 10
)

// QueryOperation represents the type of graph query to perform.
type QueryOperation string

const (
	OperationDependencies QueryOperation = "dependencies"
	OperationDependents   QueryOperation = "dependents"
)

// Result is a package reached by a query at the given depth.
type Result struct {
	Package string `json:"package"`
	Depth   int    `json:"depth"`
}

// Searcher answers dependency questions about a GraphData.
type Searcher struct {
	data         *GraphData
	graph        graph.Graph[string, string]
	dependencies map[string][]string
	dependents   map[string][]string
}

// NewSearcher indexes data.
func NewSearcher(data *GraphData) (*Searcher, error) {
	s := &Searcher{
		data:         data,
		graph:        graph.New(graph.StringHash, graph.Directed()),
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}

	for _, n := range data.Nodes {
		if err := s.graph.AddVertex(n.ID); err != nil {
			return nil, fmt.Errorf("failed to add package %q: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := s.graph.AddEdge(e.From, e.To); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", e.From, e.To, err)
		}
		s.dependencies[e.From] = append(s.dependencies[e.From], e.To)
		s.dependents[e.To] = append(s.dependents[e.To], e.From)
	}
	return s, nil
}

// Data returns the indexed graph.
func (s *Searcher) Data() *GraphData {
	return s.data
}

// Query walks dependencies or dependents of target up to depth (clamped to MaxDepth).
// Each package is reported once, at the shallowest depth it was reached.
func (s *Searcher) Query(op QueryOperation, target string, depth int) ([]Result, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	var index map[string][]string
	switch op {
	case OperationDependencies:
		index = s.dependencies
	case OperationDependents:
		index = s.dependents
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}

	visited := map[string]int{target: 0}
	results := []Result{}
	frontier := []string{target}
	for d := 1; d <= depth && len(frontier) > 0; d++ {
		var next []string
		for _, id := range frontier {
			for _, to := range index[id] {
				if _, seen := visited[to]; seen {
					continue
				}
				visited[to] = d
				results = append(results, Result{Package: to, Depth: d})
				next = append(next, to)
			}
		}
		frontier = next
	}
	return results, nil
}

// Cycles returns the groups of packages that depend on each other, each sorted, in
// order of their first package.
func (s *Searcher) Cycles() ([][]string, error) {
	components, err := graph.StronglyConnectedComponents(s.graph)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cycles: %w", err)
	}

	cycles := [][]string{}
	for _, c := range components {
		if len(c) < 2 {
			continue
		}
		sort.Strings(c)
		cycles = append(cycles, c)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles, nil
}

// Order lists packages so that every package comes after the packages it imports.
// It fails when the graph has cycles.
func (s *Searcher) Order() ([]string, error) {
	order, err := graph.StableTopologicalSort(s.graph, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
