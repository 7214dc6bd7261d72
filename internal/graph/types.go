package graph

// NodeKind represents the type of a graph node.
type NodeKind string

const (
	NodePackage NodeKind = "package"
)

// Node is a Java package of the analyzed sources.
type Node struct {
	ID    string   `json:"id"`    // Dotted package name; "" is the default package
	Kind  NodeKind `json:"kind"`  // Type of node
	Files []string `json:"files"` // Source files declaring the package
}

// EdgeType represents the type of relationship between nodes.
type EdgeType string

const (
	EdgeImports EdgeType = "imports" // Package imports package
)

// Edge is a dependency of one package on another, found in File.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`
	File string   `json:"file"`
}

// GraphData is the package dependency graph of a source tree.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
