// Package parsers provides syntax-tree backed declaration parsers that plug into
// extract.Extractor in place of the regular expression backend.
package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walkTree walks the tree depth-first. Returning false from visitor skips the children
// of the visited node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByType finds the first direct child with the given kind.
func findChildByType(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// namedChildren returns the named direct children of node.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		out = append(out, node.NamedChild(uint(i)))
	}
	return out
}

// nodeText returns the source text covered by node with runs of whitespace collapsed.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return strings.Join(strings.Fields(string(source[node.StartByte():node.EndByte()])), " ")
}
