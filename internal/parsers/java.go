package parsers

import (
	"github.com/mvp-joe/springctx/internal/extract"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

var declarationKinds = map[string]extract.Kind{
	"class_declaration":           extract.KindClass,
	"interface_declaration":       extract.KindInterface,
	"enum_declaration":            extract.KindEnum,
	"annotation_type_declaration": extract.KindAnnotation,
}

// JavaParser builds declarations from a tree-sitter-java syntax tree. It implements
// extract.DeclarationParser and produces the same shapes as extract.RegexParser, but is
// not affected by the regex backend's blind spots (package-private constructors,
// multi-declarator fields, generic parameters).
type JavaParser struct {
	language *sitter.Language
}

// NewJavaParser creates a Java parser.
func NewJavaParser() *JavaParser {
	return &JavaParser{language: sitter.NewLanguage(java.Language())}
}

// Name implements extract.DeclarationParser.
func (p *JavaParser) Name() string { return "treesitter" }

// Declarations implements extract.DeclarationParser. Source that tree-sitter cannot
// parse at all yields an empty list; partially broken source yields what the error
// tolerant tree still contains.
func (p *JavaParser) Declarations(text string) []extract.Declaration {
	source := []byte(text)

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return []extract.Declaration{}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return []extract.Declaration{}
	}
	defer tree.Close()

	return p.typesIn(tree.RootNode(), source)
}

// typesIn collects the outermost type declarations below node. Each declaration collects
// its own nested types.
func (p *JavaParser) typesIn(node *sitter.Node, source []byte) []extract.Declaration {
	decls := []extract.Declaration{}
	for _, child := range namedChildren(node) {
		walkTree(child, func(n *sitter.Node) bool {
			kind, ok := declarationKinds[n.Kind()]
			if !ok {
				return true
			}
			if d, ok := p.declaration(n, kind, source); ok {
				decls = append(decls, d)
			}
			return false
		})
	}
	return decls
}

func (p *JavaParser) declaration(node *sitter.Node, kind extract.Kind, source []byte) (extract.Declaration, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return extract.Declaration{}, false
	}

	d := extract.Declaration{
		Kind:       kind,
		Name:       nodeText(nameNode, source),
		Implements: []string{},
		Methods:    []extract.Method{},
		Fields:     []extract.Field{},
		Offset:     keywordOffset(node),
	}
	d.Annotations, _ = modifiers(findChildByType(node, "modifiers"), source)
	d.Component = extract.Classify(d.Annotations)

	if super := node.ChildByFieldName("superclass"); super != nil {
		if types := namedChildren(super); len(types) > 0 {
			d.Extends = nodeText(types[0], source)
		}
	}
	if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
		d.Implements = append(d.Implements, typeList(ifaces, source)...)
	}
	if ext := findChildByType(node, "extends_interfaces"); ext != nil {
		d.Implements = append(d.Implements, typeList(ext, source)...)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return d, true
	}
	members := namedChildren(body)
	if decls := findChildByType(body, "enum_body_declarations"); decls != nil {
		members = append(members, namedChildren(decls)...)
	}
	for _, m := range members {
		switch m.Kind() {
		case "method_declaration", "annotation_type_element_declaration":
			d.Methods = append(d.Methods, method(m, source))
		case "constructor_declaration", "compact_constructor_declaration":
			d.Constructors = append(d.Constructors, method(m, source))
		case "field_declaration", "constant_declaration":
			d.Fields = append(d.Fields, fields(m, source)...)
		}
	}
	if nested := p.typesIn(body, source); len(nested) > 0 {
		d.Nested = nested
	}
	return d, true
}

// keywordOffset returns the byte offset of the declaration keyword, matching the offset
// the regex backend reports. For "@interface" that is the position after '@'.
func keywordOffset(node *sitter.Node) int {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "class", "interface", "enum":
			return int(child.StartByte())
		case "@interface":
			return int(child.StartByte()) + 1
		}
	}
	return int(node.StartByte())
}

// typeList returns the types of a super_interfaces or extends_interfaces node.
func typeList(node *sitter.Node, source []byte) []string {
	list := findChildByType(node, "type_list")
	if list == nil {
		return nil
	}
	var out []string
	for _, t := range namedChildren(list) {
		out = append(out, nodeText(t, source))
	}
	return out
}

// modifiers splits a modifiers node into "@Name" annotations and keyword modifiers.
func modifiers(node *sitter.Node, source []byte) ([]string, []string) {
	annotations := []string{}
	var keywords []string
	if node == nil {
		return annotations, keywords
	}
	seen := map[string]bool{}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "marker_annotation", "annotation":
			name := "@" + nodeText(child.ChildByFieldName("name"), source)
			if !seen[name] {
				seen[name] = true
				annotations = append(annotations, name)
			}
		default:
			if text := nodeText(child, source); text != "" {
				keywords = append(keywords, text)
			}
		}
	}
	return annotations, keywords
}

func method(node *sitter.Node, source []byte) extract.Method {
	m := extract.Method{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		ReturnType: nodeText(node.ChildByFieldName("type"), source),
		Parameters: []extract.Parameter{},
		Throws:     []string{},
	}
	m.Annotations, m.Modifiers = modifiers(findChildByType(node, "modifiers"), source)

	for _, param := range namedChildren(node.ChildByFieldName("parameters")) {
		switch param.Kind() {
		case "formal_parameter":
			p := extract.Parameter{
				Type: nodeText(param.ChildByFieldName("type"), source),
				Name: nodeText(param.ChildByFieldName("name"), source),
			}
			if anns, _ := modifiers(findChildByType(param, "modifiers"), source); len(anns) > 0 {
				p.Annotations = anns
			}
			m.Parameters = append(m.Parameters, p)
		case "spread_parameter":
			p := extract.Parameter{}
			for _, c := range namedChildren(param) {
				switch c.Kind() {
				case "modifiers":
					if anns, _ := modifiers(c, source); len(anns) > 0 {
						p.Annotations = anns
					}
				case "variable_declarator":
					p.Name = nodeText(c.ChildByFieldName("name"), source)
				default:
					if p.Type == "" {
						p.Type = nodeText(c, source) + "..."
					}
				}
			}
			m.Parameters = append(m.Parameters, p)
		}
	}

	if throws := findChildByType(node, "throws"); throws != nil {
		for _, t := range namedChildren(throws) {
			m.Throws = append(m.Throws, nodeText(t, source))
		}
	}
	return m
}

func fields(node *sitter.Node, source []byte) []extract.Field {
	annotations, keywords := modifiers(findChildByType(node, "modifiers"), source)
	typ := nodeText(node.ChildByFieldName("type"), source)

	var out []extract.Field
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "variable_declarator" {
			continue
		}
		out = append(out, extract.Field{
			Name:        nodeText(child.ChildByFieldName("name"), source),
			Type:        typ,
			Modifiers:   keywords,
			Annotations: annotations,
		})
	}
	return out
}
