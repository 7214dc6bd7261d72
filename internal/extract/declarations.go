package extract

import (
	"regexp"
	"strings"
)

// declPattern matches a type signature up to its opening brace. It runs on the code view,
// so keywords inside comments and strings never match. Generic bounds in the type
// parameter list may themselves contain "extends"; the lazy type-parameter group absorbs
// them before the extends clause is tried.
var declPattern = regexp.MustCompile(`\b(class|interface|enum)\s+([A-Za-z_$][\w$]*)(?:\s*<[^{;]*?>)?(?:\s+extends\s+([^{;]+?))?(?:\s+implements\s+([^{;]+?))?\s*\{`)

// RegexParser recovers declarations with regular expressions and brace-depth scanning.
type RegexParser struct{}

// Name implements DeclarationParser.
func (RegexParser) Name() string { return "regex" }

// declNode is a declaration under construction together with the span of its body.
type declNode struct {
	decl     Declaration
	bodyEnd  int
	children []*declNode
}

// Declarations implements DeclarationParser. Declarations nested in another type's body
// are attached to the innermost enclosing declaration, so for well-formed text the result
// has exactly one entry per top-level type.
func (RegexParser) Declarations(text string) []Declaration {
	code := codeView(text)
	var roots []*declNode
	var stack []*declNode

	for _, m := range declPattern.FindAllStringSubmatchIndex(code, -1) {
		kwStart := m[2]
		if kwStart > 0 && code[kwStart-1] == '.' {
			// Foo.class literal
			continue
		}
		open := m[1] - 1
		node := &declNode{decl: newDeclaration(code, m)}
		if close := matchBrace(code, open); close >= 0 {
			node.bodyEnd = close
			members(flatten(code[open+1:close]), &node.decl)
		} else {
			node.bodyEnd = open
		}

		for len(stack) > 0 && stack[len(stack)-1].bodyEnd < kwStart {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}
		stack = append(stack, node)
	}

	return collect(roots)
}

func collect(nodes []*declNode) []Declaration {
	out := make([]Declaration, 0, len(nodes))
	for _, n := range nodes {
		d := n.decl
		if len(n.children) > 0 {
			d.Nested = collect(n.children)
		}
		out = append(out, d)
	}
	return out
}

func newDeclaration(code string, m []int) Declaration {
	keyword := code[m[2]:m[3]]
	d := Declaration{
		Kind:       Kind(keyword),
		Name:       code[m[4]:m[5]],
		Implements: []string{},
		Methods:    []Method{},
		Fields:     []Field{},
		Offset:     m[2],
	}

	annotationEnd := m[2]
	if at := lastNonSpace(code, m[2]); at >= 0 && code[at] == '@' && keyword == "interface" {
		d.Kind = KindAnnotation
		annotationEnd = at
	}
	d.Annotations = prefixed(annotationsBefore(code, annotationEnd))
	d.Component = Classify(d.Annotations)

	var supers []string
	if m[6] >= 0 {
		supers = splitTypeList(code[m[6]:m[7]])
	}
	if m[8] >= 0 {
		d.Implements = append(d.Implements, splitTypeList(code[m[8]:m[9]])...)
	}
	if len(supers) > 0 {
		if d.Kind == KindInterface {
			d.Implements = append(supers, d.Implements...)
		} else {
			d.Extends = supers[0]
		}
	}
	return d
}

// splitTypeList splits "A, B<C, D>" on commas outside angle brackets.
func splitTypeList(list string) []string {
	var out []string
	depth, start := 0, 0
	flush := func(end int) {
		if part := strings.Join(strings.Fields(list[start:end]), " "); part != "" {
			out = append(out, part)
		}
	}
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(list))
	return out
}

func lastNonSpace(s string, before int) int {
	for i := before - 1; i >= 0; i-- {
		if !isSpace(s[i]) {
			return i
		}
	}
	return -1
}

// prefixed renders annotation names the way they appear in source, with a leading '@'.
func prefixed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, "@"+n)
	}
	return out
}
