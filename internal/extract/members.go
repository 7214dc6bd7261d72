package extract

import (
	"regexp"
	"strings"
)

// Member patterns run on the flattened body of a single declaration (see flatten), so
// they only ever see signatures at the top level of that body.
//
// Known gaps:
//   - package-private constructors ("Foo(int x) {") have no modifier to anchor on and are
//     not reported;
//   - a field declaration with several declarators ("int a, b;") reports nothing;
//   - parameters are split on every comma, so "Map<K, V> m" yields a broken parameter.
var (
	methodPattern = regexp.MustCompile(`((?:\b(?:public|protected|private|static|final|abstract|synchronized|native|default|strictfp)\s+)*)(<[^(){};=]*>\s*)?([A-Za-z_$][\w$.]*(?:\s*<[^(){};=]*>)?(?:\s*\[\s*\])*)\s+([A-Za-z_$][\w$]*)\s*\(`)
	fieldPattern  = regexp.MustCompile(`((?:\b(?:public|protected|private|static|final|transient|volatile)\s+)*)([A-Za-z_$][\w$.]*(?:\s*<[^(){};=]*>)?(?:\s*\[\s*\])*)\s+([A-Za-z_$][\w$]*)\s*(?:=|;)`)

	// Anchored variants, used when a signature must start exactly at a position.
	methodAtPattern = regexp.MustCompile(`^` + methodPattern.String())
	declAtPattern   = regexp.MustCompile(`^(?:(?:public|protected|private|static|final|abstract|sealed|strictfp)\s+)*@?(class|interface|enum)\s+([A-Za-z_$][\w$]*)`)

	throwsPattern     = regexp.MustCompile(`^\s*throws\s+([\w$.,\s<>]+?)\s*(?:[{;]|$)`)
	paramAnnotPattern = regexp.MustCompile(`@([\w$.]+)(?:\s*\([^)]*\))?`)
)

// statementKeywords can occupy the type or name slot of a member pattern but never start
// a member declaration.
var statementKeywords = map[string]bool{
	"return": true, "new": true, "throw": true, "throws": true, "else": true, "case": true,
	"if": true, "for": true, "while": true, "switch": true, "catch": true, "do": true,
	"try": true, "finally": true, "import": true, "package": true, "class": true,
	"interface": true, "enum": true, "extends": true, "implements": true, "instanceof": true,
	"assert": true, "yield": true, "break": true, "continue": true, "this": true,
	"super": true, "goto": true, "default": true, "var": true,
}

// members fills in methods, constructors and fields of d from its flattened body.
func members(flat string, d *Declaration) {
	type span struct{ start, end int }
	var signatures []span

	for _, m := range methodPattern.FindAllStringSubmatchIndex(flat, -1) {
		method, end, ok := methodAt(flat, m)
		if !ok {
			continue
		}
		signatures = append(signatures, span{m[0], end})
		if method.ReturnType == "" {
			d.Constructors = append(d.Constructors, method)
		} else {
			d.Methods = append(d.Methods, method)
		}
	}

	for _, m := range fieldPattern.FindAllStringSubmatchIndex(flat, -1) {
		inside := false
		for _, s := range signatures {
			if m[0] >= s.start && m[0] < s.end {
				inside = true
				break
			}
		}
		if inside {
			continue
		}
		typ, name := flat[m[4]:m[5]], flat[m[6]:m[7]]
		if statementKeywords[typ] || statementKeywords[name] || modifierKeywords[typ] {
			continue
		}
		d.Fields = append(d.Fields, Field{
			Name:        name,
			Type:        normalizeType(typ),
			Modifiers:   strings.Fields(flat[m[2]:m[3]]),
			Annotations: prefixed(annotationsBefore(flat, m[0])),
		})
	}
}

// methodAt builds a Method from a methodPattern submatch. It returns the end of the
// parameter list so callers can tell which text belongs to the signature.
func methodAt(code string, m []int) (Method, int, bool) {
	modifiers := strings.Fields(code[m[2]:m[3]])
	returnType, name := code[m[6]:m[7]], code[m[8]:m[9]]
	if statementKeywords[returnType] || statementKeywords[name] {
		return Method{}, 0, false
	}
	if modifierKeywords[returnType] {
		// "public Foo(" parses as return type "public"; that is a constructor.
		modifiers = append(modifiers, returnType)
		returnType = ""
	}

	open := m[1] - 1
	close := matchParen(code, open)
	if close < 0 {
		return Method{}, 0, false
	}

	method := Method{
		Name:        name,
		ReturnType:  normalizeType(returnType),
		Modifiers:   modifiers,
		Parameters:  parseParameters(code[open+1 : close]),
		Throws:      []string{},
		Annotations: prefixed(annotationsBefore(code, m[0])),
	}
	if t := throwsPattern.FindStringSubmatch(code[close+1:]); t != nil {
		method.Throws = splitTypeList(t[1])
	}
	return method, close + 1, true
}

// parseParameters splits a parameter list on commas after lifting out parameter
// annotations, whose arguments may contain commas of their own.
func parseParameters(list string) []Parameter {
	type annotation struct {
		pos  int
		name string
	}
	var annotations []annotation
	b := []byte(list)
	for _, m := range paramAnnotPattern.FindAllStringSubmatchIndex(list, -1) {
		annotations = append(annotations, annotation{m[0], "@" + simpleAnnotationName(list[m[2]:m[3]])})
		for i := m[0]; i < m[1]; i++ {
			b[i] = ' '
		}
	}
	stripped := string(b)

	params := []Parameter{}
	start := 0
	for start <= len(stripped) {
		end := strings.IndexByte(stripped[start:], ',')
		if end < 0 {
			end = len(stripped)
		} else {
			end += start
		}

		var tokens []string
		for _, tok := range strings.Fields(stripped[start:end]) {
			if tok != "final" {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) >= 2 {
			p := Parameter{
				Name: tokens[len(tokens)-1],
				Type: strings.Join(tokens[:len(tokens)-1], " "),
			}
			for _, a := range annotations {
				if a.pos >= start && a.pos < end {
					p.Annotations = append(p.Annotations, a.name)
				}
			}
			params = append(params, p)
		}
		start = end + 1
	}
	return params
}

func normalizeType(t string) string {
	return strings.Join(strings.Fields(t), " ")
}
