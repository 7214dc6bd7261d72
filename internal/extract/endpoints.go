package extract

import (
	"regexp"
	"strings"
)

var (
	mappingPattern       = regexp.MustCompile(`@(GetMapping|PostMapping|PutMapping|DeleteMapping|PatchMapping|RequestMapping)\b`)
	quotedPattern        = regexp.MustCompile(`["']([^"']*)["']`)
	requestMethodPattern = regexp.MustCompile(`\bmethod\s*=\s*\{?\s*(?:RequestMethod\s*\.\s*)?["']?([A-Za-z]+)`)
)

// typeSpan is the body extent of one declaration, used to attribute endpoints.
type typeSpan struct {
	name     string
	keyword  int
	open     int
	close    int
	basePath string
}

// Endpoints returns the REST routes declared by mapping annotations on methods, in source
// order. A mapping annotation on a type declaration does not produce an endpoint; its path
// is reported as BasePath on the endpoints declared inside that type.
func Endpoints(text string) []Endpoint {
	code := codeView(text)
	literal := commentFree(text)
	spans := typeSpans(code)

	type pending struct {
		endpoint Endpoint
		pos      int
	}
	var found []pending

	for _, m := range mappingPattern.FindAllStringSubmatchIndex(code, -1) {
		annotation := Annotation(code[m[2]:m[3]])
		end := m[1]
		args := ""
		if open := skipSpace(code, end); open < len(code) && code[open] == '(' {
			close := matchParen(code, open)
			if close < 0 {
				continue
			}
			args = literal[open+1 : close]
			end = close + 1
		}
		path := ""
		if q := quotedPattern.FindStringSubmatch(args); q != nil {
			path = q[1]
		}

		pos := skipAnnotations(code, end)
		rest := code[pos:]
		if d := declAtPattern.FindStringSubmatchIndex(rest); d != nil {
			for i := range spans {
				if spans[i].keyword == pos+d[2] {
					spans[i].basePath = path
				}
			}
			continue
		}
		sig := methodAtPattern.FindStringSubmatchIndex(rest)
		if sig == nil {
			continue
		}
		method, _, ok := methodAt(code, shift(sig, pos))
		if !ok || method.ReturnType == "" {
			continue
		}

		verb := mappingVerbs[annotation]
		if annotation == AnnRequestMapping {
			if v := requestMethodPattern.FindStringSubmatch(args); v != nil {
				verb = HTTPVerb(strings.ToUpper(v[1]))
			}
		}
		found = append(found, pending{
			endpoint: Endpoint{
				Verb:       verb,
				Path:       path,
				Method:     method.Name,
				ReturnType: method.ReturnType,
				Annotation: strings.TrimSpace(literal[m[0]:end]),
			},
			pos: pos,
		})
	}

	endpoints := make([]Endpoint, 0, len(found))
	for _, f := range found {
		if owner := enclosing(spans, f.pos); owner != nil {
			f.endpoint.Controller = owner.name
			f.endpoint.BasePath = owner.basePath
		}
		endpoints = append(endpoints, f.endpoint)
	}
	return endpoints
}

func typeSpans(code string) []typeSpan {
	var spans []typeSpan
	for _, m := range declPattern.FindAllStringSubmatchIndex(code, -1) {
		if m[2] > 0 && code[m[2]-1] == '.' {
			continue
		}
		open := m[1] - 1
		spans = append(spans, typeSpan{
			name:    code[m[4]:m[5]],
			keyword: m[2],
			open:    open,
			close:   matchBrace(code, open),
		})
	}
	return spans
}

// enclosing returns the innermost span whose body contains pos.
func enclosing(spans []typeSpan, pos int) *typeSpan {
	var best *typeSpan
	for i := range spans {
		s := &spans[i]
		if s.open < pos && (s.close < 0 || pos < s.close) {
			if best == nil || s.open > best.open {
				best = s
			}
		}
	}
	return best
}

// shift moves submatch indices found in a suffix back into the coordinates of the
// complete text.
func shift(m []int, by int) []int {
	out := make([]int, len(m))
	for i, v := range m {
		if v >= 0 {
			v += by
		}
		out[i] = v
	}
	return out
}
