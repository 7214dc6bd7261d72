package extract

import (
	"regexp"
	"strings"
)

// blockTagPattern finds block tags: "@name" at the start of the cleaned text or after
// whitespace. Inline tags such as "{@link Foo}" are preceded by '{' and stay in the prose.
var blockTagPattern = regexp.MustCompile(`(?:^|\s)@([A-Za-z]+)\b`)

// JavadocEntries returns the documentation blocks that directly precede a type or method
// declaration. Annotations between the block and the signature are allowed; blocks
// followed by anything else (fields, statements, another comment) are ignored.
func JavadocEntries(text string) Javadoc {
	doc := Javadoc{Classes: []JavadocEntry{}, Methods: []JavadocEntry{}}
	code := codeView(text)

	for _, r := range scanRegions(text) {
		if r.kind != regionJavadoc {
			continue
		}
		pos := skipAnnotations(code, r.end)
		rest := code[pos:]

		if d := declAtPattern.FindStringSubmatch(rest); d != nil {
			entry := parseJavadoc(text[r.start:r.end])
			entry.Target = d[2]
			entry.TargetKind = "class"
			doc.Classes = append(doc.Classes, entry)
			continue
		}
		if m := methodAtPattern.FindStringSubmatchIndex(rest); m != nil {
			method, _, ok := methodAt(code, shift(m, pos))
			if !ok {
				continue
			}
			entry := parseJavadoc(text[r.start:r.end])
			entry.Target = method.Name
			entry.TargetKind = "method"
			entry.ReturnType = method.ReturnType
			doc.Methods = append(doc.Methods, entry)
		}
	}
	return doc
}

// parseJavadoc cleans a raw /** */ block and splits it into description and block tags.
// Each tag runs until the next block tag.
func parseJavadoc(raw string) JavadocEntry {
	entry := JavadocEntry{Params: []JavadocParam{}, Throws: []JavadocThrows{}}
	body := cleanJavadoc(raw)

	tags := blockTagPattern.FindAllStringSubmatchIndex(body, -1)
	if len(tags) == 0 {
		entry.Description = body
		return entry
	}
	entry.Description = strings.TrimSpace(body[:tags[0][0]])

	for i, t := range tags {
		end := len(body)
		if i+1 < len(tags) {
			end = tags[i+1][0]
		}
		name := body[t[2]:t[3]]
		value := strings.TrimSpace(body[t[3]:end])
		switch name {
		case "param":
			first, rest := splitFirstWord(value)
			if first != "" {
				entry.Params = append(entry.Params, JavadocParam{Name: first, Description: rest})
			}
		case "return", "returns":
			if entry.Returns == "" {
				entry.Returns = value
			}
		case "throws", "exception":
			first, rest := splitFirstWord(value)
			if first != "" {
				entry.Throws = append(entry.Throws, JavadocThrows{Exception: first, Description: rest})
			}
		}
	}
	return entry
}

// cleanJavadoc strips the comment delimiters and each line's leading '*', then joins the
// non-empty lines with single spaces.
func cleanJavadoc(raw string) string {
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")
	return strings.Join(commentLines(raw), " ")
}

func commentLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitFirstWord(s string) (string, string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
