package extract

import "strings"

// Comments lists every comment in source order. Comment markers inside string literals
// are not comments. Block comments carry their cleaned lines; Text joins them with a
// single space.
func Comments(text string) []Comment {
	lines := newLineIndex(text)
	comments := []Comment{}
	for _, r := range scanRegions(text) {
		raw := text[r.start:r.end]
		c := Comment{Line: lines.line(r.start)}
		switch r.kind {
		case regionLineComment:
			c.Kind = CommentSingleLine
			c.Text = strings.TrimSpace(strings.TrimPrefix(raw, "//"))
		case regionBlockComment, regionJavadoc:
			c.Kind = CommentMultiLine
			prefix := "/*"
			if r.kind == regionJavadoc {
				c.Kind = CommentJavadoc
				prefix = "/**"
			}
			body := strings.TrimSuffix(strings.TrimPrefix(raw, prefix), "*/")
			c.Lines = commentLines(body)
			c.Text = strings.Join(c.Lines, " ")
		default:
			continue
		}
		comments = append(comments, c)
	}
	return comments
}
