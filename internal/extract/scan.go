package extract

import (
	"sort"
	"strings"
)

// Low-level text scanning shared by the extraction passes. Regular expressions cannot
// follow nesting, so comment/literal detection and bracket matching are explicit walks
// over the bytes. Every transformation here preserves byte offsets, which lets a match
// found in a cleaned view be mapped straight back onto the original text.

type regionKind int

const (
	regionLineComment regionKind = iota
	regionBlockComment
	regionJavadoc
	regionString
	regionChar
	regionTextBlock
)

// region is a comment or literal occupying text[start:end].
type region struct {
	kind  regionKind
	start int
	end   int
}

func (r region) isComment() bool {
	return r.kind == regionLineComment || r.kind == regionBlockComment || r.kind == regionJavadoc
}

// scanRegions locates comments and string, char and text-block literals. Unterminated
// comments run to the end of the text; unterminated quoted literals end at the newline.
func scanRegions(text string) []region {
	var regions []region
	n := len(text)
	for i := 0; i < n; {
		c := text[i]
		switch {
		case c == '/' && i+1 < n && text[i+1] == '/':
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = n
			} else {
				end += i
			}
			regions = append(regions, region{regionLineComment, i, end})
			i = end
		case c == '/' && i+1 < n && text[i+1] == '*':
			kind := regionBlockComment
			if i+2 < n && text[i+2] == '*' && !(i+3 < n && text[i+3] == '/') {
				kind = regionJavadoc
			}
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				end = n
			} else {
				end = i + 2 + end + 2
			}
			regions = append(regions, region{kind, i, end})
			i = end
		case c == '"' && strings.HasPrefix(text[i:], `"""`):
			end := strings.Index(text[i+3:], `"""`)
			if end < 0 {
				end = n
			} else {
				end = i + 3 + end + 3
			}
			regions = append(regions, region{regionTextBlock, i, end})
			i = end
		case c == '"':
			end := scanQuoted(text, i, '"')
			regions = append(regions, region{regionString, i, end})
			i = end
		case c == '\'':
			end := scanQuoted(text, i, '\'')
			regions = append(regions, region{regionChar, i, end})
			i = end
		default:
			i++
		}
	}
	return regions
}

func scanQuoted(text string, start int, quote byte) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(text)
}

// blank returns text with every region overwritten by spaces. Newlines survive so line
// numbers stay valid.
func blank(text string, regions []region) string {
	if len(regions) == 0 {
		return text
	}
	b := []byte(text)
	for _, r := range regions {
		for i := r.start; i < r.end && i < len(b); i++ {
			if b[i] != '\n' {
				b[i] = ' '
			}
		}
	}
	return string(b)
}

// codeView blanks comments and literals, leaving only code.
func codeView(text string) string {
	return blank(text, scanRegions(text))
}

// commentFree blanks comments but keeps literals, so annotation arguments stay readable.
func commentFree(text string) string {
	var comments []region
	for _, r := range scanRegions(text) {
		if r.isComment() {
			comments = append(comments, r)
		}
	}
	return blank(text, comments)
}

// matchBrace returns the index of the '}' that closes the '{' at open, or -1. The walk
// keeps a depth counter that starts at 1 after the opening brace; the first position
// where it returns to 0 is the answer. code should come from codeView so braces inside
// literals and comments do not count.
func matchBrace(code string, open int) int {
	return matchForward(code, open, '{', '}')
}

// matchParen is matchBrace for parentheses.
func matchParen(code string, open int) int {
	return matchForward(code, open, '(', ')')
}

func matchForward(code string, open int, opening, closing byte) int {
	if open < 0 || open >= len(code) || code[open] != opening {
		return -1
	}
	depth := 1
	for i := open + 1; i < len(code); i++ {
		switch code[i] {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchParenBack returns the index of the '(' matching the ')' at close, or -1.
func matchParenBack(code string, close int) int {
	if close < 0 || close >= len(code) || code[close] != ')' {
		return -1
	}
	depth := 1
	for i := close - 1; i >= 0; i-- {
		switch code[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// flatten keeps only the outermost brace level of a body: everything nested inside a
// further pair of braces is blanked, while the braces of that first nesting level stay.
// Method bodies, initializer blocks and nested type bodies therefore vanish, and member
// patterns only see member signatures.
func flatten(code string) string {
	b := []byte(code)
	depth := 0
	for i, c := range b {
		switch c {
		case '{':
			if depth > 0 {
				b[i] = ' '
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
			if depth > 0 {
				b[i] = ' '
			}
		case '\n':
		default:
			if depth > 0 {
				b[i] = ' '
			}
		}
	}
	return string(b)
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

var modifierKeywords = map[string]bool{
	"public": true, "protected": true, "private": true, "static": true, "final": true,
	"abstract": true, "synchronized": true, "native": true, "default": true,
	"strictfp": true, "transient": true, "volatile": true, "sealed": true, "non-sealed": true,
}

// annotationsBefore walks backwards from pos over a contiguous run of annotations and
// modifier keywords and returns the annotation names in source order.
func annotationsBefore(code string, pos int) []string {
	var names []string
	i := pos
	for {
		for i > 0 && isSpace(code[i-1]) {
			i--
		}
		if i == 0 {
			break
		}
		end := i
		if code[end-1] == ')' {
			open := matchParenBack(code, end-1)
			if open < 0 {
				break
			}
			end = open
			for end > 0 && isSpace(code[end-1]) {
				end--
			}
		}
		start := end
		for start > 0 && (isIdentByte(code[start-1]) || code[start-1] == '.') {
			start--
		}
		if start == end {
			break
		}
		word := code[start:end]
		if start > 0 && code[start-1] == '@' {
			names = append(names, word)
			i = start - 1
			continue
		}
		if end == i && modifierKeywords[word] {
			i = start
			continue
		}
		break
	}
	for l, r := 0, len(names)-1; l < r; l, r = l+1, r-1 {
		names[l], names[r] = names[r], names[l]
	}
	return dedupe(names)
}

// skipAnnotations advances from pos past whitespace and any run of @Name or @Name(...)
// tokens, returning the position of the next code token.
func skipAnnotations(code string, pos int) int {
	i := skipSpace(code, pos)
	for i < len(code) && code[i] == '@' {
		j := i + 1
		for j < len(code) && (isIdentByte(code[j]) || code[j] == '.') {
			j++
		}
		if j == i+1 || code[i+1:j] == "interface" {
			return i
		}
		k := skipSpace(code, j)
		if k < len(code) && code[k] == '(' {
			close := matchParen(code, k)
			if close < 0 {
				return i
			}
			j = close + 1
		}
		i = skipSpace(code, j)
	}
	return i
}

// lineIndex converts byte offsets into 1-based line numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (l lineIndex) line(offset int) int {
	return sort.Search(len(l), func(i int) bool { return l[i] > offset })
}
