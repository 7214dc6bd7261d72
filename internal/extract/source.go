package extract

import "regexp"

var (
	packagePattern = regexp.MustCompile(`\bpackage\s+([a-zA-Z_$][\w$]*(?:\s*\.\s*[a-zA-Z_$][\w$]*)*)\s*;`)
	importPattern  = regexp.MustCompile(`\bimport\s+(?:static\s+)?([a-zA-Z_$][\w$]*(?:\s*\.\s*[a-zA-Z_$][\w$]*)*(?:\s*\.\s*\*)?)\s*;`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// Package returns the first declared package name, or "" when the text has none.
// A statement without its terminating ';' does not match.
func Package(text string) string {
	m := packagePattern.FindStringSubmatch(codeView(text))
	if m == nil {
		return ""
	}
	return whitespace.ReplaceAllString(m[1], "")
}

// Imports returns every import path in source order, duplicates included. Static imports
// report the imported member path; wildcards keep the trailing ".*".
func Imports(text string) []string {
	matches := importPattern.FindAllStringSubmatch(codeView(text), -1)
	imports := make([]string, 0, len(matches))
	for _, m := range matches {
		imports = append(imports, whitespace.ReplaceAllString(m[1], ""))
	}
	return imports
}
