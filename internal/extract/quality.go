package extract

import (
	"regexp"
	"strings"
)

// DefaultLongLineThreshold is the line length above which a line counts as long.
const DefaultLongLineThreshold = 120

var (
	classCountPattern  = regexp.MustCompile(`\bclass\s+[\w$]+`)
	methodCountPattern = regexp.MustCompile(`\b(?:public|private|protected)\s+(?:static\s+)?(?:[\w$]+<[^>]+>|[\w$]+)\s+[\w$]+\s*\(`)
	annotationPattern  = regexp.MustCompile(`@[A-Za-z]+`)
)

// QualityMetrics are simple size and shape measurements of a source unit.
type QualityMetrics struct {
	TotalLines    int     `json:"total_lines"`
	NonEmptyLines int     `json:"non_empty_lines"`
	CodeRatio     float64 `json:"code_ratio"`
	MaxLineLength int     `json:"max_line_length"`
	LongLines     int     `json:"long_lines"`

	// Java only.
	ClassCount            int          `json:"class_count,omitempty"`
	MethodCount           int          `json:"method_count,omitempty"`
	AnnotationCount       int          `json:"annotation_count,omitempty"`
	SpringAnnotationCount int          `json:"spring_annotation_count,omitempty"`
	SpringRatio           float64      `json:"spring_ratio,omitempty"`
	Syntax                *SyntaxCheck `json:"syntax,omitempty"`
}

// SyntaxCheck is the result of ValidateSyntax.
type SyntaxCheck struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Quality measures text. Lines longer than threshold characters are counted as long; a
// threshold <= 0 selects DefaultLongLineThreshold.
func Quality(text string, lang Language, threshold int) QualityMetrics {
	if threshold <= 0 {
		threshold = DefaultLongLineThreshold
	}
	lines := strings.Split(text, "\n")
	q := QualityMetrics{TotalLines: len(lines)}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			q.NonEmptyLines++
		}
		if len(line) > q.MaxLineLength {
			q.MaxLineLength = len(line)
		}
		if len(line) > threshold {
			q.LongLines++
		}
	}
	q.CodeRatio = float64(q.NonEmptyLines) / float64(q.TotalLines)

	if lang != LangJava {
		return q
	}
	code := codeView(text)
	q.ClassCount = len(classCountPattern.FindAllStringIndex(code, -1))
	q.MethodCount = len(methodCountPattern.FindAllStringIndex(code, -1))
	q.AnnotationCount = len(annotationPattern.FindAllStringIndex(code, -1))
	q.SpringAnnotationCount = len(RecognizedAnnotations(text))
	if q.AnnotationCount > 0 {
		q.SpringRatio = float64(q.SpringAnnotationCount) / float64(q.AnnotationCount)
	}
	syntax := ValidateSyntax(text)
	q.Syntax = &syntax
	return q
}

// ValidateSyntax checks that braces and parentheses balance outside comments and
// literals. It is a count comparison, not a parse.
func ValidateSyntax(text string) SyntaxCheck {
	code := codeView(text)
	check := SyntaxCheck{Errors: []string{}}
	if strings.Count(code, "{") != strings.Count(code, "}") {
		check.Errors = append(check.Errors, "Mismatched braces")
	}
	if strings.Count(code, "(") != strings.Count(code, ")") {
		check.Errors = append(check.Errors, "Mismatched parentheses")
	}
	check.Valid = len(check.Errors) == 0
	return check
}
