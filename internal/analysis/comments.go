package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// CommentReport is the response of extract_comments.
type CommentReport struct {
	File       string             `json:"file"`
	TotalLines int                `json:"total_lines"`
	Comments   []extract.Comment  `json:"comments"`
	Javadoc    *extract.Javadoc   `json:"javadoc,omitempty"`
	Endpoints  []extract.Endpoint `json:"spring_endpoints"`
	Binary     bool               `json:"binary,omitempty"`
}

// ExtractComments lists the comments of a Java file and the REST endpoints it declares.
// Javadoc is parsed into class and method documentation when includeJavadoc is set.
func (a *Analyzer) ExtractComments(ctx context.Context, path string, includeJavadoc bool) (*CommentReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if extract.DetectLanguage(path) != extract.LangJava {
		return nil, fmt.Errorf("%w: %s", ErrNotJava, path)
	}
	text, err := a.provider.ReadText(path)
	if errors.Is(err, files.ErrBinaryContent) {
		return &CommentReport{File: path, Comments: []extract.Comment{}, Endpoints: []extract.Endpoint{}, Binary: true}, nil
	}
	if err != nil {
		return nil, err
	}

	report := &CommentReport{
		File:       path,
		TotalLines: countLines(text),
		Comments:   extract.Comments(text),
		Endpoints:  extract.Endpoints(text),
	}
	if includeJavadoc {
		javadoc := extract.JavadocEntries(text)
		report.Javadoc = &javadoc
	}
	return report, nil
}
