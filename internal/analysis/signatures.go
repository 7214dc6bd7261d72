package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// Signatures is the response of get_function_signatures.
type Signatures struct {
	File         string                `json:"file"`
	Language     extract.Language      `json:"language"`
	Package      string                `json:"package"`
	Imports      []string              `json:"imports"`
	Declarations []extract.Declaration `json:"classes"`
	Parser       string                `json:"parser"`
	Binary       bool                  `json:"binary,omitempty"`
}

// Signatures lists the declarations of a source file with their methods and fields.
// language overrides the language detected from the extension; only Java is supported.
func (a *Analyzer) Signatures(ctx context.Context, path, language string) (*Signatures, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lang := extract.DetectLanguage(path)
	if language != "" {
		lang = extract.ParseLanguage(language)
		if lang == extract.LangUnknown {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
		}
	}
	if lang != extract.LangJava {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	text, err := a.provider.ReadText(path)
	if errors.Is(err, files.ErrBinaryContent) {
		return &Signatures{File: path, Language: lang, Imports: []string{}, Declarations: []extract.Declaration{}, Binary: true}, nil
	}
	if err != nil {
		return nil, err
	}
	summary := a.summarizer.Summarize(text)
	return &Signatures{
		File:         path,
		Language:     lang,
		Package:      summary.Package,
		Imports:      summary.Imports,
		Declarations: summary.Declarations,
		Parser:       summary.Parser,
	}, nil
}
