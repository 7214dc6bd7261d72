// Package extract recovers structural facts from Java-like source text and configuration
// text: package and imports, type declarations with their members, Spring annotations and
// stereotypes, REST endpoints, Javadoc and comments.
//
// Everything here is a pure function of its input text. Nothing reads files, keeps state
// between calls or needs locking, so an Extractor may be shared by any number of
// goroutines. Extraction never fails: text that does not match a pattern yields empty
// values.
//
// This is heuristic extraction with regular expressions and bracket scanning, not a Java
// parser. The known blind spots are documented next to the pattern that causes them.
package extract

// DeclarationParser turns source text into declarations. The default is RegexParser;
// internal/parsers provides a syntax-tree backed alternative.
type DeclarationParser interface {
	Name() string
	Declarations(text string) []Declaration
}

// Extractor assembles a SourceSummary using a DeclarationParser for the declaration pass.
// The other passes (package, imports, endpoints, Javadoc) are always regex based.
type Extractor struct {
	parser DeclarationParser
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDeclarationParser replaces the declaration backend.
func WithDeclarationParser(p DeclarationParser) Option {
	return func(e *Extractor) {
		if p != nil {
			e.parser = p
		}
	}
}

// NewExtractor creates an Extractor using RegexParser unless configured otherwise.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{parser: RegexParser{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParserName is the name of the configured declaration backend.
func (e *Extractor) ParserName() string {
	return e.parser.Name()
}

// Declarations runs the configured declaration backend.
func (e *Extractor) Declarations(text string) []Declaration {
	decls := e.parser.Declarations(text)
	if decls == nil {
		decls = []Declaration{}
	}
	return decls
}

// Summarize runs every Java pass over text.
func (e *Extractor) Summarize(text string) *SourceSummary {
	decls := e.Declarations(text)
	return &SourceSummary{
		Language:     LangJava,
		Parser:       e.parser.Name(),
		Package:      Package(text),
		Imports:      Imports(text),
		Declarations: decls,
		Annotations:  RecognizedAnnotations(text),
		Components:   Components(decls),
		Endpoints:    Endpoints(text),
		Javadoc:      JavadocEntries(text),
	}
}

// Components lists the classified declarations, nested ones included, in source order.
func Components(decls []Declaration) []Component {
	components := []Component{}
	var walk func([]Declaration)
	walk = func(ds []Declaration) {
		for _, d := range ds {
			if c := Classify(d.Annotations); c != "" {
				components = append(components, Component{Class: d.Name, Type: c, Annotations: d.Annotations})
			}
			walk(d.Nested)
		}
	}
	walk(decls)
	return components
}

// Walk visits every declaration depth first, parents before their nested declarations.
func Walk(decls []Declaration, fn func(Declaration)) {
	for _, d := range decls {
		fn(d)
		Walk(d.Nested, fn)
	}
}
