package extract

// Kind identifies the flavour of a recovered type declaration.
type Kind string

const (
	KindClass      Kind = "class"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindAnnotation Kind = "annotation"
)

// Declaration is a class, interface, enum or annotation type recovered from source text.
// Offset is the byte position of the declaration keyword and serves as its identity;
// two declarations with the same name are never merged.
type Declaration struct {
	Kind         Kind          `json:"kind"`
	Name         string        `json:"name"`
	Extends      string        `json:"extends,omitempty"`
	Implements   []string      `json:"implements"`
	Annotations  []string      `json:"annotations"`
	Component    ComponentType `json:"component,omitempty"`
	Methods      []Method      `json:"methods"`
	Constructors []Method      `json:"constructors,omitempty"`
	Fields       []Field       `json:"fields"`
	Nested       []Declaration `json:"nested,omitempty"`
	Offset       int           `json:"offset"`
}

// Method is a method or constructor signature. ReturnType is the literal token found in
// source and is empty for constructors.
type Method struct {
	Name        string      `json:"name"`
	ReturnType  string      `json:"return_type"`
	Modifiers   []string    `json:"modifiers,omitempty"`
	Parameters  []Parameter `json:"parameters"`
	Throws      []string    `json:"throws"`
	Annotations []string    `json:"annotations"`
}

// Parameter is one formal parameter of a method.
type Parameter struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Annotations []string `json:"annotations,omitempty"`
}

// Field is a field declaration inside a type body.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations"`
}

// HTTPVerb is the request method served by an endpoint.
type HTTPVerb string

const (
	VerbGet    HTTPVerb = "GET"
	VerbPost   HTTPVerb = "POST"
	VerbPut    HTTPVerb = "PUT"
	VerbDelete HTTPVerb = "DELETE"
	VerbPatch  HTTPVerb = "PATCH"
)

// Endpoint is a REST route inferred from a mapping annotation on a method.
type Endpoint struct {
	Verb       HTTPVerb `json:"http_method"`
	Path       string   `json:"path"`
	Method     string   `json:"method_name"`
	ReturnType string   `json:"return_type"`
	Annotation string   `json:"annotation"`
	Controller string   `json:"controller,omitempty"`
	BasePath   string   `json:"base_path,omitempty"`
}

// JavadocParam documents one @param tag.
type JavadocParam struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// JavadocThrows documents one @throws or @exception tag.
type JavadocThrows struct {
	Exception   string `json:"exception"`
	Description string `json:"description"`
}

// JavadocEntry is a /** */ block attached to a class or method.
type JavadocEntry struct {
	Target      string          `json:"target"`
	TargetKind  string          `json:"target_kind"`
	ReturnType  string          `json:"return_type,omitempty"`
	Description string          `json:"description"`
	Params      []JavadocParam  `json:"parameters"`
	Returns     string          `json:"returns,omitempty"`
	Throws      []JavadocThrows `json:"throws"`
}

// Javadoc groups documentation blocks by what they document.
type Javadoc struct {
	Classes []JavadocEntry `json:"class_documentation"`
	Methods []JavadocEntry `json:"method_documentation"`
}

// CommentKind distinguishes line, block and documentation comments.
type CommentKind string

const (
	CommentSingleLine CommentKind = "single_line"
	CommentMultiLine  CommentKind = "multi_line"
	CommentJavadoc    CommentKind = "javadoc"
)

// Comment is a comment found in source text. Line is 1-based.
type Comment struct {
	Kind  CommentKind `json:"type"`
	Text  string      `json:"content"`
	Lines []string    `json:"lines,omitempty"`
	Line  int         `json:"line"`
}

// Component is a declaration classified as a Spring stereotype.
type Component struct {
	Class       string        `json:"class"`
	Type        ComponentType `json:"type"`
	Annotations []string      `json:"annotations"`
}

// SourceSummary is the structural summary of one Java source unit.
type SourceSummary struct {
	Language     Language      `json:"language"`
	Parser       string        `json:"parser"`
	Package      string        `json:"package"`
	Imports      []string      `json:"imports"`
	Declarations []Declaration `json:"declarations"`
	Annotations  []string      `json:"annotations"`
	Components   []Component   `json:"spring_components"`
	Endpoints    []Endpoint    `json:"endpoints"`
	Javadoc      Javadoc       `json:"javadoc"`
}
