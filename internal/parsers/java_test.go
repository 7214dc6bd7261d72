package parsers

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for JavaParser:
// - Extracts classes, interfaces, enums and annotation types with their kinds
// - Extracts extends / implements, annotations and stereotype classification
// - Extracts methods, constructors, parameters (with annotations, varargs) and throws
// - Extracts fields including multi-declarator fields
// - Nested types are attached to their parent
// - Agrees with the regex backend on a realistic controller
// - Empty input gives an empty, non-nil list

const testController = "../../testdata/springapp/src/main/java/com/example/demo/controller/UserController.java"

// Test: declaration kinds and type relations
func TestJavaParser_Declarations(t *testing.T) {
	t.Parallel()

	src := `
package com.example;

@Service
public class OrderService extends BaseService implements Auditable, Comparable<OrderService> {
    private int a, b;
    @Autowired
    private OrderRepository repository;

    OrderService(OrderRepository repository) {
        this.repository = repository;
    }

    public <T> List<T> find(@RequestParam("q") String query, String... tags) throws IOException {
        return null;
    }

    static class Line { void price() {} }
}

interface Priced extends Comparable<Priced>, Serializable { long cents(); }

enum Status { OPEN, CLOSED; boolean terminal() { return this == CLOSED; } }

public @interface Audit { String value() default ""; }
`
	decls := NewJavaParser().Declarations(src)
	require.Len(t, decls, 4)

	svc := decls[0]
	assert.Equal(t, extract.KindClass, svc.Kind)
	assert.Equal(t, "OrderService", svc.Name)
	assert.Equal(t, "BaseService", svc.Extends)
	assert.Equal(t, []string{"Auditable", "Comparable<OrderService>"}, svc.Implements)
	assert.Equal(t, []string{"@Service"}, svc.Annotations)
	assert.Equal(t, extract.ComponentService, svc.Component)

	var fieldNames []string
	for _, f := range svc.Fields {
		fieldNames = append(fieldNames, f.Name)
	}
	assert.Equal(t, []string{"a", "b", "repository"}, fieldNames)
	assert.Equal(t, []string{"@Autowired"}, svc.Fields[2].Annotations)

	require.Len(t, svc.Constructors, 1)
	assert.Equal(t, "OrderService", svc.Constructors[0].Name)

	require.Len(t, svc.Methods, 1)
	find := svc.Methods[0]
	assert.Equal(t, "List<T>", find.ReturnType)
	assert.Equal(t, []string{"public"}, find.Modifiers)
	assert.Equal(t, []string{"IOException"}, find.Throws)
	assert.Equal(t, []extract.Parameter{
		{Type: "String", Name: "query", Annotations: []string{"@RequestParam"}},
		{Type: "String...", Name: "tags"},
	}, find.Parameters)

	require.Len(t, svc.Nested, 1)
	assert.Equal(t, "Line", svc.Nested[0].Name)
	require.Len(t, svc.Nested[0].Methods, 1)
	assert.Equal(t, "price", svc.Nested[0].Methods[0].Name)

	priced := decls[1]
	assert.Equal(t, extract.KindInterface, priced.Kind)
	assert.Equal(t, []string{"Comparable<Priced>", "Serializable"}, priced.Implements)
	require.Len(t, priced.Methods, 1)
	assert.Equal(t, "cents", priced.Methods[0].Name)

	status := decls[2]
	assert.Equal(t, extract.KindEnum, status.Kind)
	require.Len(t, status.Methods, 1)
	assert.Equal(t, "terminal", status.Methods[0].Name)

	audit := decls[3]
	assert.Equal(t, extract.KindAnnotation, audit.Kind)
	require.Len(t, audit.Methods, 1)
	assert.Equal(t, "value", audit.Methods[0].Name)
	assert.Equal(t, "String", audit.Methods[0].ReturnType)
}

// Test: both backends agree on a realistic controller
func TestJavaParser_MatchesRegexBackend(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(testController)
	require.NoError(t, err)

	got := NewJavaParser().Declarations(string(data))
	want := extract.RegexParser{}.Declarations(string(data))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("backends disagree (-regex +treesitter):\n%s", diff)
	}
}

// Test: the parser plugs into the extractor
func TestJavaParser_WithExtractor(t *testing.T) {
	t.Parallel()

	e := extract.NewExtractor(extract.WithDeclarationParser(NewJavaParser()))
	summary := e.Summarize("@RestController class C { @GetMapping(\"/h\") public String h() { return \"\"; } }")

	assert.Equal(t, "treesitter", summary.Parser)
	require.Len(t, summary.Declarations, 1)
	assert.Equal(t, extract.ComponentController, summary.Declarations[0].Component)
	require.Len(t, summary.Endpoints, 1)
}

// Test: empty and garbage input
func TestJavaParser_Empty(t *testing.T) {
	t.Parallel()

	p := NewJavaParser()
	assert.Equal(t, "treesitter", p.Name())

	decls := p.Declarations("")
	assert.NotNil(t, decls)
	assert.Empty(t, decls)
	assert.NotPanics(t, func() { p.Declarations("}}} class {{{ ((") })
}
