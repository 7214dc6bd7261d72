package analysis

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/springctx/internal/extract"
	"github.com/mvp-joe/springctx/internal/files"
)

// Test Plan for documentation, comments and signatures:
// - File docs carry Spring info, markdown sections and endpoint tables
// - Project docs collect components, entities, configuration keys and full API routes
// - html output is rendered markdown; json carries no rendered content
// - Comments, Javadoc and endpoints of a Java file; non-Java files are rejected
// - Signatures only for Java; languages can be forced by name

var fixedClock = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

func docsAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "springapp"))
	require.NoError(t, err)
	return New(files.NewOsProvider(root), extract.NewExtractor(), WithClock(fixedClock))
}

const controllerPath = "src/main/java/com/example/demo/controller/UserController.java"

// Test: format parsing
func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatMarkdown, "md": FormatMarkdown, "HTML": FormatHTML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// Test: file documentation
func TestGenerateDocs_File(t *testing.T) {
	t.Parallel()

	a := docsAnalyzer(t)
	doc, err := a.GenerateDocs(context.Background(), controllerPath, FormatMarkdown)
	require.NoError(t, err)

	require.NotNil(t, doc.File)
	assert.Nil(t, doc.Project)
	assert.Equal(t, fixedClock(), doc.GeneratedAt)
	assert.Equal(t, "com.example.demo.controller", doc.File.Package)
	assert.True(t, doc.File.Spring.IsComponent)
	assert.Equal(t, extract.ComponentController, doc.File.Spring.ComponentType)
	assert.Len(t, doc.File.Spring.Endpoints, 4)

	md := doc.Content
	assert.Contains(t, md, "# UserController\n")
	assert.Contains(t, md, "**Package:** `com.example.demo.controller`")
	assert.Contains(t, md, "**Spring Component:** Controller")
	assert.Contains(t, md, "REST API for users.")
	assert.Contains(t, md, "## Annotations\n\n- `@RestController`\n- `@RequestMapping`\n")
	assert.Contains(t, md, "### `User get(Long id)`")
	assert.Contains(t, md, "- `id`: the user id")
	assert.Contains(t, md, "**Returns:** the user")
	assert.Contains(t, md, "- `UserNotFoundException`: when no user has the id")
	assert.Contains(t, md, "| GET | `/api/users/{id}` | `get` | `User` |")
	assert.Contains(t, md, "| POST | `/api/users` | `create` | `User` |")
}

// Test: html and json formats
func TestGenerateDocs_Formats(t *testing.T) {
	t.Parallel()

	a := docsAnalyzer(t)
	ctx := context.Background()

	html, err := a.GenerateDocs(ctx, controllerPath, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, html.Content, "<h1>UserController</h1>")
	assert.Contains(t, html.Content, "<table>")

	js, err := a.GenerateDocs(ctx, controllerPath, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, js.Content)
	assert.NotNil(t, js.File)

	_, err = a.GenerateDocs(ctx, controllerPath, Format("pdf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = a.GenerateDocs(ctx, "pom.xml", FormatMarkdown)
	assert.ErrorIs(t, err, ErrNotJava)
}

// Test: project documentation
func TestGenerateDocs_Project(t *testing.T) {
	t.Parallel()

	a := docsAnalyzer(t)
	doc, err := a.GenerateDocs(context.Background(), ".", FormatMarkdown)
	require.NoError(t, err)

	p := doc.Project
	require.NotNil(t, p)
	assert.Equal(t, "springapp", p.Name)
	assert.Equal(t, BuildMaven, p.Structure.BuildSystem)
	assert.True(t, p.Structure.IsMaven)
	assert.True(t, p.Structure.HasMainClass)
	assert.Equal(t, 7, p.Structure.TotalJavaFiles)
	assert.Equal(t, 1, p.Structure.TotalTestFiles)
	assert.Len(t, p.Structure.Packages, 6)

	require.Len(t, p.Controllers, 1)
	assert.Equal(t, "UserController", p.Controllers[0].Class)
	assert.Equal(t, "src/main/java/com/example/demo/controller/UserController.java", p.Controllers[0].File)
	require.Len(t, p.Services, 1)
	require.Len(t, p.Repositories, 1)
	require.Len(t, p.Entities, 1)
	assert.Equal(t, "User", p.Entities[0].Class)

	require.Len(t, p.API, 4)
	assert.Equal(t, APIEndpoint{
		Controller:  "UserController",
		HTTPMethod:  extract.VerbGet,
		Path:        "/api/users",
		MethodName:  "list",
		ReturnType:  "List<User>",
		Description: "Lists all users.",
	}, p.API[0])
	assert.Equal(t, "/api/users/{id}", p.API[3].Path)
	assert.Equal(t, extract.VerbDelete, p.API[3].HTTPMethod)

	require.Len(t, p.Configuration, 2)
	assert.Equal(t, "src/main/resources/application-dev.properties", p.Configuration[0].File)
	assert.Contains(t, p.Configuration[1].Keys, "spring.datasource.url")

	md := doc.Content
	assert.Contains(t, md, "# springapp API Documentation\n")
	assert.Contains(t, md, "*Generated on 2024-05-01 12:30:00 UTC*")
	assert.Contains(t, md, "### GET /api/users/{id}")
	assert.Contains(t, md, "## Entities\n\n- `User` (`com.example.demo.model`)")
}

// Test: route joining
func TestJoinRoute(t *testing.T) {
	t.Parallel()

	tests := []struct{ base, route, want string }{
		{"", "", "/"},
		{"/api", "", "/api"},
		{"/api/", "/users", "/api/users"},
		{"", "users", "/users"},
		{"api", "{id}", "/api/{id}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinRoute(tt.base, tt.route), "%q + %q", tt.base, tt.route)
	}
}

// Test: comment extraction
func TestExtractComments(t *testing.T) {
	t.Parallel()

	a := docsAnalyzer(t)
	ctx := context.Background()

	report, err := a.ExtractComments(ctx, controllerPath, true)
	require.NoError(t, err)
	assert.Equal(t, 52, report.TotalLines)
	require.Len(t, report.Comments, 3)
	for _, c := range report.Comments {
		assert.Equal(t, extract.CommentJavadoc, c.Kind)
	}
	require.NotNil(t, report.Javadoc)
	assert.Len(t, report.Javadoc.Classes, 1)
	assert.Len(t, report.Javadoc.Methods, 2)
	assert.Len(t, report.Endpoints, 4)

	report, err = a.ExtractComments(ctx, controllerPath, false)
	require.NoError(t, err)
	assert.Nil(t, report.Javadoc)

	_, err = a.ExtractComments(ctx, "src/main/resources/application.yml", true)
	assert.ErrorIs(t, err, ErrNotJava)
}

// Test: signatures
func TestSignatures(t *testing.T) {
	t.Parallel()

	a := docsAnalyzer(t)
	ctx := context.Background()

	sigs, err := a.Signatures(ctx, controllerPath, "")
	require.NoError(t, err)
	assert.Equal(t, "com.example.demo.controller", sigs.Package)
	assert.Equal(t, "regex", sigs.Parser)
	require.Len(t, sigs.Declarations, 1)
	decl := sigs.Declarations[0]
	assert.Len(t, decl.Methods, 4)
	require.Len(t, decl.Constructors, 1)
	assert.Equal(t, "UserController", decl.Constructors[0].Name)

	_, err = a.Signatures(ctx, controllerPath, "JAVA")
	require.NoError(t, err)

	_, err = a.Signatures(ctx, controllerPath, "python")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	_, err = a.Signatures(ctx, controllerPath, "cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	_, err = a.Signatures(ctx, "pom.xml", "")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}
