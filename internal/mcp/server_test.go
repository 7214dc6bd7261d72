package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/springctx/internal/config"
	"github.com/mvp-joe/springctx/internal/files"
)

// Test Plan for the MCP dispatcher:
// - All twelve tools are registered; read-only mode omits the write tools
// - Tool results are JSON; stringified arguments are coerced
// - Missing paths, missing parameters and bad enums become {"error": ...} results
// - create_file refuses to overwrite; update_file leaves a .backup; delete_file backs up
// - read_file can drop metadata and reports binary files by size
// - Panics in a tool are recovered into error results
// - Unknown tools and malformed arguments

const controllerSource = `package com.acme.web;

import org.springframework.web.bind.annotation.*;

/** Orders API. */
@RestController
@RequestMapping("/orders")
public class OrderController {
    /** Lists orders. */
    @GetMapping
    public List<Order> list() { return null; }

    @PostMapping("/{id}")
    public Order update(@PathVariable Long id) { return null; }
}
`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testServer(t *testing.T, readOnly bool) (*Server, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/pom.xml", []byte(`<project><artifactId>shop</artifactId></project>`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/src/main/java/com/acme/web/OrderController.java", []byte(controllerSource), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/src/main/resources/application.yml", []byte("server:\n  port: 9090\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ws/logo.png", []byte{0x89, 'P', 'N', 'G', 0, 0, 1}, 0o644))

	cfg := config.Default()
	services, err := NewServices(cfg, files.NewProvider(fs, "/ws"))
	require.NoError(t, err)
	s := NewServer(services, quietLogger(), ServerOptions{Version: "test", ReadOnly: readOnly})
	t.Cleanup(s.Close)
	return s, fs
}

func call(t *testing.T, s *Server, name string, args map[string]interface{}) (map[string]interface{}, bool) {
	t.Helper()
	result, err := s.Call(context.Background(), name, args)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body), text.Text)
	return body, result.IsError
}

func toolNames(s *Server) []string {
	var names []string
	for _, tool := range s.Tools() {
		names = append(names, tool.Name)
	}
	return names
}

// Test: tool registration
func TestNewServer_Tools(t *testing.T) {
	t.Parallel()

	s, _ := testServer(t, false)
	assert.Equal(t, []string{
		"analyze_code", "create_file", "delete_file", "detect_technologies", "extract_comments",
		"generate_docs", "get_function_signatures", "get_project_structure", "list_files",
		"read_file", "search_files", "update_file",
	}, toolNames(s))

	ro, _ := testServer(t, true)
	names := toolNames(ro)
	assert.Len(t, names, 9)
	assert.NotContains(t, names, "create_file")
	assert.NotContains(t, names, "update_file")
	assert.NotContains(t, names, "delete_file")
}

// Test: analysis tools
func TestAnalysisTools(t *testing.T) {
	t.Parallel()

	s, _ := testServer(t, false)
	javaPath := "src/main/java/com/acme/web/OrderController.java"

	body, isErr := call(t, s, "analyze_code", map[string]interface{}{"path": javaPath, "analysis_type": "structure"})
	require.False(t, isErr, body)
	assert.Equal(t, "structure", body["analysis_type"])
	assert.NotNil(t, body["structure"])
	assert.Nil(t, body["quality"])

	body, isErr = call(t, s, "get_function_signatures", map[string]interface{}{"file_path": javaPath})
	require.False(t, isErr, body)
	assert.Equal(t, "com.acme.web", body["package"])
	classes := body["classes"].([]interface{})
	require.Len(t, classes, 1)

	body, isErr = call(t, s, "extract_comments", map[string]interface{}{"file_path": javaPath, "include_docstrings": "false"})
	require.False(t, isErr, body)
	assert.Nil(t, body["javadoc"])
	assert.Len(t, body["spring_endpoints"], 2)

	body, isErr = call(t, s, "generate_docs", map[string]interface{}{"target": javaPath})
	require.False(t, isErr, body)
	assert.Contains(t, body["content"], "# OrderController")

	body, isErr = call(t, s, "generate_docs", map[string]interface{}{"target": javaPath, "format": "pdf"})
	assert.True(t, isErr)
	assert.Contains(t, body["error"], "pdf")
}

// Test: structured errors
func TestTools_Errors(t *testing.T) {
	t.Parallel()

	s, _ := testServer(t, false)

	tests := []struct {
		tool    string
		args    map[string]interface{}
		message string
	}{
		{"analyze_code", map[string]interface{}{"path": "missing.java"}, "does not exist"},
		{"analyze_code", map[string]interface{}{}, "path parameter is required"},
		{"analyze_code", map[string]interface{}{"path": ".", "analysis_type": "security"}, "unsupported analysis type"},
		{"get_function_signatures", map[string]interface{}{"file_path": "pom.xml"}, "language not yet supported"},
		{"read_file", map[string]interface{}{"file_path": "nope.txt"}, "does not exist"},
		{"list_files", map[string]interface{}{"directory": "src", "pattern": "[*.java"}, "invalid glob pattern"},
		{"search_files", map[string]interface{}{"directory": "src"}, "search term is required"},
		{"get_project_structure", map[string]interface{}{"root_path": "pom.xml"}, "not a directory"},
		{"detect_technologies", map[string]interface{}{}, "project_path parameter is required"},
		{"get_project_structure", map[string]interface{}{"root_path": ".", "depth": "deep"}, "invalid arguments"},
	}
	for _, tt := range tests {
		body, isErr := call(t, s, tt.tool, tt.args)
		assert.True(t, isErr, "%s %v", tt.tool, tt.args)
		assert.Contains(t, body["error"], tt.message, "%s %v", tt.tool, tt.args)
	}
}

// Test: file tools
func TestFileTools(t *testing.T) {
	t.Parallel()

	s, fs := testServer(t, false)

	body, isErr := call(t, s, "create_file", map[string]interface{}{"file_path": "notes/todo.txt", "content": "first"})
	require.False(t, isErr, body)
	assert.Equal(t, true, body["success"])

	body, isErr = call(t, s, "create_file", map[string]interface{}{"file_path": "notes/todo.txt", "content": "again"})
	assert.True(t, isErr)
	assert.Contains(t, body["error"], "file already exists")

	body, isErr = call(t, s, "update_file", map[string]interface{}{"file_path": "notes/todo.txt", "content": "second"})
	require.False(t, isErr, body)
	backup, err := afero.ReadFile(fs, "/ws/notes/todo.txt.backup")
	require.NoError(t, err)
	assert.Equal(t, "first", string(backup))

	body, isErr = call(t, s, "read_file", map[string]interface{}{"file_path": "notes/todo.txt", "include_metadata": false})
	require.False(t, isErr, body)
	assert.Equal(t, "second", body["content"])
	assert.Nil(t, body["metadata"])

	body, isErr = call(t, s, "read_file", map[string]interface{}{"file_path": "logo.png"})
	require.False(t, isErr, body)
	assert.Equal(t, "<Binary file - 7 bytes>", body["content"])
	assert.NotNil(t, body["metadata"])

	body, isErr = call(t, s, "search_files", map[string]interface{}{"directory": ".", "search_term": "PORT", "file_pattern": "*.yml"})
	require.False(t, isErr, body)
	assert.Equal(t, float64(1), body["total_matches"])

	body, isErr = call(t, s, "list_files", map[string]interface{}{"directory": ".", "recursive": "false"})
	require.False(t, isErr, body)
	assert.Equal(t, float64(2), body["total_files"])

	body, isErr = call(t, s, "delete_file", map[string]interface{}{"file_path": "notes/todo.txt", "create_backup": true})
	require.False(t, isErr, body)
	exists, err := afero.Exists(fs, "/ws/notes/todo.txt")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = afero.Exists(fs, "/ws/notes/.backup/todo.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

// Test: project tools
func TestProjectTools(t *testing.T) {
	t.Parallel()

	s, _ := testServer(t, false)

	body, isErr := call(t, s, "get_project_structure", map[string]interface{}{"root_path": ".", "depth": "1", "include_file_sizes": "true"})
	require.False(t, isErr, body)
	assert.Equal(t, float64(4), body["total_files"])
	tree := body["directory_tree"].(map[string]interface{})
	assert.Len(t, tree["children"], 3)
	spring := body["spring_boot_analysis"].(map[string]interface{})
	assert.Equal(t, true, spring["is_spring_boot_project"])

	body, isErr = call(t, s, "detect_technologies", map[string]interface{}{"project_path": "."})
	require.False(t, isErr, body)
	assert.Equal(t, "maven", body["build_system"])
}

// Test: panics and malformed calls
func TestRegistry_Boundary(t *testing.T) {
	t.Parallel()

	r := NewRegistry(server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true)), quietLogger())
	r.add(mcp.NewTool("boom"), func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		panic("kaboom")
	})

	result, err := r.Call(context.Background(), "boom", nil)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.JSONEq(t, `{"error": "internal error: kaboom"}`, text.Text)

	_, err = r.Call(context.Background(), "missing", nil)
	assert.ErrorContains(t, err, "unknown tool: missing")

	handler := r.handlers["boom"]
	result, err = handler(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: "not a map"}})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	text, _ = mcp.AsTextContent(result.Content[0])
	assert.JSONEq(t, `{"error": "invalid arguments format"}`, text.Text)
}
