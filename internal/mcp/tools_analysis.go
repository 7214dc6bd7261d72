package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/springctx/internal/analysis"
	mcputils "github.com/mvp-joe/springctx/internal/mcp-utils"
)

// AnalyzeCodeRequest represents the analyze_code parameters.
type AnalyzeCodeRequest struct {
	Path         string `json:"path"`
	AnalysisType string `json:"analysis_type"` // structure, dependencies, quality, all (default)
}

// AddAnalyzeCodeTool registers analyze_code.
func AddAnalyzeCodeTool(r *Registry, analyzer *analysis.Analyzer) {
	tool := mcp.NewTool(
		"analyze_code",
		mcp.WithDescription("Analyze code structure, dependencies, and quality of a Java file, config file or project directory. Directories report Spring layout, Maven/Gradle dependencies, the package dependency graph with cycles, and aggregate quality."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to file or directory to analyze, relative to the workspace root")),
		mcp.WithString("analysis_type",
			mcp.Enum(string(analysis.ModeStructure), string(analysis.ModeDependencies), string(analysis.ModeQuality), string(analysis.ModeAll)),
			mcp.Description("Which analysis to run (default: all)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req AnalyzeCodeRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		if req.Path == "" {
			return nil, errRequired("path")
		}
		mode, err := analysis.ParseMode(req.AnalysisType)
		if err != nil {
			return nil, err
		}
		return analyzer.Analyze(ctx, req.Path, mode)
	})
}

// SignaturesRequest represents the get_function_signatures parameters.
type SignaturesRequest struct {
	FilePath string `json:"file_path"`
	Language string `json:"language"`
}

// AddSignaturesTool registers get_function_signatures.
func AddSignaturesTool(r *Registry, analyzer *analysis.Analyzer) {
	tool := mcp.NewTool(
		"get_function_signatures",
		mcp.WithDescription("Extract class, constructor, method and field signatures from a Java file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the file")),
		mcp.WithString("language",
			mcp.Description("Programming language (default: detected from the extension; only java is supported)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req SignaturesRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		if req.FilePath == "" {
			return nil, errRequired("file_path")
		}
		return analyzer.Signatures(ctx, req.FilePath, req.Language)
	})
}

// GenerateDocsRequest represents the generate_docs parameters.
type GenerateDocsRequest struct {
	Target string `json:"target"`
	Format string `json:"format"`
}

// AddGenerateDocsTool registers generate_docs.
func AddGenerateDocsTool(r *Registry, analyzer *analysis.Analyzer) {
	tool := mcp.NewTool(
		"generate_docs",
		mcp.WithDescription("Generate documentation for a Java file or a whole project: components, entities, configuration and REST API endpoints."),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("File or directory to document")),
		mcp.WithString("format",
			mcp.Enum(string(analysis.FormatMarkdown), string(analysis.FormatHTML), string(analysis.FormatJSON)),
			mcp.Description("Output format (default: markdown)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req GenerateDocsRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		if req.Target == "" {
			return nil, errRequired("target")
		}
		format, err := analysis.ParseFormat(req.Format)
		if err != nil {
			return nil, err
		}
		return analyzer.GenerateDocs(ctx, req.Target, format)
	})
}

// ExtractCommentsRequest represents the extract_comments parameters.
type ExtractCommentsRequest struct {
	FilePath          string `json:"file_path"`
	IncludeDocstrings *bool  `json:"include_docstrings"`
}

// AddExtractCommentsTool registers extract_comments.
func AddExtractCommentsTool(r *Registry, analyzer *analysis.Analyzer) {
	tool := mcp.NewTool(
		"extract_comments",
		mcp.WithDescription("Extract comments, structured Javadoc and Spring REST endpoints from a Java file."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to file")),
		mcp.WithBoolean("include_docstrings",
			mcp.Description("Include parsed Javadoc (default: true)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req ExtractCommentsRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		if req.FilePath == "" {
			return nil, errRequired("file_path")
		}
		return analyzer.ExtractComments(ctx, req.FilePath, boolOr(req.IncludeDocstrings, true))
	})
}

func errRequired(name string) error {
	return fmt.Errorf("%s parameter is required", name)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
