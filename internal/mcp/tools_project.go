package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	mcputils "github.com/mvp-joe/springctx/internal/mcp-utils"
	"github.com/mvp-joe/springctx/internal/project"
)

// ProjectStructureRequest represents the get_project_structure parameters.
type ProjectStructureRequest struct {
	RootPath         string `json:"root_path"`
	Depth            int    `json:"depth"`
	IncludeFileSizes bool   `json:"include_file_sizes"`
}

// AddProjectStructureTool registers get_project_structure.
func AddProjectStructureTool(r *Registry, svc *project.Service) {
	tool := mcp.NewTool(
		"get_project_structure",
		mcp.WithDescription("Get the project directory tree with totals and file types, the Java source layout, the Spring Boot setup and the build system."),
		mcp.WithString("root_path",
			mcp.Required(),
			mcp.Description("Root directory path")),
		mcp.WithNumber("depth",
			mcp.Description("Tree depth (default: 3, max: 20)")),
		mcp.WithBoolean("include_file_sizes",
			mcp.Description("Report file sizes (default: false)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req ProjectStructureRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		if req.RootPath == "" {
			return nil, errRequired("root_path")
		}
		return svc.Structure(ctx, req.RootPath, req.Depth, req.IncludeFileSizes)
	})
}

// DetectTechnologiesRequest represents the detect_technologies parameters.
type DetectTechnologiesRequest struct {
	ProjectPath string `json:"project_path"`
}

// AddDetectTechnologiesTool registers detect_technologies.
func AddDetectTechnologiesTool(r *Registry, svc *project.Service) {
	tool := mcp.NewTool(
		"detect_technologies",
		mcp.WithDescription("Detect the Java version, Spring Boot version and starters, build system, databases, testing and other frameworks of a project."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Path to project directory")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req DetectTechnologiesRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		if req.ProjectPath == "" {
			return nil, errRequired("project_path")
		}
		return svc.DetectTechnologies(ctx, req.ProjectPath)
	})
}
