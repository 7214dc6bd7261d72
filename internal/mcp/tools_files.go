package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/springctx/internal/files"
	mcputils "github.com/mvp-joe/springctx/internal/mcp-utils"
)

// ListFilesRequest represents the list_files parameters.
type ListFilesRequest struct {
	Directory string `json:"directory"`
	Pattern   string `json:"pattern"`
	Recursive *bool  `json:"recursive"`
}

// AddListFilesTool registers list_files.
func AddListFilesTool(r *Registry, svc *files.Service) {
	tool := mcp.NewTool(
		"list_files",
		mcp.WithDescription("List files in a directory with size, modification time, type and Java/config flags."),
		mcp.WithString("directory",
			mcp.Required(),
			mcp.Description("Directory path")),
		mcp.WithString("pattern",
			mcp.Description("Glob pattern (e.g., *.java, src/**/*.yml)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories (default: true)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req ListFilesRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		return svc.ListFiles(ctx, req.Directory, req.Pattern, boolOr(req.Recursive, true))
	})
}

// ReadFileRequest represents the read_file parameters.
type ReadFileRequest struct {
	FilePath        string `json:"file_path"`
	IncludeMetadata *bool  `json:"include_metadata"`
}

// AddReadFileTool registers read_file.
func AddReadFileTool(r *Registry, svc *files.Service) {
	tool := mcp.NewTool(
		"read_file",
		mcp.WithDescription("Read file content with metadata. Java files include a structural overview and config files their interesting keys; binary files are reported by size."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to file")),
		mcp.WithBoolean("include_metadata",
			mcp.Description("Include file metadata (default: true)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req ReadFileRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		result, err := svc.ReadFile(ctx, req.FilePath)
		if err != nil {
			return nil, err
		}
		if !boolOr(req.IncludeMetadata, true) {
			result.Metadata = nil
		}
		return result, nil
	})
}

// CreateFileRequest represents the create_file parameters.
type CreateFileRequest struct {
	FilePath  string `json:"file_path"`
	Content   string `json:"content"`
	Overwrite bool   `json:"overwrite"`
}

// AddCreateFileTool registers create_file.
func AddCreateFileTool(r *Registry, svc *files.Service) {
	tool := mcp.NewTool(
		"create_file",
		mcp.WithDescription("Create a new file, creating parent directories. Existing files are only replaced when overwrite is set."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the file to create")),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("File content")),
		mcp.WithBoolean("overwrite",
			mcp.Description("Replace an existing file (default: false)")),
		mcp.WithDestructiveHintAnnotation(true),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req CreateFileRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		return svc.CreateFile(ctx, req.FilePath, req.Content, req.Overwrite)
	})
}

// UpdateFileRequest represents the update_file parameters.
type UpdateFileRequest struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// AddUpdateFileTool registers update_file.
func AddUpdateFileTool(r *Registry, svc *files.Service) {
	tool := mcp.NewTool(
		"update_file",
		mcp.WithDescription("Replace the content of an existing file. The previous content is kept in <file>.backup."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the file to update")),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("New file content")),
		mcp.WithDestructiveHintAnnotation(true),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req UpdateFileRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		return svc.UpdateFile(ctx, req.FilePath, req.Content)
	})
}

// DeleteFileRequest represents the delete_file parameters.
type DeleteFileRequest struct {
	FilePath     string `json:"file_path"`
	CreateBackup bool   `json:"create_backup"`
}

// AddDeleteFileTool registers delete_file.
func AddDeleteFileTool(r *Registry, svc *files.Service) {
	tool := mcp.NewTool(
		"delete_file",
		mcp.WithDescription("Delete a file or directory, optionally keeping a copy under .backup/."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the file or directory to delete")),
		mcp.WithBoolean("create_backup",
			mcp.Description("Copy to .backup/ before deleting (default: false)")),
		mcp.WithDestructiveHintAnnotation(true),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req DeleteFileRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		return svc.DeleteFile(ctx, req.FilePath, req.CreateBackup)
	})
}

// SearchFilesRequest represents the search_files parameters.
type SearchFilesRequest struct {
	Directory   string `json:"directory"`
	SearchTerm  string `json:"search_term"`
	FilePattern string `json:"file_pattern"`
}

// AddSearchFilesTool registers search_files.
func AddSearchFilesTool(r *Registry, svc *files.Service) {
	tool := mcp.NewTool(
		"search_files",
		mcp.WithDescription("Case-insensitive text search across files, reporting matching lines with line numbers."),
		mcp.WithString("directory",
			mcp.Required(),
			mcp.Description("Directory to search")),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("Text to find")),
		mcp.WithString("file_pattern",
			mcp.Description("Glob pattern restricting the searched files (e.g., *.java)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	r.add(tool, func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
		var req SearchFilesRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return nil, err
		}
		return svc.SearchFiles(ctx, req.Directory, req.SearchTerm, req.FilePattern)
	})
}
