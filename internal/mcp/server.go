// Package mcp exposes the springctx services as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/springctx/internal/analysis"
)

// ServerName is announced to MCP clients.
const ServerName = "springctx"

// ServerOptions configures a Server.
type ServerOptions struct {
	Version  string
	ReadOnly bool // omit create_file, update_file and delete_file
}

// Server manages the MCP server lifecycle.
type Server struct {
	services *Services
	registry *Registry
	mcp      *server.MCPServer
	log      logrus.FieldLogger
}

// NewServer registers the tools backed by services.
func NewServer(services *Services, log logrus.FieldLogger, opts ServerOptions) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	mcpServer := server.NewMCPServer(
		ServerName,
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	registry := NewRegistry(mcpServer, log)

	AddAnalyzeCodeTool(registry, services.Analyzer)
	AddSignaturesTool(registry, services.Analyzer)
	AddGenerateDocsTool(registry, services.Analyzer)
	AddExtractCommentsTool(registry, services.Analyzer)

	AddListFilesTool(registry, services.Files)
	AddReadFileTool(registry, services.Files)
	AddSearchFilesTool(registry, services.Files)
	if !opts.ReadOnly {
		AddCreateFileTool(registry, services.Files)
		AddUpdateFileTool(registry, services.Files)
		AddDeleteFileTool(registry, services.Files)
	}

	AddProjectStructureTool(registry, services.Projects)
	AddDetectTechnologiesTool(registry, services.Projects)

	return &Server{services: services, registry: registry, mcp: mcpServer, log: log}
}

// Tools lists the registered tools.
func (s *Server) Tools() []mcp.Tool {
	return s.registry.Tools()
}

// Call runs a tool in process.
func (s *Server) Call(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	return s.registry.Call(ctx, name, args)
}

// Analyzer returns the analysis backend shared by the analysis tools.
func (s *Server) Analyzer() *analysis.Analyzer {
	return s.services.Analyzer
}

// Serve starts the MCP server on stdio and blocks until the client disconnects, a
// signal arrives or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("root", s.services.Provider.Root()).Info("starting MCP server on stdio")
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-sigCh:
		s.log.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the services.
func (s *Server) Close() {
	s.services.Close()
}
