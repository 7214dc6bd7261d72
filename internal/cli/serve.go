package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvp-joe/springctx/internal/analysis"
	"github.com/mvp-joe/springctx/internal/mcp"
)

var serveReadOnly bool

// serveCmd starts the MCP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server on stdin/stdout.

The server exposes the analysis, file and project tools for the workspace.
Logs are written to stderr so they never interfere with the protocol stream.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveReadOnly, "read-only", false, "do not register create_file, update_file and delete_file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	server, err := openServer(cmd, serveReadOnly)
	if err != nil {
		return err
	}
	defer server.Close()

	return server.Serve(cmd.Context())
}

// openServer builds the tool server for the configured workspace.
func openServer(cmd *cobra.Command, readOnly bool, opts ...analysis.Option) (*mcp.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())
	log.WithField("root", cfg.Workspace.Root).Debug("loaded configuration")

	services, err := mcp.NewServices(cfg, mcp.NewWorkspaceProvider(cfg), opts...)
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(services, log, mcp.ServerOptions{
		Version:  Version,
		ReadOnly: readOnly || cfg.Tools.ReadOnly,
	}), nil
}
