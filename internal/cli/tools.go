package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var toolsJSON bool

// toolsCmd lists the registered tools
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools served for this workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := openServer(cmd, false)
		if err != nil {
			return err
		}
		defer server.Close()

		tools := server.Tools()
		if toolsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tools)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, tool := range tools {
			fmt.Fprintf(w, "%s\t%s\n", tool.Name, tool.Description)
		}
		return w.Flush()
	},
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "print the full tool definitions with input schemas")
	rootCmd.AddCommand(toolsCmd)
}
