package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

var callArgs string

// callCmd invokes a single tool in process
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one MCP tool and print its JSON result",
	Long: `Invoke one tool exactly as an MCP client would and print the result.

Arguments are passed as a JSON object, for example:
  springctx call get_project_structure --args '{"root_path": ".", "depth": 2}'

The command fails when the tool reports an error; the error payload is still printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callArgs, "args", "{}", "tool arguments as a JSON object")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	var toolArgs map[string]interface{}
	if err := json.Unmarshal([]byte(callArgs), &toolArgs); err != nil {
		return fmt.Errorf("--args must be a JSON object: %w", err)
	}

	server, err := openServer(cmd, false)
	if err != nil {
		return err
	}
	defer server.Close()

	result, err := server.Call(cmd.Context(), args[0], toolArgs)
	if err != nil {
		return err
	}
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			fmt.Fprintln(cmd.OutOrStdout(), text.Text)
		}
	}
	if result.IsError {
		return errors.New("tool returned an error")
	}
	return nil
}
