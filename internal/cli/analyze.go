package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/springctx/internal/analysis"
)

var (
	analyzeMode  string
	analyzeQuiet bool
)

// analyzeCmd runs analyze_code from the command line
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a Java file, config file or project directory",
	Long: `Analyze code structure, dependencies and quality and print the report as JSON.

The path is relative to the workspace root and defaults to the root itself.
Directory analysis shows a progress bar on stderr unless --quiet is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", string(analysis.ModeAll), "analysis type: structure, dependencies, quality or all")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "suppress the progress bar")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	mode, err := analysis.ParseMode(analyzeMode)
	if err != nil {
		return err
	}
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	progress := newAnalysisProgress(cmd.ErrOrStderr(), analyzeQuiet)
	server, err := openServer(cmd, true, analysis.WithProgress(progress.report))
	if err != nil {
		return err
	}
	defer server.Close()

	report, err := server.Analyzer().Analyze(cmd.Context(), path, mode)
	progress.finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
