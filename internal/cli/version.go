package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X github.com/mvp-joe/springctx/internal/cli.Version=...".
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information and the active analysis backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, Version)
			return nil
		}

		fmt.Fprintf(out, "springctx %s (%s, built %s, %s)\n", Version, GitCommit, BuildDate, runtime.Version())

		cfg, err := loadConfig()
		if err != nil {
			return nil
		}
		cache := "off"
		if cfg.Cache.Enabled {
			cache = fmt.Sprintf("%d entries, ttl %s", cfg.Cache.Capacity, cfg.Cache.TTL)
		}
		fmt.Fprintf(out, "parser: %s\n", cfg.Analysis.Parser)
		fmt.Fprintf(out, "cache:  %s\n", cache)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print the version number only")
	rootCmd.AddCommand(versionCmd)
}
