package cmd

import (
	"fmt"
	"os"

	"dex-wiki/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envDir      string
	dataDirFlag string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dex-wiki",
	Short: "Record store and indexes for the dex wiki",
	Long: `dex-wiki loads creature, move, ability and item records from the parsed
JSON database, caches them, and builds the reverse indexes the wiki pages
are generated from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console output with ISO8601 timestamps reads best on a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "directory holding the .env file")
	RootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data root, overrides DATA_DIR")
}
