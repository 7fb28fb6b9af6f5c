package cmd

import (
	"fmt"

	"dex-wiki/core/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// preloadCmd represents the preload command
var preloadCmd = &cobra.Command{
	Use:   "preload [subfolder...]",
	Short: "Load every creature into the cache and report timings",
	Long: `Reads every creature file of the given subfolders (all of them by default)
in parallel and inserts them into the record cache. Useful to measure how long
a full site build spends on disk access.`,
	ValidArgs: models.CreatureSubfolders,
	Args:      cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		stats, err := d.store.Preload(cmd.Context(), args...)
		if err != nil {
			return fmt.Errorf("preload failed: %w", err)
		}

		cache := d.store.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\n=== Preload Metrics ===")
		fmt.Fprintf(out, "Loaded: %d\n", stats.TotalLoaded)
		fmt.Fprintf(out, "Failed: %d\n", stats.Failed)
		for _, sf := range models.CreatureSubfolders {
			if n, ok := stats.BySubfolder[sf]; ok {
				fmt.Fprintf(out, "  %s: %d\n", sf, n)
			}
		}
		fmt.Fprintf(out, "Cache: %d -> %d (max %d)\n", stats.CacheSizeBefore, stats.CacheSizeAfter, cache.MaxSize)
		fmt.Fprintf(out, "Execution Time: %s\n", stats.Elapsed)

		d.logger.Info("Preload command completed", zap.Int("loaded", stats.TotalLoaded))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(preloadCmd)
}
