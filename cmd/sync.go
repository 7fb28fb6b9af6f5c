package cmd

import (
	"fmt"

	"dex-wiki/core/storage"
	"dex-wiki/feature/datasync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncCheck bool
	syncFix   bool
	syncPush  bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the data repository from object storage",
	Long: `Downloads every record file under the configured bucket prefix into the
data root. Files already up to date are skipped. With --push the local data
root is uploaded instead; with --check only the folder layout is verified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		client, err := storage.NewClient(d.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		svc := datasync.NewService(client, d.cfg.Storage.Bucket, d.cfg.Sync, d.store.DataDir(), d.logger.Named("sync"), d.store)
		out := cmd.OutOrStdout()

		if syncCheck || syncFix {
			local, remote, err := svc.CheckStructure(cmd.Context())
			if err != nil {
				return fmt.Errorf("structure check failed: %w", err)
			}
			fmt.Fprintln(out, "\n=== Data Layout ===")
			fmt.Fprintf(out, "Local Missing: %v\n", local)
			fmt.Fprintf(out, "Remote Missing: %v\n", remote)
			if syncFix {
				if err := svc.FixLocal(local); err != nil {
					return err
				}
				d.logger.Info("Local layout fixed", zap.Int("created", len(local)))
			}
			return nil
		}

		var report *datasync.Report
		if syncPush {
			report, err = svc.Push(cmd.Context())
		} else {
			report, err = svc.Pull(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		fmt.Fprintln(out, "\n=== Sync Metrics ===")
		fmt.Fprintf(out, "Transferred: %d\n", report.Transferred)
		fmt.Fprintf(out, "Skipped: %d\n", report.Skipped)
		fmt.Fprintf(out, "Failed: %d\n", report.Failed)
		fmt.Fprintf(out, "Bytes: %d\n", report.Bytes)
		if report.Failed > 0 {
			return fmt.Errorf("%d files failed to transfer", report.Failed)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncCheck, "check", false, "only report missing data folders")
	syncCmd.Flags().BoolVar(&syncFix, "fix", false, "create missing local data folders")
	syncCmd.Flags().BoolVar(&syncPush, "push", false, "upload the local data root instead of downloading")
	syncCmd.MarkFlagsMutuallyExclusive("check", "push")
	RootCmd.AddCommand(syncCmd)
}
