package cmd

import (
	"fmt"

	"dex-wiki/core/models"
	"dex-wiki/core/store"

	"github.com/spf13/cobra"
)

var (
	listSubfolder string
	listCount     bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List every record of one kind",
	Example: `  dex-wiki list move
  dex-wiki list creature --subfolder variant
  dex-wiki list creature --count`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		if listSubfolder != "" {
			if kind != models.KindCreature {
				return fmt.Errorf("--subfolder only applies to creatures")
			}
			if !models.IsSubfolder(listSubfolder) {
				return fmt.Errorf("unknown subfolder %q", listSubfolder)
			}
		}
		if listCount && kind != models.KindCreature {
			return fmt.Errorf("--count only applies to creatures")
		}

		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		out := cmd.OutOrStdout()
		if listCount {
			subfolders := models.CreatureSubfolders
			if listSubfolder != "" {
				subfolders = []string{listSubfolder}
			}
			for _, sf := range subfolders {
				fmt.Fprintf(out, "%s: %d\n", sf, d.store.CreatureCount(sf))
			}
			return nil
		}

		records := d.store.All(kind)
		if listSubfolder != "" {
			records = func(yield func(models.Record) bool) {
				opts := store.IterateOptions{
					Subfolders:        []string{listSubfolder},
					IncludeNonDefault: true,
					KeepDuplicates:    true,
				}
				for c := range d.store.IterateCreatures(opts) {
					if !yield(c) {
						return
					}
				}
			}
		}

		total := 0
		for rec := range records {
			id, name := describeRecord(rec)
			fmt.Fprintf(out, "%5d  %s\n", id, name)
			total++
		}
		fmt.Fprintf(out, "Total: %d\n", total)
		return nil
	},
}

func describeRecord(rec models.Record) (int, string) {
	switch r := rec.(type) {
	case *models.Creature:
		return r.ID, r.Name
	case *models.Move:
		return r.ID, r.Name
	case *models.Ability:
		return r.ID, r.Name
	case *models.Item:
		return r.ID, r.Name
	default:
		return 0, string(rec.Kind())
	}
}

func init() {
	listCmd.Flags().StringVar(&listSubfolder, "subfolder", "", "only list creatures from this subfolder")
	listCmd.Flags().BoolVar(&listCount, "count", false, "print the number of creature files per subfolder")
	RootCmd.AddCommand(listCmd)
}
