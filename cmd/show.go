package cmd

import (
	"fmt"

	"dex-wiki/core/models"
	"dex-wiki/core/store"

	"github.com/spf13/cobra"
)

var (
	showSubfolder string
	showForms     bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <kind> <id>",
	Short: "Print one record as canonical JSON",
	Example: `  dex-wiki show creature "Mr. Mime"
  dex-wiki show creature meowth-alola --subfolder variant
  dex-wiki show creature wormadam --forms
  dex-wiki show move thunder-punch`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		if showSubfolder != "" && !models.IsSubfolder(showSubfolder) {
			return fmt.Errorf("unknown subfolder %q", showSubfolder)
		}
		if showForms && kind != models.KindCreature {
			return fmt.Errorf("--forms only applies to creatures")
		}

		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		if showForms {
			forms, _, ok := d.store.FormFiles(args[1])
			if !ok {
				return fmt.Errorf("creature %q not found in %s", args[1], d.store.DataDir())
			}
			for _, f := range forms {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", f.Category, f.Name)
			}
			return nil
		}

		rec, ok := d.store.Load(kind, args[1], showSubfolder)
		if !ok {
			return fmt.Errorf("%s %q not found in %s", kind, args[1], d.store.DataDir())
		}

		data, err := store.Encode(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	showCmd.Flags().StringVar(&showSubfolder, "subfolder", "", "creature subfolder to read from")
	showCmd.Flags().BoolVar(&showForms, "forms", false, "list a creature's forms and their subfolders instead")
	RootCmd.AddCommand(showCmd)
}
