package cmd

import (
	"fmt"

	"dex-wiki/core/models"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var setSubfolder string

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <kind> <id> <field> <value>",
	Short: "Edit one field of a record and log the change",
	Long: `Replaces a top-level field of a record, appends the edit to the record's
change log with source "cli" and saves it. value is parsed as JSON; anything
that is not valid JSON is taken as a plain string.`,
	Example: `  dex-wiki set move tackle power '{"black_white": 50}'
  dex-wiki set creature meowth-alola color gray --subfolder variant`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		if setSubfolder != "" && !models.IsSubfolder(setSubfolder) {
			return fmt.Errorf("unknown subfolder %q", setSubfolder)
		}

		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		value := []byte(args[3])
		if !json.Valid(value) {
			if value, err = json.Marshal(args[3]); err != nil {
				return err
			}
		}

		_, changed, err := d.store.SetField(kind, args[1], setSubfolder, args[2], value, "cli")
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s unchanged\n", kind, args[1], args[2])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s updated\n", kind, args[1], args[2])
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&setSubfolder, "subfolder", "", "creature subfolder holding the record")
	RootCmd.AddCommand(setCmd)
}
