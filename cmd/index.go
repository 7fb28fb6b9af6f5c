package cmd

import (
	"fmt"
	"io"
	"strings"

	"dex-wiki/core/index"
	"dex-wiki/core/slug"
	"dex-wiki/feature/catalog"

	"github.com/spf13/cobra"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:       "index <abilities|moves|items> [key]",
	Short:     "Print a reverse index",
	Long:      `Builds a reverse index over the canonical creatures and prints every key with its creatures in national dex order.`,
	ValidArgs: []string{"abilities", "moves", "items"},
	Args:      cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.logger.Sync()

		var only string
		if len(args) == 2 {
			only = slug.Normalize(args[1])
		}

		out := cmd.OutOrStdout()
		records := d.store.IterateCanonical()
		switch args[0] {
		case "abilities":
			return printIndex(out, catalog.Abilities(records), only, func(m catalog.AbilitySlot) string {
				if m.IsHidden {
					return fmt.Sprintf("slot %d, hidden", m.Slot)
				}
				return fmt.Sprintf("slot %d", m.Slot)
			})
		case "moves":
			return printIndex(out, catalog.Moves(records), only, func(m catalog.Learnset) string {
				if m.Method == catalog.MethodLevelUp {
					return fmt.Sprintf("%s %d", m.Method, m.Level)
				}
				return m.Method
			})
		case "items":
			return printIndex(out, catalog.Items(records), only, func(m catalog.HeldItem) string {
				return fmt.Sprintf("%d versions", len(m.Rarity))
			})
		default:
			return fmt.Errorf("unknown index %q, expected abilities, moves or items", args[0])
		}
	},
}

func printIndex[M any](out io.Writer, ix index.Reverse[M], only string, describe func(M) string) error {
	keys := ix.Keys()
	if only != "" {
		if _, ok := ix[only]; !ok {
			return fmt.Errorf("no creature references %q", only)
		}
		keys = []string{only}
	}

	for _, key := range keys {
		fmt.Fprintf(out, "%s (%d)\n", key, len(ix[key]))
		for _, e := range ix[key] {
			num := "----"
			if n := index.SortKey(e.Creature); n != index.MissingNumber {
				num = fmt.Sprintf("%04d", n)
			}
			fmt.Fprintf(out, "  #%s %s%s\n", num, e.Creature.Name, details(describe(e.Meta)))
		}
	}
	return nil
}

func details(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return ""
	}
	return " [" + s + "]"
}

func init() {
	RootCmd.AddCommand(indexCmd)
}
