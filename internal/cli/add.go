package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <amount> [units]",
		Short: "Add an item or increase the amount of a listed one",
		Long: `Add records an amount of a named item and saves the pantry.

If an item with the same name is listed, the amount is added to it and the
listed units are kept; the units given here are ignored. Negative amounts
are accepted; put them after "--" so they are not read as flags.

Example:
  pantry add Flour 2 cups
  pantry add Rice 5 lb
  pantry add -- Eggs -2 each`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return fmt.Errorf("amount %q is not a finite number: %w", args[1], errUsage)
			}
			units := ""
			if len(args) == 3 {
				units = args[2]
			}

			return a.withStore(func(s *pantry.Store) error {
				count := s.Add(name, amount, units)
				if err := s.Save(); err != nil {
					return err
				}
				item, _ := findItem(s.Items(), name)
				a.logger.Debug("item added", zap.String("name", name), zap.Float64("amount", amount), zap.Int("count", count))

				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), item)
				}
				color.New(color.FgGreen).Fprint(cmd.OutOrStdout(), "Added ")
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d items)\n", item, count)
				return nil
			})
		},
	}
}
