package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>...",
		Aliases: []string{"rm"},
		Short:   "Remove items by position",
		Long: `Delete removes the items at the given zero-based positions and saves
the pantry. Positions refer to the list as shown by "pantry list --index"
before the command runs, so "pantry delete 0 1" removes the first two items.
If any position is out of range nothing is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices := make([]int, len(args))
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("index %q is not an integer: %w", arg, errUsage)
				}
				indices[i] = n
			}

			return a.withStore(func(s *pantry.Store) error {
				before := s.Count()
				count, err := s.Delete(indices...)
				if err != nil {
					return err
				}
				if err := s.Save(); err != nil {
					return err
				}
				removed := before - count
				a.logger.Debug("items deleted", zap.Ints("indices", indices), zap.Int("count", count))

				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"removed": removed, "count": count})
				}
				color.New(color.FgYellow).Fprint(cmd.OutOrStdout(), "Removed ")
				fmt.Fprintf(cmd.OutOrStdout(), "%d (%d items left)\n", removed, count)
				return nil
			})
		},
	}
}
