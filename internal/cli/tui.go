package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/tui"
	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the pantry interactively",
		Long: `Tui opens an interactive view of the pantry.

Keys: a add, d remove the selected item, s save, q quit, arrows or j/k move.
Quitting does not save; press s first to keep changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				if _, err := tui.Run(s, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
				if s.Dirty() {
					color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "Unsaved changes discarded.")
				}
				return nil
			})
		},
	}
}
