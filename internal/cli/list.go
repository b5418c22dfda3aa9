package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newListCmd(a *app) *cobra.Command {
	var withIndex bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the items in order",
		Long: `List prints one line per item, "<name>: <amount> <units>", in the order
the items were first added. An empty pantry prints nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					return writeJSON(out, nonNil(s.Items()))
				}
				if withIndex {
					for i, item := range s.Items() {
						fmt.Fprintf(out, "%d\t%s\n", i, item)
					}
					return nil
				}
				if rendered := s.Render(); rendered != "" {
					fmt.Fprintln(out, rendered)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&withIndex, "index", "i", false, "prefix each item with its position")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *pantry.Store) error {
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"count": s.Count()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.Count())
				return nil
			})
		},
	}
}
