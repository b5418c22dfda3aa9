package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and the shelf",
		Long: `Init writes config.yaml to the configuration directory if it is missing
and creates the shelf in the data directory. Running it again changes
nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := a.storeConfig()
			if err != nil {
				return err
			}

			created, err := writeConfigIfMissing(a.configDir, configFile{
				Backend: cfg.Backend,
				DataDir: cfg.DataDir,
				Shelf:   name,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", errSystem, err)
			}

			// An empty list is written only when the shelf has none, so init
			// never touches existing items.
			err = a.withStore(func(s *pantry.Store) error {
				if s.Count() > 0 {
					return nil
				}
				return s.Save()
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if created {
				fmt.Fprintf(out, "Wrote %s\n", filepath.Join(a.configDir, configFileExt))
			}
			fmt.Fprintf(out, "Pantry initialized: %s shelf %q in %s\n", cfg.Backend, name, cfg.DataDir)
			return nil
		},
	}
}
