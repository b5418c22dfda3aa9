// Package cli implements the pantry command-line interface. Each mutating
// command opens the configured store, applies one change, saves, and
// closes the store again.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errSystem marks failures of the environment rather than of the request,
// such as an unreadable config file.
var errSystem = errors.New("system error")

// errUsage marks malformed arguments.
var errUsage = errors.New("invalid argument")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	shelfName string
	jsonMode  bool
	verbose   bool
}

// app carries the state one invocation of the command tree shares.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "pantry" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Track what is in the pantry",
		Long: `Pantry keeps an ordered list of named items with a quantity and a unit.
Adding an item that is already listed adds to its quantity.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/pantry)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/pantry)")
	pf.StringVar(&a.flags.backend, "backend", "", "shelf backend: "+strings.Join(types.Backends(), " or ")+" (default: "+defaultBackend+")")
	pf.StringVar(&a.flags.shelfName, "shelf", "", "shelf name (default: pantry)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newCountCmd(a))
	root.AddCommand(newTUICmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrStorage), errors.Is(err, errSystem):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup builds the logger and loads config.yaml before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(a.flags.verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w: %w", errSystem, err)
	}
	a.logger = logger

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := resolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w: %w", errSystem, err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("%w: %w", errSystem, err)
	}

	a.configDir = configDir
	a.config = cfg
	a.logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("config_file", cfg.ConfigFileUsed()))
	return nil
}

// newLogger returns a JSON logger on stderr. Only warnings and errors are
// written unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
