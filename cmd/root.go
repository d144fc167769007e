package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"perc/internal/config"
	"perc/internal/logger"
	"perc/internal/runner"
	"perc/internal/status"
	"perc/internal/support"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath holds the path to the optional YAML configuration file.
var configPath string

// cfg is the configuration loaded once in PersistentPreRunE and shared,
// read-only, by every subcommand.
var cfg *config.Config

// run and source are the collaborators used by the subcommands.
// They are created on first use unless a test installed its own.
var (
	run    runner.Runner
	source status.Source
)

// rootCmd is the base command for the CLI tool `perc`.
var rootCmd = &cobra.Command{
	Use:   "perc",
	Short: "Personal status-bar snippets and development workflow commands",
	Long: `perc prints colored status-bar snippets (time, memory, cpu, volume,
battery, disk, keyboard layout) and drives the local support workflow
(resolving databases, restoring dumps, starting a matching server).`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRunE runs before any subcommand: it sets up logging and
	// loads the configuration.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(debug)

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.LoadConfigFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("[DEBUG] Loaded configuration from %s\n", path)

		if run == nil {
			run = runner.New()
		}
		if source == nil {
			source = status.NewSystem(run)
		}
		return nil
	},
}

// Execute runs the command line and exits the process accordingly.
//
// A version lookup that could not run (usually because the database is gone)
// ends the invocation with a neutral exit status; every other error is
// reported on stderr with status 1.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, support.ErrVersionUnavailable):
		logger.Warn("[WARN] %v\n", err)
		return 0
	default:
		logger.Error("[ERROR] %v\n", err)
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default $PERC_CONFIG or ~/.config/perc/config.yaml)")
}
