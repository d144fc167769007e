package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"perc/internal/support"
)

// startOpts collects the switches of `support start`.
var startOpts support.StartOptions

// noCopy makes `support admin` print the login without copying it.
var noCopy bool

func service(cmd *cobra.Command) *support.Service {
	return support.NewService(cfg, run, cmd.OutOrStdout())
}

// supportCmd groups the development workflow commands.
var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Local development workflow on database-backed instances",
}

var supportListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List support databases, optionally filtered by substring",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		names, err := service(cmd).List(cmd.Context(), filter)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var supportStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start the server matching a database's version and open it in a browser",
	Long: `Resolve <name> to a database, read the version installed in it and start
the matching server. With --fetch only the dump is fetched; with --restore
the database is restored from its dump before starting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service(cmd).Start(cmd.Context(), args[0], startOpts)
	},
}

var supportRestoreDumpCmd = &cobra.Command{
	Use:   "restore-dump <name> <file|archive|url>",
	Short: "Restore a database from a local dump, an archive or a URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service(cmd).RestoreDump(cmd.Context(), args[0], args[1])
	},
}

var supportLoginsCmd = &cobra.Command{
	Use:   "logins <name>",
	Short: "Print the logins of the active users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service(cmd).Logins(cmd.Context(), args[0])
	},
}

var supportAdminCmd = &cobra.Command{
	Use:   "admin <name>",
	Short: "Print the admin login and copy it to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service(cmd).Admin(cmd.Context(), args[0], !noCopy)
	},
}

var supportInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show metadata about a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service(cmd).Info(cmd.Context(), args[0])
	},
}

func init() {
	f := supportStartCmd.Flags()
	f.BoolVar(&startOpts.Fetch, "fetch", false, "Only fetch the dump, do not start")
	f.BoolVar(&startOpts.Restore, "restore", false, "Restore the database from its dump before starting")
	f.BoolVarP(&startOpts.Update, "update", "u", false, "Update all modules on start")
	f.BoolVar(&startOpts.DebugAttach, "debug-attach", false, "Run under debugpy and wait for a debugger")
	f.BoolVarP(&startOpts.Quiet, "quiet", "q", false, "Only log warnings and errors")
	f.BoolVar(&startOpts.Shell, "shell", false, "Open an interactive shell instead of the HTTP server")
	f.StringVar(&startOpts.As, "as", "", "Version token to use instead of reading it from the database")
	f.IntVarP(&startOpts.Port, "port", "p", 0, "HTTP port (default from config)")
	f.BoolVar(&startOpts.Copy, "copy", false, "Copy the command line to the clipboard instead of running it")
	f.BoolVar(&startOpts.NoBrowser, "no-browser", false, "Do not open a browser")
	supportStartCmd.MarkFlagsMutuallyExclusive("fetch", "restore")
	supportStartCmd.MarkFlagsMutuallyExclusive("fetch", "copy")
	supportStartCmd.MarkFlagsMutuallyExclusive("fetch", "shell")
	supportStartCmd.MarkFlagsMutuallyExclusive("restore", "copy")

	supportAdminCmd.Flags().BoolVar(&noCopy, "no-copy", false, "Only print the login")

	supportCmd.AddCommand(supportListCmd, supportStartCmd, supportRestoreDumpCmd, supportLoginsCmd, supportAdminCmd, supportInfoCmd)
	rootCmd.AddCommand(supportCmd)
}
