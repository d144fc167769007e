package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"perc/internal/desktop"
)

var helloName string

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Say hello",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Hello %s!\n", helloName)
	},
}

var wallpaperCmd = &cobra.Command{
	Use:   "wallpaper [dir]",
	Short: "Set a random image as lock-screen wallpaper",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cfg.Wallpaper()
		dir := w.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		img, err := desktop.SetLockScreen(cmd.Context(), run, w.Tool, dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), img)
		return nil
	},
}

func init() {
	helloCmd.Flags().StringVar(&helloName, "name", "World", "Who to greet")
	rootCmd.AddCommand(helloCmd, wallpaperCmd)
}
