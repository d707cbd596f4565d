// internal/cli/watch.go
package cli

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check all products repeatedly until interrupted",
	Long: `Runs a check cycle, then sleeps a random interval between --interval-min and
--interval-max before the next one. A failed cycle is logged and the loop carries on.
Press Ctrl+C to stop.`,
	Example: `  # Watch the default products.csv
  pricewatch watch

  # Render pages in Chrome and check every 5 to 10 minutes
  pricewatch watch --render --interval-min=5m --interval-max=10m`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		return a.Watch(cmd.Context())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check cycle and exit",
	Example: `  # One pass without touching the history file or sending mail
  pricewatch check --no-save --no-mail`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		_, err = a.RunCycle(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(checkCmd)
}
