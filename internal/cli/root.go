// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/pricewatch/internal/app"
	"github.com/law-makers/pricewatch/internal/config"
	"github.com/law-makers/pricewatch/internal/ui"
)

// skipAppAnnotation marks commands that run without building the Application
const skipAppAnnotation = "pricewatch/skip-app"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pricewatch",
	Short: "Watch store prices and stock and get mailed when they change",
	Long: `Pricewatch periodically checks product pages on supported stores, compares the
price against your alert threshold and, optionally, whether the product is back in stock.

Products are listed in a CSV file with URL, ALERT_PRICE and CHECK_STOCK columns. Every
cycle is printed to the terminal, appended to a history file, and mailed to you when a
price dropped below its threshold or a product came back.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). SIGINT and SIGTERM cancel the command context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", ui.Error("✗ Error:"), err)
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		app.SetupLogging(cfg)
		log.Debug().
			Str("products", cfg.ProductsFile).
			Bool("render", cfg.Render).
			Msg("Configuration loaded")

		if cmd.Annotations[skipAppAnnotation] != "" {
			return nil
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(a)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetApp()
		if a == nil {
			return
		}
		_ = a.Close(context.Background())
		SetApp(nil)
	}

	config.RegisterFlags(rootCmd)

	rootCmd.Flags().BoolP("help", "h", false, "Help for Pricewatch")
	rootCmd.Flags().Bool("version", false, "Version for Pricewatch")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)
}
