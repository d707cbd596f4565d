// internal/cli/inspect.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/pricewatch/internal/alert"
	"github.com/law-makers/pricewatch/internal/catalog"
	urlutil "github.com/law-makers/pricewatch/internal/utils/url"
	"github.com/law-makers/pricewatch/pkg/models"
)

var (
	inspectThreshold string
	inspectStock     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Fetch one product page and show what would be extracted",
	Long: `Fetches a single product page with the configured fetcher and prints the record
the store adapter extracts from it. Nothing is saved and no mail is sent, which makes it
the quickest way to check a store's selectors still match.`,
	Example: `  # Show title and price
  pricewatch inspect https://www.newegg.com/p/N82E16814137771

  # Include stock and classify against a threshold
  pricewatch inspect https://www.bestbuy.com/site/6521430.p --stock --threshold=999.99`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectThreshold, "threshold", "0", "Alert price to classify against")
	inspectCmd.Flags().BoolVar(&inspectStock, "stock", false, "Also extract the stock state")
}

func runInspect(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	rawURL := args[0]
	if err := urlutil.ValidateURL(rawURL); err != nil {
		return err
	}
	storeID, err := urlutil.StoreID(rawURL)
	if err != nil {
		return err
	}
	threshold, err := catalog.ParseThreshold(inspectThreshold)
	if err != nil {
		return err
	}

	record, err := a.Pipeline.Process(cmd.Context(), models.TrackedProduct{
		URL:        rawURL,
		Store:      storeID,
		AlertPrice: threshold,
		CheckStock: inspectStock,
	})
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", rawURL, err)
	}

	evals := alert.Evaluate([]models.EvaluatedRecord{record})
	fmt.Fprint(cmd.OutOrStdout(), a.Renderer.Console(evals))
	fmt.Fprintf(cmd.OutOrStdout(), "%-8s%s\n", "CLASS:", evals[0].Class)
	return nil
}
