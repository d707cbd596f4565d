// internal/cli/stores.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/pricewatch/internal/store"
)

var storesCmd = &cobra.Command{
	Use:         "stores",
	Short:       "List the stores pricewatch can read",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range store.DefaultRegistry().Stores() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storesCmd)
}
