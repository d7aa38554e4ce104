package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annwoerpel/visual-analytics-books/internal/loader"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the configured dataset variants.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		variants := loader.Variants(cfg.Variants)
		for _, name := range variants.Names() {
			file, _ := variants.File(name)
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, file); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
