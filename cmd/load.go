package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/annwoerpel/visual-analytics-books/internal/loader"
	"github.com/annwoerpel/visual-analytics-books/internal/output"
)

var (
	loadFile      string
	loadBase      string
	loadDelimiter string
	loadTimeout   time.Duration
	loadFormat    string
)

var loadCmd = &cobra.Command{
	Use:   "load [variant]",
	Short: "Load a dataset once and print its rows.",
	Long: `Load resolves the variant's resource file against the base path,
retrieves it and prints the parsed rows. The variant defaults to "books".
--file loads an arbitrary resource file instead of a variant.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("base") {
			cfg.BasePath = loadBase
		}
		if flags.Changed("delimiter") {
			cfg.Delimiter = loadDelimiter
		}
		if flags.Changed("timeout") {
			cfg.Timeout.Duration = loadTimeout
		}
		if flags.Changed("file") {
			cfg.ResourceFile = loadFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		format, err := output.ParseFormat(loadFormat)
		if err != nil {
			return err
		}

		file := cfg.ResourceFile
		if file == "" || len(args) > 0 {
			name := "books"
			if len(args) > 0 {
				name = args[0]
			}
			f, ok := loader.Variants(cfg.Variants).File(name)
			if !ok {
				return fmt.Errorf("unknown variant %q", name)
			}
			file = f
		}

		l, err := newLoader(cfg)
		if err != nil {
			return err
		}
		res, err := l.Load(cmd.Context(), file)
		if err != nil {
			return err
		}
		return output.Render(cmd.OutOrStdout(), format, res, l.Options())
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadFile, "file", "f", "", "Resource file to load instead of a variant")
	loadCmd.Flags().StringVarP(&loadBase, "base", "b", "", "Base path prepended to the resource file")
	loadCmd.Flags().StringVarP(&loadDelimiter, "delimiter", "d", ",", "Field delimiter")
	loadCmd.Flags().DurationVarP(&loadTimeout, "timeout", "t", 30*time.Second, "Retrieval timeout (0 disables it)")
	loadCmd.Flags().StringVarP(&loadFormat, "format", "o", "table", "Output format: table, json or csv")

	rootCmd.AddCommand(loadCmd)
}
