package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/annwoerpel/visual-analytics-books/internal/config"
	internalhttp "github.com/annwoerpel/visual-analytics-books/internal/http"
	"github.com/annwoerpel/visual-analytics-books/internal/loader"
	"github.com/annwoerpel/visual-analytics-books/internal/logging"
	"github.com/annwoerpel/visual-analytics-books/internal/request"
	"github.com/annwoerpel/visual-analytics-books/internal/resource"
	"github.com/annwoerpel/visual-analytics-books/internal/s3"
)

var (
	configPath string
	envFile    string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "visual-analytics-books",
	Short:         "Load the book datasets behind the visual analytics pages.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logging.Setup(level, cfg.Logging.Format, os.Stderr)
		slog.Debug("configuration loaded", "config", configPath, "base_path", cfg.BasePath, "variants", len(cfg.Variants))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(fmt.Sprintf("command execution failed: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// newLoader wires the loader for cfg: plain paths and file:// URLs are read
// from disk, http(s) addresses are fetched, and s3:// addresses are
// downloaded when an AWS session can be created.
func newLoader(cfg *config.Config) (*loader.Loader, error) {
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return nil, err
	}

	client := internalhttp.NewClient(cfg.Timeout.Duration)
	httpRetriever := internalhttp.NewRetriever(client, request.NewFactory(http.MethodGet, cfg.Headers))
	mux := loader.Mux{
		"file":  loader.FileRetriever{},
		"http":  httpRetriever,
		"https": httpRetriever,
	}
	if s3Retriever, err := s3.New(); err != nil {
		slog.Warn("s3 retrieval disabled", "error", err)
	} else {
		mux["s3"] = s3Retriever
	}

	return loader.New(
		resource.NewBase(cfg.BasePath),
		mux,
		loader.WithDelimiter(delim),
		loader.WithTimeout(cfg.Timeout.Duration),
	), nil
}
