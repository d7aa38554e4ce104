package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/annwoerpel/visual-analytics-books/internal/loader"
	"github.com/annwoerpel/visual-analytics-books/internal/web"
)

var (
	serveHost   string
	servePort   int
	serveStatic string
	serveBase   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page-load handlers over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("host") {
			cfg.Server.Host = serveHost
		}
		if flags.Changed("port") {
			cfg.Server.Port = servePort
		}
		if flags.Changed("static") {
			cfg.Server.StaticDir = serveStatic
		}
		if flags.Changed("base") {
			cfg.BasePath = serveBase
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		l, err := newLoader(cfg)
		if err != nil {
			return err
		}
		server := web.NewServer(l, loader.Variants(cfg.Variants), web.Options{
			Addr:           cfg.Server.Addr(),
			StaticDir:      cfg.Server.StaticDir,
			RateLimit:      cfg.Server.RateLimit,
			RateBurst:      cfg.Server.RateBurst,
			RequestTimeout: cfg.Server.RequestTimeout.Duration,
			CSVOptions:     l.Options(),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Interface to bind to")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "Directory served under /static")
	serveCmd.Flags().StringVarP(&serveBase, "base", "b", "", "Base path prepended to resource files")

	rootCmd.AddCommand(serveCmd)
}
