package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treasury-dashboard/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dashboard views as JSON",
	Long: `Serve the dashboard views over HTTP.

Views are fetched from PUBLIC_API_URL. /api/health checks the API through
the internal API_URL, which is never exposed in responses.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (default: DASHBOARD_LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.ListenAddr
	if listenAddr != "" {
		addr = listenAddr
	}

	svc, err := newService(newClient(cfg.PublicAPIURL))
	if err != nil {
		return err
	}
	srv := server.New(svc, newClient(cfg.APIURL), logger.Named("server"), server.Options{
		PublicAPIURL:  cfg.PublicAPIURL,
		CompatAliases: cfg.CompatAliases,
		RateLimit:     cfg.RateLimit,
		RateBurst:     cfg.RateBurst,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigCh:
			logger.Warn("received second signal, forcing exit", zap.String("signal", sig.String()))
			os.Exit(1)
		case <-time.After(server.ShutdownTimeout + time.Second):
			logger.Warn("graceful shutdown timed out, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	logger.Info("dashboard starting",
		zap.String("addr", addr),
		zap.String("api", cfg.PublicAPIURL),
		zap.Bool("compat_aliases", cfg.CompatAliases),
	)
	if err := srv.Run(ctx, addr); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
