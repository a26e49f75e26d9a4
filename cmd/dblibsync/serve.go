package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dblibsync/internal/web"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP sync trigger",
	Long: `Serves POST /api/sync and friends. With SYNC_INTERVAL set, also resyncs
on that interval.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		slog.Info("configuration loaded",
			"port", cfg.Server.Port,
			"db_driver", cfg.Database.Driver,
			"sync_interval", cfg.Sync.Interval,
			"require_api_key", cfg.Security.RequireAPIKey,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx, cfg)
		if err != nil {
			return userError(err)
		}
		defer st.Close()

		service := newService(cfg, st)
		server := web.NewServer(service, cfg)

		// Background jobs stop with the signal context
		go service.StartSyncScheduler(ctx, cfg.Sync.Interval)

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting", "addr", cfg.Server.Addr())
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if service.LimiterStatus().Running {
			slog.Info("waiting for running sync to complete")
			if err := service.WaitForSync(shutdownCtx); err != nil {
				slog.Warn("sync did not complete in time", "error", err)
			} else {
				slog.Info("sync completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			return err
		}
		slog.Info("server stopped")
		return nil
	},
}
