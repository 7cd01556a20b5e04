package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/complycloud/chatbridge/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web chat UI",
	Long: `Start the HTTP server with the embedded chat widget. The server comes
up immediately and answers 503 on /chat until the MCP session has
connected in the background.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := preflight(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(logger, time.Duration(cfg.Server.TurnTimeout)*time.Second)

	// Connect the backend session in the background so the UI is
	// reachable right away.
	go func() {
		orch, _, err := connect(ctx, cfg, logger)
		if err != nil {
			logger.Error("MCP connection failed", zap.Error(err))
			return
		}
		srv.SetSubmitter(orch)
		logger.Info("web UI ready", zap.String("addr", cfg.Server.Addr))
	}()

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server", zap.String("addr", cfg.Server.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
