// Package serve starts the HTTP extraction service.
package serve

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"taxmaster/statement-extractor/cmd/root"
	"taxmaster/statement-extractor/internal/logging"
	"taxmaster/statement-extractor/internal/server"

	"github.com/spf13/cobra"
)

// shutdownGrace bounds how long in-flight requests may run after a stop
// signal before the process exits anyway.
const shutdownGrace = 30 * time.Second

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP service",
	Long: `Run the HTTP service exposing POST /extract for statement uploads
and GET /health for liveness checks.`,
	RunE: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, cleanup, err := root.BuildPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := root.GetConfig()
	srv := server.New(p, server.Options{
		Addr:           cfg.Addr(),
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		RequestTimeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	}, root.Log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	root.Log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		root.Log.WithError(err).Error("Shutdown did not complete cleanly")
		return err
	}

	root.Log.Info("HTTP server stopped",
		logging.Field{Key: logging.FieldAddr, Value: cfg.Addr()})
	return nil
}
