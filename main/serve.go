package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/CODEX19/FarmLink-Africa/entrypoint"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newAdvisor(cmd.Context(), logger, cfg)
	if err != nil {
		return err
	}
	// after the server stopped: lets queued model calls finish
	defer cleanup()

	var router = mux.NewRouter()
	svc.RegisterEndPoint(router)
	entrypoint.NewWebService(logger.Named("entrypoint"), svc).RegisterEndpoint(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	c, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gc := errgroup.WithContext(c)
	g.Go(func() error {
		logger.Info("Listening", zap.Int("port", cfg.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("Error serving http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gc.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
