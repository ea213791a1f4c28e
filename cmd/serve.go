package main

import (
	"context"
	"cruise/internal/api"
	"cruise/internal/cruise"
	"cruise/pkg/logger"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCommand loads the cruise once and serves it over HTTP until
// interrupted.
func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reader := a.reader()
			server, err := api.NewServer(ctx, api.Deps{
				Registry: cruise.NewSynchronized(cruise.New(cruise.NewOptions(a.cfg))),
				Reader:   reader,
			}, api.NewOptions(a.cfg))
			if err != nil {
				return fmt.Errorf("could not create webserver: %w", err)
			}
			if err := server.Load(ctx); err != nil {
				return err
			}
			logger.Info(ctx, "cruise data loaded", zap.String("file", reader.Path()))

			serveErr := make(chan error, 1)
			go func() {
				logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					return fmt.Errorf("could not start webserver: %w", err)
				}
			case <-ctx.Done():
			}

			logger.Info(ctx, "stopping webserver...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not stop webserver: %w", err)
			}

			return nil
		},
	}
}
