package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"flavorgraph/handlers"
	"flavorgraph/logger"
	"flavorgraph/web"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web app and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, s, err := setup(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		svc, err := newService(ctx, cfg, s)
		if err != nil {
			return err
		}

		router := handlers.NewRouter(handlers.Deps{
			Service: svc,
			Pages:   web.Templates(),
			Form: handlers.FormDefaults{
				MaxRecipes:      cfg.Search.DefaultMaxRecipes,
				MaxRecipesLimit: cfg.Search.MaxRecipesLimit,
			},
			Image: handlers.ImageOptions{
				Height:   cfg.Image.Height,
				Timeout:  cfg.Image.FetchTimeout,
				MaxBytes: cfg.Image.MaxBytes,
			},
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		})

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errc := make(chan error, 1)
		go func() {
			logger.Info("Server starting", zap.String("addr", cfg.Server.Addr), zap.String("store", cfg.Store.Backend))
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrap(err, "server failed")
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "graceful shutdown")
		}
		return nil
	},
}
