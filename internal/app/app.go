// Package app wires configuration, logging, services, and the HTTP
// server into a runnable application for cmd/web.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gradecli/internal/config"
	"gradecli/internal/infrastructure"
	"gradecli/internal/services"
	transport "gradecli/internal/transport/http"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Application owns the server lifecycle.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
	server    *http.Server
}

// New loads configuration from configPath and assembles the application.
func New(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(logger)

	router := transport.NewRouter(transport.RouterOptions{
		Config:  cfg,
		Logger:  logger,
		Service: services.NewRosterService(cfg, logger),
		Version: Version,
	})

	return &Application{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}, nil
}

// Run serves until SIGINT or SIGTERM, then drains connections within the
// configured shutdown timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.String("version", Version))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *Application) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}
