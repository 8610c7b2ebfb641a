// Package cmd hosts the generic service runner: config loading, bootstrap,
// HTTP serving, and coordinated shutdown.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreconfig "lodgebot/core/config"
	"lodgebot/core/logger"
)

// App is what a bootstrapped service must expose to be served.
type App struct {
	// Handler is the HTTP tree served on the configured listener.
	Handler http.Handler
	// Cleanup runs after the listener stops. Optional.
	Cleanup func() error
}

// Options describe how to load configuration and assemble the app.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (*coreconfig.Config, error)
	Build      func(cfg *coreconfig.Config) (*App, error)

	ShutdownLogger  func() error
	ShutdownTimeout time.Duration
}

// Run loads configuration, builds the app, and serves it until SIGINT or
// SIGTERM, then shuts the listener down gracefully.
func Run(opts Options) error {
	if opts.Build == nil {
		return fmt.Errorf("cmd: Build is required")
	}

	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}
	if cfgPath == "" {
		return fmt.Errorf("cmd: config path not provided via %s or DefaultConfigPath", env)
	}

	loadConfig := opts.LoadConfig
	if loadConfig == nil {
		loadConfig = coreconfig.Load
	}
	log.Printf("loading config: %s", cfgPath)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	startedAt := time.Now()
	app, err := opts.Build(cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}

	shutdownLogger := opts.ShutdownLogger
	if shutdownLogger == nil {
		shutdownLogger = logger.Shutdown
	}
	defer func() {
		if err := shutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	if app.Cleanup != nil {
		defer func() {
			if err := app.Cleanup(); err != nil {
				logger.Warn(logger.Background(), "app", "cleanup.fail",
					slog.String("err", err.Error()),
				)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Listen, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info(logger.Background(), "app", "ready",
			slog.String("status", "ok"),
			slog.String("addr", addr),
			slog.Duration("startup_duration", time.Since(startedAt)),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cmd: serve failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(logger.Background(), "app", "shutdown")

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("cmd: shutdown failed: %w", err)
	}
	return nil
}
