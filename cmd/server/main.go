package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/notekeeper/internal/server"
	"github.com/iudanet/notekeeper/internal/server/auth"
	"github.com/iudanet/notekeeper/internal/server/config"
	"github.com/iudanet/notekeeper/internal/server/handlers"
	"github.com/iudanet/notekeeper/internal/server/middleware"
	"github.com/iudanet/notekeeper/internal/server/notes"
	"github.com/iudanet/notekeeper/internal/server/realtime"
	"github.com/iudanet/notekeeper/internal/server/storage/sqlite"
	"github.com/iudanet/notekeeper/internal/server/users"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	envFile := flag.String("env-file", "", "Path to .env file (default: ./.env if present)")
	configFile := flag.String("config", "", "Path to config file (yaml, toml or json)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load(config.LoadOptions{EnvFile: *envFile, ConfigFile: *configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New(ctx, cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	verifier, err := auth.NewGoogleVerifier(auth.GoogleConfig{
		ClientID: cfg.Google.ClientID,
		JWKSURL:  cfg.Google.JWKSURL,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create google verifier: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenConfig())
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	defer limiter.Stop()

	dispatcher := realtime.NewDispatcher(logger)

	router := server.NewRouter(logger, server.Handlers{
		Auth:   handlers.NewAuthHandler(logger, verifier, users.NewService(store, logger), tokens),
		Notes:  handlers.NewNotesHandler(logger, notes.NewService(store, logger, notes.WithPublisher(dispatcher))),
		Health: handlers.NewHealthHandler(logger, store, Version),
		Stream: handlers.NewStreamHandler(logger, dispatcher, cfg.Stream.Heartbeat),
	}, server.Options{
		Tokens:         tokens,
		AuthLimiter:    limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// Потоки /notes/stream закрываются в начале Shutdown
	srv.RegisterOnShutdown(dispatcher.Close)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting notekeeper server", "address", cfg.HTTP.Address, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func printVersion() {
	fmt.Printf("Notekeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
