package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iudanet/notekeeper/internal/client/api"
	"github.com/iudanet/notekeeper/internal/client/auth"
	"github.com/iudanet/notekeeper/internal/client/cli"
	"github.com/iudanet/notekeeper/internal/client/iocli"
	"github.com/iudanet/notekeeper/internal/client/notes"
	"github.com/iudanet/notekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/notekeeper/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги, переменные окружения задают значения по умолчанию
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", envOr("NOTEKEEPER_SERVER", "http://localhost:8080"), "Server URL")
	dbPath := flag.String("db", envOr("NOTEKEEPER_DB", "notekeeper-client.db"), "Path to local database")
	logLevel := flag.String("log-level", envOr("NOTEKEEPER_LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")

	flag.Parse()

	stdio := iocli.NewStdio()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stdio, logger, *serverURL, *dbPath, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdio iocli.IO, logger *slog.Logger, serverURL, dbPath, command string, args []string) error {
	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент
	apiClient := api.NewClient(serverURL)

	manager, err := sync.NewManager(sync.Config{
		Backend:         apiClient,
		MetadataStorage: boltStorage,
		QueueStorage:    boltStorage,
		NoteStorage:     boltStorage,
		SessionStorage:  boltStorage,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create sync manager: %w", err)
	}

	manager.Events().Subscribe(func(event sync.ReconcileEvent) {
		logger.Debug("Notes reconciled", "source", event.Source, "notes", len(event.Records))
	})

	noteService := notes.NewService(boltStorage, manager, logger)
	authService := auth.NewService(manager, logger)

	return cli.New(stdio, authService, noteService, manager).Run(ctx, command, args)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func printVersion() {
	fmt.Printf("NoteKeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
