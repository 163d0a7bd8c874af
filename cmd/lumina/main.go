package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alexanderramin/lumina/internal/cli"
	"github.com/alexanderramin/lumina/internal/config"
	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/intelligence"
	"github.com/alexanderramin/lumina/internal/llm"
	"github.com/alexanderramin/lumina/internal/repository"
	"github.com/alexanderramin/lumina/internal/service"
	"github.com/alexanderramin/lumina/internal/staticcontent"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to a file so the terminal UI stays clean.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	profileRepo := repository.NewSQLiteProfileRepo(database)
	curriculumRepo := repository.NewSQLiteCurriculumRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var cache repository.ContentCache = repository.NewSQLiteContentCache(database)
	if cfg.RedisURL != "" {
		client, err := repository.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer client.Close()
		cache = repository.NewRedisContentCache(client, repository.DefaultContentKeyPrefix, 0)
		logger.Info("content cache", "backend", "redis")
	}

	// Wire the generation backend. Disabled generation resolves every call
	// to its fallback.
	client := llm.NewDisabledClient()
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client = llm.NewOllamaClient(cfg.LLM, observer)
		if !client.Available(ctx) {
			logger.Warn("llm endpoint unreachable; lessons will fall back until it is up",
				"endpoint", cfg.LLM.Endpoint)
		}
	}
	content := intelligence.NewContentService(client, cfg.LLM.RetryPolicy(), logger)

	machine := service.NewSessionMachine(
		profileRepo,
		curriculumRepo,
		cache,
		uow,
		content,
		staticcontent.MustLoad(),
		service.WithMinContentLatency(cfg.MinContentLatency),
		service.WithLogger(logger),
		service.WithObserver(service.NewSlogUseCaseObserver(logger)),
		service.WithTotalDays(cfg.TotalDays),
	)

	app := &cli.App{
		Machine: machine,
		Logger:  logger,
		// Detect interactive terminal for the learning session.
		IsInteractive: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
	}
	if app.IsInteractive {
		app.Prompter = cli.NewTerminalPrompter()
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
