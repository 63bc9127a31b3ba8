package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nvoropaev/bracketeer/internal/config"
	"github.com/nvoropaev/bracketeer/internal/database"
	server "github.com/nvoropaev/bracketeer/internal/http"
	"github.com/nvoropaev/bracketeer/internal/ingest"
	"github.com/nvoropaev/bracketeer/internal/metrics"
	"github.com/nvoropaev/bracketeer/internal/picks"
	"github.com/nvoropaev/bracketeer/internal/scoring"
	"github.com/nvoropaev/bracketeer/internal/sheets"
	"github.com/nvoropaev/bracketeer/internal/telegram"
	"github.com/nvoropaev/bracketeer/internal/tournament"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := tournament.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var source sheets.Source
	switch cfg.Sheets.Backend {
	case "xlsx":
		source = sheets.NewXLSXSource(cfg.Sheets.XLSXPath)
	default:
		source, err = sheets.NewGoogleSource(context.Background(), cfg.Sheets.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize sheets client: %s", err)
		}
	}

	notifier := telegram.NewBotClient(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
	scoringSvc := scoring.New(store, metricsSvc)
	picksSvc := picks.New(store, metricsSvc)
	orchestrator := ingest.New(source, store, scoringSvc, metricsSvc, notifier, cfg.Sheets.SpreadsheetID)

	s := server.NewServer(
		store,
		picksSvc,
		scoringSvc,
		orchestrator,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// The sync scheduler runs for the whole process lifetime; the shutdown
	// signal cancels it between tournaments.
	syncCtx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()
	go orchestrator.Run(syncCtx, cfg.SyncInterval)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		cancelSync()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
