package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/artikelfinder/internal/api"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/config"
	"github.com/vytor/artikelfinder/internal/db"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/quiz"
	"github.com/vytor/artikelfinder/internal/repository/sqlite"
	"github.com/vytor/artikelfinder/internal/services"
)

func main() {
	cfg, err := config.LoadArgs(os.Args[1:])
	if err != nil {
		logger.Error("failed to parse flags: %v", err)
		os.Exit(2)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	loc := cfg.Location()

	log.Info("===========================================")
	log.Info("ArtikelFinder Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("words_path=%s", cfg.WordsPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", loc)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	cat, err := catalog.Load(cfg.WordsPath)
	if err != nil {
		log.Error("failed to load word catalog: %v", err)
		os.Exit(1)
	}

	// Initialize repositories
	wordStatRepo := sqlite.NewWordStatRepository(database.DB)
	streakRepo := sqlite.NewStreakRepository(database.DB)
	favoriteRepo := sqlite.NewFavoriteRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)
	dailyWordRepo := sqlite.NewDailyWordRepository(database.DB)
	snapshotRepo := sqlite.NewSnapshotRepository(database.DB)

	clock := calendar.SystemClock{}
	engine := quiz.NewEngine(wordStatRepo, streakRepo, quiz.WithClock(clock), quiz.WithLocation(loc))

	// Initialize services
	srv := &api.Server{
		QuizService:      services.NewQuizService(cat, engine, favoriteRepo, settingsRepo),
		StatsService:     services.NewStatsService(cat, wordStatRepo),
		StreakService:    services.NewStreakService(streakRepo, clock, loc),
		FavoritesService: services.NewFavoritesService(cat, favoriteRepo),
		SettingsService:  services.NewSettingsService(settingsRepo),
		WordService:      services.NewWordService(cat, dailyWordRepo, clock, loc),
		DataService:      services.NewDataService(cat, snapshotRepo, clock),
		DB:               database,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("ArtikelFinder Server Stopped")
	log.Info("===========================================")
}
