package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/api"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/auth"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/cache"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/config"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/reminder"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/suggest"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	habitRepo, completionRepo, closer, err := buildStorage(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	health, _ := habitRepo.(storage.Health)

	dayLogCache := buildCache(cfg, logger)
	suggester := buildSuggester(cfg, logger)
	notifier := buildNotifier(cfg, logger)

	scheduler := reminder.NewScheduler(habitRepo, completionRepo, notifier, cfg.ReminderInterval, logger)
	scheduler.Start()

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.APIToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	app := api.NewApp(logger, habitRepo, completionRepo, suggester, dayLogCache, health)
	router := api.NewRouter(app, provider, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := closer(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}

func buildStorage(cfg *config.Config, logger internal.Logger) (storage.HabitRepository, storage.CompletionRepository, func() error, error) {
	if cfg.DBType == "postgres" {
		if err := runMigrations(cfg.DBDSN, cfg.MigrationsDir); err != nil {
			return nil, nil, nil, err
		}
		store, err := storage.NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, store.Close, nil
	}

	if dir := filepath.Dir(cfg.FileHabits); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, nil, err
		}
	}
	store, err := storage.NewFileStorage(cfg.FileHabits, cfg.FileCompletions, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, store, store.Close, nil
}

func runMigrations(dsn, migrationsDir string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Up(db, migrationsDir)
}

func buildCache(cfg *config.Config, logger internal.Logger) cache.DayLog {
	if cfg.CacheBackend != "redis" {
		return nil
	}
	rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warnf("redis unavailable, running without day-log cache: %v", err)
		return nil
	}
	return cache.NewRedisDayLog(rdb, cfg.CacheTTL, logger)
}

func buildSuggester(cfg *config.Config, logger internal.Logger) suggest.Provider {
	if cfg.SuggestBackend == "remote" {
		return suggest.NewRemoteProvider(cfg.SuggestURL, cfg.SuggestAPIKey, logger)
	}
	return suggest.NewLocalProvider(logger)
}

func buildNotifier(cfg *config.Config, logger internal.Logger) reminder.Notifier {
	if cfg.NotifyBackend == "webhook" {
		return reminder.NewWebhookNotifier(cfg.NotifyWebhookURL, logger)
	}
	return reminder.NewLogNotifier(logger)
}
