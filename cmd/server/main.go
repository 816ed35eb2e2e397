package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/battleship-go2/internal/api"
	"github.com/mcoot/battleship-go2/internal/factory"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/match"
	redisstorage "github.com/mcoot/battleship-go2/internal/storage/redis"
	"github.com/mcoot/battleship-go2/internal/storage/sqlstore"
)

const (
	sessionJanitorInterval = 10 * time.Minute
	hubJanitorInterval     = time.Minute
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q: %v\n", raw, err)
			os.Exit(1)
		}
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := configFromEnv(logger)
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		MatchController: app.MatchController,
		Events:          app.Events,
		StorageName:     app.StorageName,
	})

	serverConfig := api.DefaultServerConfig()
	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", raw))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.AuthService.RunJanitor(ctx, sessionJanitorInterval)
	go app.Events.RunJanitor(ctx, hubJanitorInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// configFromEnv builds the factory config from STORAGE_TYPE, REDIS_URL,
// DATABASE_URL and MACHINE_STRATEGY
func configFromEnv(logger *slog.Logger) (factory.Config, error) {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		MatchConfig: match.DefaultConfig(),
	}

	if strategy := os.Getenv("MACHINE_STRATEGY"); strategy != "" {
		if !model.IsValidBotStrategy(strategy) {
			return cfg, fmt.Errorf("unknown MACHINE_STRATEGY %q", strategy)
		}
		cfg.MatchConfig.DefaultStrategy = strategy
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return cfg, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite, factory.StorageTypePostgres:
		sqlCfg := sqlstore.DefaultConfig()
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			sqlCfg.DSN = dsn
		} else if cfg.StorageType == factory.StorageTypePostgres {
			return cfg, fmt.Errorf("DATABASE_URL required when STORAGE_TYPE=postgres")
		}
		if cfg.StorageType == factory.StorageTypePostgres {
			sqlCfg.MaxOpenConns = 10
			sqlCfg.MaxIdleConns = 5
		}
		cfg.SQLConfig = &sqlCfg
	}

	return cfg, nil
}
