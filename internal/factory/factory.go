package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/battleship-go2/internal/dependencies/clock"
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/events"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/bot"
	"github.com/mcoot/battleship-go2/internal/services/fleet"
	"github.com/mcoot/battleship-go2/internal/services/match"
	"github.com/mcoot/battleship-go2/internal/storage"
	"github.com/mcoot/battleship-go2/internal/storage/memory"
	redisstorage "github.com/mcoot/battleship-go2/internal/storage/redis"
	"github.com/mcoot/battleship-go2/internal/storage/sqlstore"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypeSQLite   = "sqlite"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageName string

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService     *auth.Service
	FleetService    *fleet.Service
	BotService      *bot.Service
	MatchController *match.Controller
	Events          *events.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// MatchConfig holds match defaults (optional)
	MatchConfig match.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend. Defaults to "memory".
	StorageType string
	// RedisConfig is required if StorageType is "redis"
	RedisConfig *redisstorage.Config
	// SQLConfig is required if StorageType is "sqlite" or "postgres"
	SQLConfig *sqlstore.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}
	store, err := openStorage(storageType, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("storage", storageType))

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clock.New(), random.New(), authCfg, cfg.MatchConfig, logger)
	app.StorageName = storageType
	return app, nil
}

func openStorage(storageType string, cfg Config) (storage.Storage, error) {
	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("RedisConfig required when StorageType is %q", storageType)
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite, StorageTypePostgres:
		if cfg.SQLConfig == nil {
			return nil, fmt.Errorf("SQLConfig required when StorageType is %q", storageType)
		}
		sqlCfg := *cfg.SQLConfig
		sqlCfg.Dialect = sqlstore.DialectSQLite
		if storageType == StorageTypePostgres {
			sqlCfg.Dialect = sqlstore.DialectPostgres
		}
		return sqlstore.Open(sqlCfg)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or postgres", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	matchCfg match.Config,
	logger *slog.Logger,
) *App {
	eventManager := events.NewManager(logger)
	fleetService := fleet.New(rnd, logger)
	botService := bot.NewService(bot.DefaultRegistry(), rnd, logger)
	matchController := match.NewController(store, fleetService, botService, eventManager, clk, rnd, logger, matchCfg)
	authService := auth.New(store, clk, rnd, logger, authCfg)

	return &App{
		Storage:         store,
		StorageName:     StorageTypeMemory,
		Clock:           clk,
		Random:          rnd,
		AuthService:     authService,
		FleetService:    fleetService,
		BotService:      botService,
		MatchController: matchController,
		Events:          eventManager,
	}
}

// Close shuts down event hubs and releases the storage backend
func (a *App) Close() error {
	a.Events.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
