package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/generation"
	"github.com/phrazzld/taskboard-api/internal/platform/gemini"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/redis"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	redisClient *goredis.Client

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
	generator   generation.DescriptionGenerator

	// limiter is nil when rate limiting is disabled.
	limiter middleware.Limiter
}

// newApplication wires stores, services, the description generator and the
// rate limiter from cfg. The caller must call cleanup on success.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.openStores(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.userService, err = service.NewUserService(app.userStore, auth.NewBcryptHasher(cfg.Auth.BCryptCost), logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.generator, err = newDescriptionGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize description generator: %w", err)
	}

	app.setupRateLimiter(ctx)

	logger.Info("application initialized")
	return app, nil
}

// openStores connects the configured backend and builds its stores.
func (app *application) openStores(ctx context.Context) error {
	cfg := app.config.Database

	switch cfg.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns)
		if err != nil {
			return err
		}
		app.db = db
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)

	case "sqlite":
		gdb, err := sqlite.Open(cfg.URL, app.logger)
		if err != nil {
			return err
		}
		db, err := gdb.DB()
		if err != nil {
			return fmt.Errorf("failed to get sqlite connection: %w", err)
		}
		app.db = db
		app.userStore = sqlite.NewUserStore(gdb, app.logger)
		app.taskStore = sqlite.NewTaskStore(gdb, app.logger)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	app.logger.Info("database connection established", "driver", cfg.Driver)
	return nil
}

// newDescriptionGenerator returns the template generator, or Gemini backed
// by the template when Gemini is configured.
func newDescriptionGenerator(
	ctx context.Context,
	cfg config.LLMConfig,
	logger *slog.Logger,
) (generation.DescriptionGenerator, error) {
	template := generation.TemplateGenerator{}

	switch cfg.Provider {
	case "template":
		return template, nil
	case "gemini":
		g, err := gemini.NewGenerator(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Gemini description generator initialized", "model", cfg.ModelName)
		return generation.WithFallback(g, template, logger), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// setupRateLimiter connects to Redis when configured. An unreachable Redis
// at startup disables limiting instead of failing the server.
func (app *application) setupRateLimiter(ctx context.Context) {
	cfg := app.config.RateLimit
	if cfg.RedisURL == "" {
		app.logger.Info("rate limiting disabled")
		return
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		app.logger.Warn("rate limiting disabled, redis unavailable", "error", err.Error())
		return
	}

	app.redisClient = client
	app.limiter = redis.NewLimiter(client, "", cfg.LoginLimit, cfg.Window())
	app.logger.Info("rate limiting enabled",
		"limit", cfg.LoginLimit,
		"window_seconds", cfg.WindowSeconds)
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database and Redis connections.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
		app.redisClient = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
		app.db = nil
	}
	app.logger.Info("application shutdown completed")
}
