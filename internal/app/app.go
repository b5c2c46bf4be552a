package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"todosummary/db"
	"todosummary/internal/config"
	"todosummary/internal/repository"
	"todosummary/internal/summary"

	"github.com/redis/go-redis/v9"
)

// App holds the wired pipeline shared by the API server and the CLI.
// Runs and Redis are nil when REDIS_URL is unset.
type App struct {
	DB      *sql.DB
	Redis   *redis.Client
	Todos   *repository.TodoRepository
	Runs    *repository.RunRepository
	Service *summary.Service
}

func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	conn, driver, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	a := &App{DB: conn}

	if err := db.EnsureSchema(ctx, conn, driver); err != nil {
		a.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	a.Todos = repository.NewTodoRepository(conn)

	var recorder summary.RunRecorder
	if cfg.RedisURL != "" {
		client, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.Redis = client
		a.Runs = repository.NewRunRepository(client)
		recorder = a.Runs
	}

	summarizer, err := cfg.NewSummarizer()
	if err != nil {
		a.Close()
		return nil, err
	}

	notifier, err := cfg.NewNotifier()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Service = summary.NewService(a.Todos, summarizer, notifier, recorder, log)

	log.Info("pipeline ready", "driver", driver, "summarizer", summarizer.Name(), "notifier", notifier.Name(),
		"run_log", a.Runs != nil)

	return a, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
