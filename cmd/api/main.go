package main

import (
	"context"
	"log"
	"log/slog"
	"todosummary/internal/app"
	"todosummary/internal/config"
	"todosummary/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := app.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	slog.Info("starting api", "config", cfg)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("error starting pipeline: %v", err)
	}
	defer a.Close()

	var runStore handler.RunStore
	var redisPing handler.Pinger
	if a.Runs != nil {
		runStore = a.Runs
		redisPing = a.Runs
	}

	todoHandler := handler.NewTodoHandler(a.Todos)
	summaryHandler := handler.NewSummaryHandler(a.Service, runStore)
	healthHandler := handler.NewHealthHandler(a.Todos, redisPing)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" && cfg.FrontendURL != allowedOrigins[0] {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := r.Group("/api")
	api.POST("/summarize", summaryHandler.Summarize)
	api.GET("/summaries", summaryHandler.GetSummaries)
	api.GET("/summaries/failed", summaryHandler.GetFailedSummaries)
	api.GET("/todos", todoHandler.GetTodos)
	api.GET("/todos/pending", todoHandler.GetPendingTodos)
	api.GET("/todos/:id", todoHandler.GetTodo)
	api.POST("/todos", todoHandler.CreateTodo)
	api.PUT("/todos/:id", todoHandler.UpdateTodo)
	api.DELETE("/todos/:id", todoHandler.DeleteTodo)
	r.GET("/health", healthHandler.GetHealth)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
