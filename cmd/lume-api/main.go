package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumehq/lume-api/internal/cache"
	"github.com/lumehq/lume-api/internal/config"
	"github.com/lumehq/lume-api/internal/database"
	"github.com/lumehq/lume-api/internal/handlers"
	"github.com/lumehq/lume-api/internal/models"
	"github.com/lumehq/lume-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse redis url: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	userViews := cache.NewViews[models.User](redisClient, 10*time.Minute)
	emailService := services.NewEmailService(cfg.SMTP)
	profileService := services.NewProfileService(db, emailService, userViews, logger, cfg.Paginate)

	userHandler := handlers.NewUserHandler(profileService)
	adminHandler := handlers.NewAdminHandler(profileService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	api.Get("/users", userHandler.List)
	api.Get("/users/search", userHandler.Search)
	api.Get("/users/:id", userHandler.Get)
	api.Post("/users/invite", userHandler.Invite)
	api.Patch("/users/:id", userHandler.Update)
	api.Delete("/users/:id", userHandler.Delete)

	admin := app.Group("/admin")
	admin.Get("/users", adminHandler.Index)
	admin.Post("/users/search", adminHandler.Search)
	admin.Get("/users/invite", adminHandler.InviteForm)
	admin.Post("/users/invite", adminHandler.Invite)
	admin.Get("/users/:id/edit", adminHandler.EditForm)
	admin.Post("/users/:id/edit", adminHandler.Edit)
	admin.Get("/users/:id/delete", adminHandler.Delete)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
