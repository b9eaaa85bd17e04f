package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"foodgram/database"
	"foodgram/internal/config"
	"foodgram/internal/http-api/handler"
	"foodgram/internal/http-api/middleware"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/http-api/service"
)

func main() {
	// Load config first so logging can follow it
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database and migrate the schema
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis cache for tags and ingredients; the API works without it
	var cache *repository.ReferenceCache
	if cfg.RedisURL != "" {
		cache, err = repository.NewReferenceCache(cfg.RedisURL, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
		if err != nil {
			logger.Warn("reference_cache_unavailable", "error", err)
			cache = nil
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	tagService := service.NewTagService(tagRepo, cache)
	ingredientService := service.NewIngredientService(ingredientRepo, cache)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo)
	relationService := service.NewRelationService(favoriteRepo, cartRepo, subscriptionRepo, recipeRepo, userRepo)
	shoppingListService := service.NewShoppingListService(recipeRepo)
	userService := service.NewUserService(userRepo, recipeRepo, subscriptionRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService, relationService, shoppingListService, authService)
	userHandler := handler.NewUserHandler(userService, relationService, authService)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimitMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))
	tagHandler.RegisterRoutes(api.Group("/tags"))
	ingredientHandler.RegisterRoutes(api.Group("/ingredients"))
	recipeHandler.RegisterRoutes(api.Group("/recipes"))
	userHandler.RegisterRoutes(api.Group("/users"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutting_down", "signal", sig.String())
	case err := <-errChan:
		logger.Error("server_error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}

	if cache != nil {
		cache.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server_stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
