package main

import (
	"context"
	"log"
	"net/http"

	_ "chroniclex/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chroniclex/internal/auth"
	"chroniclex/internal/cache"
	"chroniclex/internal/config"
	"chroniclex/internal/db"
	"chroniclex/internal/handler"
	"chroniclex/internal/model"
	"chroniclex/internal/repository"
	"chroniclex/internal/router"
	"chroniclex/internal/service"
	"chroniclex/internal/storage"
)

// @title ChronicleX API
// @version 1.0
// @description Blogging platform API with posts, comments, likes and cookie-based JWT sessions.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	media, err := storage.NewMinioStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("media store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	verifier := service.NewGoogleVerifier(cfg.GoogleUserinfoURL)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, verifier)
	userService := service.NewUserService(userRepo, media, cacheClient)
	postService := service.NewPostService(postRepo, media)
	commentService := service.NewCommentService(commentRepo, postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		authHandler,
		userHandler,
		postHandler,
		commentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
