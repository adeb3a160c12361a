package main

import (
	"log"
	"net/http"

	"authportal/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"authportal/internal/auth"
	"authportal/internal/cache"
	"authportal/internal/config"
	"authportal/internal/db"
	"authportal/internal/handler"
	"authportal/internal/model"
	"authportal/internal/repository"
	"authportal/internal/router"
	"authportal/internal/service"
)

// @title Auth Portal API
// @version 1.0
// @description Session-based authentication service: registration, login, logout, and session-gated dashboard.
// @host localhost:8080
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	ticketService := auth.NewTicketService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	inputValidator := service.NewInputValidator()
	authService := service.NewAuthService(userRepo, inputValidator, ticketService, sessionStore, cfg.SessionLifetime)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, inputValidator, cfg)
	pageHandler := handler.NewPageHandler(authService, userService)

	// Register routes
	router.Register(e, cfg, authHandler, pageHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
