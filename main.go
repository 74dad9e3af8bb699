package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acebook-go/acebook-be/internal/api"
	"github.com/acebook-go/acebook-be/internal/auth"
	"github.com/acebook-go/acebook-be/internal/config"
	"github.com/acebook-go/acebook-be/internal/database"
	"github.com/acebook-go/acebook-be/internal/logger"
	"github.com/acebook-go/acebook-be/internal/monitoring"
	"github.com/acebook-go/acebook-be/internal/services"
	"github.com/acebook-go/acebook-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadPath, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up the token service with the process-wide signing secret
	tokens := auth.NewTokenService(cfg.JWTSecret)

	// Set up the live feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	postService := services.NewPostService(db)

	// Set up and run the background upload janitor
	janitor, err := monitoring.NewUploadJanitor(db, cfg.UploadPath, cfg.UploadSweep)
	if err != nil {
		log.Fatalf("Failed to initialize upload janitor: %v", err)
	}
	go janitor.Run()

	// Set up router
	router := api.NewRouter(hub, tokens, userService, postService, cfg.UploadPath, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
