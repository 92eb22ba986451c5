package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"job-board-api/config"
	"job-board-api/internal/app"
	"job-board-api/internal/database"
	"job-board-api/internal/server"
	"job-board-api/internal/storage/files"

	"github.com/go-playground/validator/v10"
)

// @title           Job Board API
// @version         1.0
// @description     REST API for a job board: employers post jobs, candidates apply with resumes, employers review applications.

// @host      localhost:8080
// @BasePath  /api
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := database.Migrate(context.Background(), dbPool); err != nil {
		log.Fatalf("Failed to apply database schema: %v", err)
	}

	resumeStore, err := files.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize resume store: %v", err)
	}

	validate := validator.New()

	application := &app.Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		ResumeStore: resumeStore,
		Validator:   validate,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Println("Shutting down server...")
	log.Println("Application gracefully stopped.")
}
