package routes

import (
	"log"

	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/app"
	"job-board-api/internal/services"
	"job-board-api/internal/storage/postgres"
	"job-board-api/internal/storage/sessions"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	api := router.Group("/api")

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(app.DBPool)
	jobRepo := postgres.NewJobRepo(app.DBPool)
	appRepo := postgres.NewApplicationRepo(app.DBPool)
	sessionStore := sessions.NewRedisStore(app.RedisClient)

	// --- Services ---
	userService := services.NewUserService(
		userRepo,
		sessionStore,
		app.Config.JWT.Secret,
		app.Config.JWT.Expiration,
		app.Config.JWT.RefreshExpiration,
	)
	jobService := services.NewJobService(jobRepo, appRepo, userRepo, app.ResumeStore, app.DBPool)
	applicationService := services.NewApplicationService(appRepo, jobRepo, app.ResumeStore)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, app.Validator)
	jobHandler := handlers.NewJobHandler(jobService, app.Validator)
	applicationHandler := handlers.NewApplicationHandler(applicationService, app.Validator, app.Config.Uploads.MaxSizeBytes)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)

	// --- Register Resource Routes ---
	RegisterUserRoutes(api, userHandler, authMiddleware)
	RegisterJobRoutes(api, jobHandler, applicationHandler, authMiddleware)
	RegisterApplicationRoutes(api, applicationHandler, authMiddleware)

	// --- Static resume files ---
	router.Static("/uploads", app.Config.Uploads.Dir)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
