package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/refhub/referral-tracker/internal/config"
	"github.com/refhub/referral-tracker/internal/database"
	"github.com/refhub/referral-tracker/internal/handlers"
	"github.com/refhub/referral-tracker/internal/middleware"
	"github.com/refhub/referral-tracker/internal/repositories"
	"github.com/refhub/referral-tracker/internal/services"
	"github.com/refhub/referral-tracker/internal/storage"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	cfg := config.Load()

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	// 3. Resume File Store
	resumeStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to prepare upload directory:", err)
	}

	// 4. Stores & Services
	userStore := repositories.NewGormUserStore(db)
	candidateStore := repositories.NewGormCandidateStore(db)

	authService := services.NewAuthService(userStore, cfg.JWTSecret, cfg.JWTExpireHours)
	candidateService := services.NewCandidateService(candidateStore, resumeStore)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(authService)
	candidateHandler := handlers.NewCandidateHandler(candidateService)

	// 6. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Uploaded resumes are served read-only from the upload directory.
	r.Static("/uploads", resumeStore.Dir())

	// 7. Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			protected := auth.Group("")
			protected.Use(middleware.JWTAuth(cfg.JWTSecret))
			protected.GET("/me", authHandler.Me)
			protected.POST("/logout", authHandler.Logout)
		}

		candidates := api.Group("/candidates")
		candidates.Use(middleware.JWTAuth(cfg.JWTSecret))
		{
			candidates.GET("", candidateHandler.List)
			candidates.POST("", candidateHandler.Create)
			candidates.GET("/stats", candidateHandler.Stats)
			candidates.PUT("/:id/status", candidateHandler.UpdateStatus)
			candidates.DELETE("/:id", candidateHandler.Delete)
		}
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
