package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/config"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/controllers"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/routes"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/services"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/utils"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	db, err := config.ConnectDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	tokens := utils.NewTokenService(cfg.JWTSecret, time.Hour)
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUser)
	google := services.NewGoogleAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	auth := controllers.NewAuthController(db, tokens, mailer,
		services.NewOTPStore(), services.NewOTPStore(), google, cfg.FrontendURL)
	profile := controllers.NewProfileController(db, cfg.UploadDir)

	app := routes.SetupRouter(auth, profile, tokens, cfg.UploadDir)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	log.Printf("Server running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
