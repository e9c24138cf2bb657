package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/controllers"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/middleware"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/utils"
)

// SetupRouter wires every endpoint onto a fresh Fiber app.
func SetupRouter(auth *controllers.AuthController, profile *controllers.ProfileController,
	tokens *utils.TokenService, uploadDir string) *fiber.App {

	app := fiber.New()

	// Uploaded photos are served straight off disk
	app.Static("/uploads", uploadDir)

	api := app.Group("/api")

	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)

	api.Post("/send-otp", auth.SendOTP)
	api.Post("/verify-otp", auth.VerifyOTP)

	api.Post("/forgot-password/send-otp", auth.ForgotPasswordSendOTP)
	api.Post("/forgot-password/reset", auth.ResetPassword)

	// Profile routes require a valid token
	authRequired := middleware.AuthRequired(tokens)
	api.Post("/profile", authRequired, profile.SaveProfile)
	api.Get("/profile", authRequired, profile.GetProfile)

	// Google OAuth ends in a browser redirect, so it lives outside /api
	app.Get("/auth/google", auth.GoogleLogin)
	app.Get("/auth/google/callback", auth.GoogleCallback)

	return app
}
