package controllers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/models"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/services"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/utils"
)

// GoogleAuthenticator is what the Google sign-in handlers need from the OAuth
// bridge. services.GoogleAuth satisfies it; tests substitute their own.
type GoogleAuthenticator interface {
	AuthCodeURL(state string) string
	FetchUser(ctx context.Context, code string) (*services.GoogleUser, error)
}

// AuthController owns the credential flows: register, login, both OTP flows
// and Google sign-in.
type AuthController struct {
	DB          *sql.DB
	Tokens      *utils.TokenService
	Mailer      services.Mailer
	SignupOTPs  *services.OTPStore
	ResetOTPs   *services.OTPStore
	Google      GoogleAuthenticator
	FrontendURL string

	oauthState string
}

func NewAuthController(db *sql.DB, tokens *utils.TokenService, mailer services.Mailer,
	signupOTPs, resetOTPs *services.OTPStore, google GoogleAuthenticator, frontendURL string) *AuthController {

	state, _ := utils.GenerateRandomToken(16)

	return &AuthController{
		DB:          db,
		Tokens:      tokens,
		Mailer:      mailer,
		SignupOTPs:  signupOTPs,
		ResetOTPs:   resetOTPs,
		Google:      google,
		FrontendURL: frontendURL,
		oauthState:  state,
	}
}

// otpCode accepts a one-time code sent either as a JSON string or a JSON
// number, the way browsers on either side of a form tend to encode it. Both
// spellings compare equal to the stored code.
type otpCode string

func (o *otpCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*o = otpCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*o = otpCode(n.String())
	return nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password"})
	}

	insertQuery := `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`

	if _, err := a.DB.Exec(insertQuery, input.Name, input.Email, hash); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Registration successful"})
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var user models.User
	selectQuery := `SELECT id, name, email, password FROM users WHERE email = ?`

	err := a.DB.QueryRow(selectQuery, input.Email).Scan(&user.ID, &user.Name, &user.Email, &user.Password)

	// Unknown email and wrong password produce the same response on purpose.
	if err == sql.ErrNoRows {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	} else if err != nil {
		log.Printf("Login query error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	token, err := a.Tokens.Issue(user.ID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate token"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"token": token,
		"name":  user.Name,
		"email": user.Email,
	})
}

type SendOTPInput struct {
	Email string `json:"email"`
}

func (a *AuthController) SendOTP(c *fiber.Ctx) error {
	var input SendOTPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	otp := a.SignupOTPs.Generate(input.Email)

	body := fmt.Sprintf("Your OTP is: %d", otp)
	if err := a.Mailer.Send(input.Email, "SkillForge OTP Verification", body); err != nil {
		log.Printf("Could not send OTP to %s: %v", input.Email, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to send OTP"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "OTP sent successfully"})
}

type VerifyOTPInput struct {
	Email string  `json:"email"`
	OTP   otpCode `json:"otp"`
}

func (a *AuthController) VerifyOTP(c *fiber.Ctx) error {
	var input VerifyOTPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if !a.SignupOTPs.Verify(input.Email, string(input.OTP)) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid OTP"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"verified": true})
}

func (a *AuthController) ForgotPasswordSendOTP(c *fiber.Ctx) error {
	var input SendOTPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var id int64
	err := a.DB.QueryRow(`SELECT id FROM users WHERE email = ?`, input.Email).Scan(&id)
	if err == sql.ErrNoRows {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Email not registered"})
	} else if err != nil {
		log.Printf("Forgot-password lookup error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	otp := a.ResetOTPs.Generate(input.Email)

	body := fmt.Sprintf("Your password reset OTP is: %d", otp)
	if err := a.Mailer.Send(input.Email, "Password Reset OTP", body); err != nil {
		log.Printf("Could not send reset OTP to %s: %v", input.Email, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to send OTP"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "OTP sent successfully"})
}

type ResetPasswordInput struct {
	Email       string  `json:"email"`
	OTP         otpCode `json:"otp"`
	NewPassword string  `json:"newPassword"`
}

func (a *AuthController) ResetPassword(c *fiber.Ctx) error {
	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if !a.ResetOTPs.Verify(input.Email, string(input.OTP)) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid OTP"})
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password"})
	}

	updateQuery := `UPDATE users SET password = ? WHERE email = ?`
	if _, err := a.DB.Exec(updateQuery, hash, input.Email); err != nil {
		log.Printf("Password update error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating password"})
	}

	var user models.User
	selectQuery := `SELECT id, name, email FROM users WHERE email = ?`
	if err := a.DB.QueryRow(selectQuery, input.Email).Scan(&user.ID, &user.Name, &user.Email); err != nil {
		log.Printf("Post-reset lookup error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	token, err := a.Tokens.Issue(user.ID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate token"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Password reset successful",
		"token":   token,
		"name":    user.Name,
		"email":   user.Email,
	})
}

// GoogleLogin sends the browser off to Google's consent screen.
func (a *AuthController) GoogleLogin(c *fiber.Ctx) error {
	return c.Redirect(a.Google.AuthCodeURL(a.oauthState), http.StatusFound)
}

// GoogleCallback finishes the OAuth handshake: resolve the grant to an email
// and name, create the local account on first sight, then hand the browser a
// token via redirect since the handshake ends outside our frontend.
func (a *AuthController) GoogleCallback(c *fiber.Ctx) error {
	if c.Query("state") != a.oauthState {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Invalid OAuth state"})
	}

	gu, err := a.Google.FetchUser(c.Context(), c.Query("code"))
	if err != nil {
		log.Printf("Google userinfo error: %v", err)
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Google sign-in failed"})
	}

	var user models.User
	selectQuery := `SELECT id, name, email FROM users WHERE email = ?`
	err = a.DB.QueryRow(selectQuery, gu.Email).Scan(&user.ID, &user.Name, &user.Email)

	if err == sql.ErrNoRows {
		insertQuery := `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`
		res, insertErr := a.DB.Exec(insertQuery, gu.Name, gu.Email, models.GoogleOAuthPassword)
		if insertErr != nil {
			log.Printf("Google user insert error: %v", insertErr)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
		}
		user.ID, _ = res.LastInsertId()
		user.Name = gu.Name
		user.Email = gu.Email
	} else if err != nil {
		log.Printf("Google user lookup error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Database error"})
	}

	token, err := a.Tokens.Issue(user.ID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate token"})
	}

	redirect := fmt.Sprintf("%s/dashboard.html?token=%s&name=%s&email=%s",
		a.FrontendURL, url.QueryEscape(token), url.QueryEscape(user.Name), url.QueryEscape(user.Email))

	return c.Redirect(redirect, http.StatusFound)
}
