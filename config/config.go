package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config carries everything the process needs at startup. It is loaded once in
// main and handed to the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	Port      string
	DBPath    string
	UploadDir string

	JWTSecret string `validate:"required"`

	SMTPHost string `validate:"required"`
	SMTPPort int    `validate:"required"`
	SMTPUser string `validate:"required"`
	SMTPPass string `validate:"required"`

	GoogleClientID     string `validate:"required"`
	GoogleClientSecret string `validate:"required"`
	GoogleRedirectURL  string `validate:"required,url"`
	FrontendURL        string `validate:"required,url"`
}

var validate = validator.New()

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the environment into a Config and validates it. A missing signing
// secret or mail/OAuth credential is a startup error, not a per-request one.
func Load() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		DBPath:    getEnv("DB_PATH", "./database.db"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		FrontendURL:        os.Getenv("FRONTEND_URL"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
