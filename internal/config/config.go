// Package config loads the server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the authd process configuration.
type Config struct {
	HTTPAddr  string
	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret string
	TokenTTL  time.Duration

	OTPDigits int
	OTPTTL    time.Duration

	EmailHost string
	EmailPort string
	EmailUser string
	EmailPass string
	EmailFrom string

	TestAccountEnabled  bool
	TestAccountName     string
	TestAccountEmail    string
	TestAccountPassword string
}

// Load reads the environment. A missing .env file is not an error; container
// deployments inject variables directly.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("courseauth: no .env file found, relying on system env vars")
	}

	tokenTTL, _ := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	otpTTL, _ := time.ParseDuration(getEnv("OTP_TTL", "10m"))

	return Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   atoiOrDefault(getEnv("REDIS_DB", "0"), 0),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  tokenTTL,

		OTPDigits: atoiOrDefault(getEnv("OTP_DIGITS", "4"), 4),
		OTPTTL:    otpTTL,

		EmailHost: getEnv("EMAIL_HOST", ""),
		EmailPort: getEnv("EMAIL_PORT", "465"),
		EmailUser: getEnv("EMAIL_USER", ""),
		EmailPass: getEnv("EMAIL_PASS", ""),
		EmailFrom: getEnv("EMAIL_FROM", ""),

		TestAccountEnabled:  getEnv("TEST_ACCOUNT_ENABLED", "false") == "true",
		TestAccountName:     getEnv("TEST_ACCOUNT_NAME", "Test User"),
		TestAccountEmail:    getEnv("TEST_ACCOUNT_EMAIL", ""),
		TestAccountPassword: getEnv("TEST_ACCOUNT_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func atoiOrDefault(s string, def int) int {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil || i < 0 {
		return def
	}
	return i
}
