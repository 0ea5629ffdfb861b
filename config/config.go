package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries process-level settings. Every field has a default so the
// binary runs with no environment at all.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string
	// SessionCountdown is how long the display countdown runs after a login.
	// It is presentation state only and does not expire the session.
	SessionCountdown time.Duration
}

// Load reads configuration from the environment, with an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	countdown, err := time.ParseDuration(getEnv("SESSION_COUNTDOWN", "5m"))
	if err != nil {
		log.Printf("Invalid SESSION_COUNTDOWN, falling back to 5m: %v", err)
		countdown = 5 * time.Minute
	}

	return Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		SessionCountdown: countdown,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
