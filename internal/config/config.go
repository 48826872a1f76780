package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName                  string
	DatabaseURL              string
	SecretKey                string
	SessionCookieName        string
	SessionExpirationMinutes int
	SuperAdminEmail          string
	ServerPort               string
	GinMode                  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppName:                  getEnv("SMARTDESK_APP_NAME", "SmartDesk Helpdesk"),
		DatabaseURL:              getEnv("SMARTDESK_DATABASE_URL", "smartdesk.db"),
		SecretKey:                getEnv("SMARTDESK_SECRET", "change-me"),
		SessionCookieName:        getEnv("SMARTDESK_SESSION_COOKIE_NAME", "smartdesk_session"),
		SessionExpirationMinutes: getEnvInt("SMARTDESK_SESSION_EXPIRATION_MINUTES", 60*24),
		SuperAdminEmail:          getEnv("SMARTDESK_SUPER_ADMIN_EMAIL", "olangriffin1@gmail.com"),
		ServerPort:               getEnv("SERVER_PORT", "8080"),
		GinMode:                  getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
