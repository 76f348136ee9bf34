package config

import (
	"os"
	"strconv"
)

// Config holds everything read from the environment at startup. A .env file
// is loaded by main before this is built.
type Config struct {
	Port           string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpireHours int
	UploadDir      string
	CORSOrigin     string
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=referrals port=5432 sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24*30), // 30 days
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
