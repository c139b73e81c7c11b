package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, read from the environment with an
// optional .env file for local runs.
type Config struct {
	Port        string
	MongoURI    string
	AuthSecret  string
	Environment string
}

func Load() *Config {
	// a missing .env file is fine, the environment wins anyway
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8009"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017/luminawell"),
		AuthSecret:  os.Getenv("JWT_SECRET"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
