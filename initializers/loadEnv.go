package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file when present. Deployed environments set the
// variables directly, so a missing file is not fatal.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables.")
	}
}

// GetEnv returns the value of key or a default when unset.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
