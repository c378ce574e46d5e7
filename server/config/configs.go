package config

import (
	"fmt"
	"os"

	"log"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresDSN    string
	ServerPort     string
	DebugMode      string
	TendataBaseURL string
	TendataAPIKey  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_USER", "postgres"),
		getEnv("POSTGRES_PASSWORD", "postgres"),
		getEnv("POSTGRES_DB", "timberintel"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)

	return &Config{
		PostgresDSN:    dsn,
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DebugMode:      getEnv("DEBUGMODE", "True"),
		TendataBaseURL: getEnv("TENDATA_BASE_URL", "https://open-api.tendata.com"),
		TendataAPIKey:  getEnv("TENDATA_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
