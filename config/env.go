package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string

	// Authentication
	JWTSecret string

	// Google sign-in
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// OpenAI
	OpenAIAPIKey             string
	OpenAITranscriptionModel string
	OpenAIIntentModel        string

	// Audio storage (S3 compatible)
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string

	// Other
	KafkaBroker string
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

// loadConfig loads and validates all environment variables
func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		// Database - required
		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),

		// JWT - required
		JWTSecret: getEnvWithDefault("JWT_SECRET", "dummyjwt"),

		// Google sign-in - required for login
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnvWithDefault("GOOGLE_REDIRECT_URL", "http://localhost:8000/api/oauth2/google/redirect"),

		// OpenAI - required for voice processing
		OpenAIAPIKey:             getEnv("OPENAI_API_KEY"),
		OpenAITranscriptionModel: getEnvWithDefault("OPENAI_TRANSCRIPTION_MODEL", "gpt-4o-mini-transcribe"),
		OpenAIIntentModel:        getEnvWithDefault("OPENAI_INTENT_MODEL", "gpt-4o-mini"),

		// Audio storage - required for voice processing
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT"),
		StorageRegion:    getEnvWithDefault("STORAGE_REGION", "auto"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY"),
		StorageBucket:    getEnvWithDefault("STORAGE_BUCKET", "verdiq-audio"),

		// Other - optional, intent events are skipped when unset
		KafkaBroker: getEnvWithDefault("KAFKA_BROKER", ""),
	}

	appConfig = config
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Helper functions
func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" && IsProduction() {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development
func IsDevelopment() bool {
	return !IsProduction()
}
