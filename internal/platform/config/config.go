package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	RedisURL          string
	RateLimit         string
	RecalcConcurrency int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("RECALC_CONCURRENCY", 4)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. View cache invalidation is disabled.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.RecalcConcurrency = viper.GetInt("RECALC_CONCURRENCY")
	if cfg.RecalcConcurrency < 1 {
		cfg.RecalcConcurrency = 4
		log.Printf("Warning: Invalid RECALC_CONCURRENCY. Defaulting to %d.\n", cfg.RecalcConcurrency)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}
