package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Database. Either a sqlite file path or a postgres DSN.
	DatabaseDSN string

	// TMDB. Optional: without a key the metadata provider is disabled and
	// content creation proceeds without enrichment.
	TMDBAPIKey string

	// Server
	ServerPort  string
	CORSOrigins []string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "gowatcharr")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	dsn := viper.GetString("DATABASE_DSN")
	if dsn == "" {
		dsn = filepath.Join(configDir, "watchlist.db")
	}

	config := &Config{
		DatabaseDSN: dsn,
		TMDBAPIKey:  viper.GetString("TMDB_API_KEY"),
		ServerPort:  viper.GetString("SERVER_PORT"),
		CORSOrigins: splitOrigins(viper.GetString("CORS_ORIGINS")),
		LogLevel:    viper.GetString("LOG_LEVEL"),
	}

	if config.ServerPort == "" {
		return nil, fmt.Errorf("SERVER_PORT must not be empty")
	}

	return config, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
