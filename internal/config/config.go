package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServerAddress string       `json:"serverAddress"`
	DatabasePath  string       `json:"databasePath"`
	DatabaseURL   string       `json:"databaseUrl"`
	MediaStorage  MediaStorage `json:"mediaStorage"`
	Sessions      Sessions     `json:"sessions"`
	Stories       Stories      `json:"stories"`
	Push          Push         `json:"push"`
}

// UsePostgres returns true if PostgreSQL should be used
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// MediaStorage configuration
type MediaStorage struct {
	BasePath          string   `json:"basePath"`
	MaxFileSizeMB     int64    `json:"maxFileSizeMB"`
	AllowedExtensions []string `json:"allowedExtensions"`
}

// Sessions configuration
type Sessions struct {
	DurationHours int `json:"durationHours"`
}

// Stories configuration
type Stories struct {
	SweepIntervalMinutes int `json:"sweepIntervalMinutes"`
}

// Push notification configuration. Disabled when the credentials path is empty.
type Push struct {
	FirebaseCredentialsPath string `json:"firebaseCredentialsPath"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		ServerAddress: ":5000",
		DatabasePath:  "guestlens.db",
		MediaStorage: MediaStorage{
			BasePath:      "./media",
			MaxFileSizeMB: 100,
			AllowedExtensions: []string{
				".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".heif",
				".mp4", ".mov", ".webm",
			},
		},
		Sessions: Sessions{
			DurationHours: 72,
		},
		Stories: Stories{
			SweepIntervalMinutes: 15,
		},
	}
}

// Load loads configuration from file or environment
func Load() (*Config, error) {
	cfg := defaultConfig()

	// Try to load from config file
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override from environment variables
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.ServerAddress = addr
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if basePath := os.Getenv("MEDIA_STORAGE_PATH"); basePath != "" {
		cfg.MediaStorage.BasePath = basePath
	}
	if hours := os.Getenv("SESSION_DURATION_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil && parsed > 0 {
			cfg.Sessions.DurationHours = parsed
		}
	}
	if minutes := os.Getenv("STORY_SWEEP_INTERVAL_MINUTES"); minutes != "" {
		if parsed, err := strconv.Atoi(minutes); err == nil && parsed > 0 {
			cfg.Stories.SweepIntervalMinutes = parsed
		}
	}
	if creds := os.Getenv("FIREBASE_CREDENTIALS_PATH"); creds != "" {
		cfg.Push.FirebaseCredentialsPath = creds
	}

	// Ensure media storage directory exists
	if err := os.MkdirAll(cfg.MediaStorage.BasePath, 0755); err != nil {
		return nil, err
	}

	// Make base path absolute
	absPath, err := filepath.Abs(cfg.MediaStorage.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.MediaStorage.BasePath = absPath

	return cfg, nil
}
