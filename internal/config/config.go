package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Storage  StorageConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds document store connection configuration
type DatabaseConfig struct {
	URL string
}

// OpenAIConfig holds the AI gateway configuration. Model serves the
// structured calls (recognition, recipes, meal plans, insights); SearchModel
// serves the web-search-grounded chat.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	SearchModel string
}

// StorageConfig holds Azure Blob Storage configuration for scanned meal images
type StorageConfig struct {
	AccountName    string
	AccountKey     string
	ImageContainer string
}

// SecurityConfig holds at-rest encryption configuration. When Key is empty the
// document store persists plaintext JSON.
type SecurityConfig struct {
	EncryptionKey string // exactly 32 bytes for AES-256
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// OpenAI defaults
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.searchmodel", "gpt-4o-mini-search-preview")

	// Storage defaults
	v.SetDefault("storage.imagecontainer", "meal-images")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// Database
	v.BindEnv("database.url", "DATABASE_URL")

	// OpenAI
	v.BindEnv("openai.apikey", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "OPENAI_MODEL")
	v.BindEnv("openai.searchmodel", "OPENAI_SEARCH_MODEL")

	// Storage
	v.BindEnv("storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("storage.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("storage.imagecontainer", "AZURE_STORAGE_IMAGE_CONTAINER")

	// Security
	v.BindEnv("security.encryptionkey", "DOCUMENT_ENCRYPTION_KEY")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}

	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.apikey is required")
	}

	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai.model is required")
	}

	if c.OpenAI.SearchModel == "" {
		return fmt.Errorf("openai.searchmodel is required")
	}

	if c.Storage.AccountName == "" || c.Storage.AccountKey == "" {
		return fmt.Errorf("azure storage credentials are required (account name + key)")
	}

	if c.Security.EncryptionKey != "" && len(c.Security.EncryptionKey) != 32 {
		return fmt.Errorf("security.encryptionkey must be exactly 32 bytes when set")
	}

	return nil
}
