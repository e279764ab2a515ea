// Package config provides configuration management for the bookkeeping
// system. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server Server
	Mirror Mirror
	Data   Data
	Debug  bool
}

// Server represents the HTTP API configuration.
type Server struct {
	Addr     string
	APIToken string
}

// Mirror represents the remote backup endpoint configuration.
type Mirror struct {
	URL        string
	Token      string
	CompanyKey string
}

// Data represents storage path configuration.
type Data struct {
	Root        string
	DBPath      string
	SyncDBPath  string
	BookDir     string
	CatalogPath string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Server: Server{
			Addr:     getEnvOrDefault("CONTALOCAL_ADDR", ":8080"),
			APIToken: os.Getenv("CONTALOCAL_API_TOKEN"),
		},
		Mirror: Mirror{
			URL:        os.Getenv("CONTALOCAL_MIRROR_URL"),
			Token:      os.Getenv("CONTALOCAL_MIRROR_TOKEN"),
			CompanyKey: os.Getenv("CONTALOCAL_MIRROR_KEY"),
		},
		Data: Data{
			Root:        getEnvOrDefault("CONTALOCAL_DATA_ROOT", "./data"),
			DBPath:      os.Getenv("CONTALOCAL_DB_PATH"),
			SyncDBPath:  os.Getenv("CONTALOCAL_SYNC_DB_PATH"),
			BookDir:     os.Getenv("CONTALOCAL_BOOK_DIR"),
			CatalogPath: getEnvOrDefault("CONTALOCAL_CATALOG_PATH", "./config/puc-catalog.yaml"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that the named configuration fields are set. Field names
// use the dotted form, e.g. "mirror.url".
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, field := range required {
		var value string
		switch field {
		case "server.addr":
			value = c.Server.Addr
		case "server.apiToken":
			value = c.Server.APIToken
		case "mirror.url":
			value = c.Mirror.URL
		case "mirror.token":
			value = c.Mirror.Token
		case "mirror.companyKey":
			value = c.Mirror.CompanyKey
		case "data.root":
			value = c.Data.Root
		case "data.dbPath":
			value = c.Data.DBPath
		case "data.catalogPath":
			value = c.Data.CatalogPath
		}

		if value == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
