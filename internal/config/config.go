package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Metadata
		Telemetry
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		URL        string // Postgres DSN; empty means the embedded store
		Path       string // SQLite file path for the embedded store
		ForceLocal bool   // Use the embedded store even when a DSN is set
	}
	Metadata struct {
		BaseURL string // Metadata server base URL, overridable for tests
	}
	Telemetry struct {
		ProjectID string // Optional project identifier for telemetry export
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_url", "")
	v.SetDefault("use_sqlite", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("metadata_base_url", DefaultMetadataBaseURL)
	v.SetDefault("gcp_project_id", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			URL:        v.GetString("DATABASE_URL"),
			Path:       v.GetString("DATABASE_PATH"),
			ForceLocal: v.GetBool("USE_SQLITE"),
		},
		Metadata: Metadata{
			BaseURL: v.GetString("METADATA_BASE_URL"),
		},
		Telemetry: Telemetry{
			ProjectID: v.GetString("GCP_PROJECT_ID"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
