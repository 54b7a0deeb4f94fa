package config

const (
	// DefaultDatabasePath is the default path for the embedded SQLite database
	DefaultDatabasePath = "./library.db"

	// DefaultMetadataBaseURL is the GCP metadata server reachable from
	// instances running on Google Cloud
	DefaultMetadataBaseURL = "http://metadata.google.internal"
)
