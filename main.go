package main

import (
	"github.com/joho/godotenv"

	"github.com/mrlokans/curator/internal/config"
	"github.com/mrlokans/curator/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "1.0.0"
	Commit  = "unknown"
)

func main() {
	// Load a local .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
