package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/curator/internal/config"
	"github.com/mrlokans/curator/internal/database"
	"github.com/mrlokans/curator/internal/database/books"
	http_controllers "github.com/mrlokans/curator/internal/http"
	"github.com/mrlokans/curator/internal/metadata"
	"github.com/mrlokans/curator/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Book Curation API v%s", version)

	if cfg.Telemetry.ProjectID != "" {
		log.Printf("Telemetry project configured: %s", cfg.Telemetry.ProjectID)
	}

	db, err := database.NewDatabase(database.Options{
		DSN:        cfg.Database.URL,
		Path:       cfg.Database.Path,
		ForceLocal: cfg.Database.ForceLocal,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	bookService := services.NewBookService(bookRepo)

	placement := metadata.NewClient(cfg.Metadata.BaseURL)
	healthService := services.NewHealthService(version, placement)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		BookService:   bookService,
		HealthService: healthService,
		Version:       version,
	})

	Serve(router, cfg, nil)
}
