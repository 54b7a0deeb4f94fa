package http

import (
	"github.com/mrlokans/curator/internal/services"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router.
type RouterConfig struct {
	BookService   *services.BookService
	HealthService *services.HealthService

	// Application info
	Version string
}
