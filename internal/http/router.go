package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// The API is consumed cross-origin by arbitrary frontends
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsCfg))

	health := NewHealthController(cfg.HealthService)
	booksController := NewBooksController(cfg.BookService)

	// Health and info endpoints
	router.GET("/health", health.Status)
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Library Book Curation API",
			"version": cfg.Version,
			"docs":    "/docs",
		})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	router.POST("/books", booksController.Create)
	router.GET("/books", booksController.List)
	router.GET("/books/:id", booksController.Get)
	router.PUT("/books/:id", booksController.Update)
	router.DELETE("/books/:id", booksController.Delete)
	router.POST("/books/:id/vote", booksController.Vote)

	return router
}
