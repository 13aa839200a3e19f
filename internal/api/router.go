// Package api exposes a read-only HTTP view of the clustering pipeline.
package api

import (
	"net/http"
	"os"

	"smart-meter-exploration/internal/api/handlers"
	"smart-meter-exploration/internal/api/middleware"
	"smart-meter-exploration/internal/data"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/monitoring"
	"smart-meter-exploration/internal/pipeline"

	"github.com/gin-gonic/gin"
)

// Deps are the loaded objects the routes serve.
type Deps struct {
	Runner         *pipeline.Runner
	Households     map[string]model.Household
	Summary        data.Summary
	DefaultMaxK    int
	AllowedOrigins []string
	// PagesDir, when it exists, is served under /pages.
	PagesDir string
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	variantHandler := handlers.NewVariantHandler(d.Runner, d.Households, d.DefaultMaxK)
	datasetHandler := handlers.NewDatasetHandler(d.Summary)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dataset", datasetHandler.GetDataset)
		v1.GET("/variants", variantHandler.ListVariants)
		v1.GET("/variants/:name/clusters", variantHandler.GetClusters)
		v1.GET("/variants/:name/inertia", variantHandler.GetInertia)
		v1.GET("/variants/:name/chart", variantHandler.GetChart)
	}

	if d.PagesDir != "" {
		if info, err := os.Stat(d.PagesDir); err == nil && info.IsDir() {
			router.Static("/pages", d.PagesDir)
			monitoring.Logf("[api] serving pages from %s", d.PagesDir)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
