package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/tcg-tracker/collection/internal/api/handlers"
	"github.com/codyseavey/tcg-tracker/collection/internal/config"
	"github.com/codyseavey/tcg-tracker/collection/internal/metrics"
	"github.com/codyseavey/tcg-tracker/collection/internal/services"
)

func SetupRouter(cfg *config.Config, importService *services.ImportService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), metricsMiddleware())

	serveFrontend := cfg.Server.FrontendPath != "" && dirExists(cfg.Server.FrontendPath)

	// CORS configuration - allow origins from config
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = false // Explicitly set
	router.Use(cors.New(corsConfig))

	// Initialize handlers
	importHandler := handlers.NewImportHandler(importService, cfg.Import.RatePerMinute, cfg.Import.MaxUploadBytes)
	collectionHandler := handlers.NewCollectionHandler()
	setHandler := handlers.NewSetHandler()

	// API routes
	api := router.Group("/api")
	{
		// Import routes
		imports := api.Group("/import")
		{
			imports.POST("", importHandler.Import)
			imports.GET("/runs", importHandler.ListRuns)
			imports.GET("/runs/:id/rejects", importHandler.GetRejects)
		}

		// Collection routes
		collection := api.Group("/collection")
		{
			collection.GET("", collectionHandler.GetCollection)
			collection.GET("/stats", collectionHandler.GetStats)
			collection.DELETE("/:id", collectionHandler.DeleteCollectionItem)
		}

		// Catalog routes
		sets := api.Group("/sets")
		{
			sets.GET("", setHandler.ListSets)
			sets.GET("/:code/cards", setHandler.GetSetCards)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve frontend static files
	if serveFrontend {
		frontendPath := cfg.Server.FrontendPath
		indexPath := filepath.Join(frontendPath, "index.html")

		// Serve static assets
		router.Static("/assets", filepath.Join(frontendPath, "assets"))

		// Serve root index.html
		router.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})

		// SPA fallback - serve index.html for all non-API routes
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path

			// Don't serve index.html for API routes
			if strings.HasPrefix(path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}

			// Serve index.html for SPA routing
			c.File(indexPath)
		})
	}

	return router
}

// metricsMiddleware records request counts and latency labelled by route
// template, not raw path.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
