package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"smart-meter-exploration/internal/api"
	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/data"
	"smart-meter-exploration/internal/pipeline"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		log.Printf("Loaded config from %s", path)
	}

	dataset, err := data.LoadDataset(cfg.Data)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	// Results only depend on the immutable matrix, so a long TTL is fine.
	cache := pipeline.NewCache(time.Hour)
	runner, err := pipeline.FromConfig(dataset.Matrix, cfg)
	if err != nil {
		log.Fatalf("Failed to build variants: %v", err)
	}
	runner.WithCache(cache)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cache.StartCleanup(ctx, 10*time.Minute)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var origins []string
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}
	router := api.NewRouter(api.Deps{
		Runner:         runner,
		Households:     dataset.Households,
		Summary:        dataset.Summary,
		DefaultMaxK:    cfg.Clustering.MaxK,
		AllowedOrigins: origins,
		PagesDir:       cfg.Output.PagesDir,
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s with %d variants", addr, runner.Registry().Len())
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
