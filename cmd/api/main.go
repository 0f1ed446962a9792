package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"stylegrid/internal/api/handlers"
	"stylegrid/internal/api/middleware"
	"stylegrid/internal/config"
	"stylegrid/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if port := os.Getenv("API_PORT"); port != "" {
		cfg.Server.Port = port
	}

	logging.Setup(cfg.Logging)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	analyzeHandler := handlers.NewAnalyzeHandler(cfg)
	stylesHandler := handlers.NewStylesHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.POST("/analyze/upload", analyzeHandler.AnalyzeUpload)
		api.GET("/analyze/:id", analyzeHandler.GetSnapshot)

		api.GET("/datasets", handlers.ListDatasets)
		api.GET("/styles", stylesHandler.ListStyles)
	}

	// Serve the dashboard frontend if a build exists (SPA routing).
	staticDir := cfg.Server.StaticDir
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		staticDir = dir
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Info().Str("dir", staticDir).Msg("serving static files")
	} else {
		log.Info().Str("dir", staticDir).Msg("static directory not found, skipping static file serving")
	}

	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
