package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookline/reader/backend/internal/api/handlers"
	"github.com/bookline/reader/backend/internal/database"
	"github.com/bookline/reader/backend/internal/metrics"
	"github.com/bookline/reader/backend/internal/middleware"
	"github.com/bookline/reader/backend/internal/services"
)

func main() {
	var (
		translationStore services.TranslationStore
		preferenceStore  services.PreferenceBackend
	)

	// TRANSLATION_DB selects the persistent backend; without it the
	// service runs on in-memory stores (entries live until restart).
	if dbPath := os.Getenv("TRANSLATION_DB"); dbPath != "" {
		db, err := database.Initialize(dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		translationStore = services.NewGormTranslationStore(db)
		preferenceStore = services.NewGormPreferenceBackend(db)
		log.Printf("Translation store: sqlite (%s)", dbPath)
	} else {
		translationStore = services.NewMemoryTranslationStore()
		preferenceStore = services.NewMemoryPreferenceBackend()
		log.Println("Translation store: in-memory")
	}

	provider := services.NewGoogleTranslateProvider()
	translator := services.NewChunkingTranslator(provider)
	cache := services.NewTranslationCacheService(translationStore)
	preferences := services.NewPreferenceService(preferenceStore)
	orchestrator := services.NewTranslationOrchestrator(cache, translator)

	translationHandler := handlers.NewTranslationHandler(orchestrator, cache, preferences)

	// Keep the cache-size gauges fresh even when nobody hits the stats endpoint.
	go publishCacheMetrics(cache, preferences)

	router := gin.Default()
	router.Use(metrics.HTTPMetrics())
	router.Use(cors.New(corsConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/auth/status", middleware.GetAuthStatus)

	api := router.Group("/api")
	{
		api.POST("/chapters/:chapterId/translate", translationHandler.TranslateChapter)
		api.PUT("/translation/preferences/:chapterId", translationHandler.SetPreference)
		api.GET("/translation/preferences/:chapterId", translationHandler.GetPreference)
	}

	admin := router.Group("/api/admin", middleware.AdminKeyAuth())
	{
		admin.GET("/translation-cache/stats", translationHandler.GetCacheStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting translation server on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.AllowOrigins = strings.Split(origins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Session-ID")
	config.ExposeHeaders = append(config.ExposeHeaders, "X-Session-ID")
	return config
}

func publishCacheMetrics(cache *services.TranslationCacheService, preferences *services.PreferenceService) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		stats, err := cache.Stats()
		if err != nil {
			log.Printf("Metrics: failed to read cache stats: %v", err)
			continue
		}
		if count, err := preferences.Count(); err == nil {
			stats.UserPreferences = count
		}
		metrics.UpdateCacheMetrics(stats)
	}
}
