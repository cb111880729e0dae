// @title Risk Profile API
// @version 1.0
// @description Risk assessment scoring, portfolio risk, concentration, suitability, stress testing and recommendations.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/riskprofile/config"
	_ "github.com/epeers/riskprofile/docs"
	"github.com/epeers/riskprofile/internal/cache"
	"github.com/epeers/riskprofile/internal/database"
	"github.com/epeers/riskprofile/internal/handlers"
	"github.com/epeers/riskprofile/internal/metrics"
	"github.com/epeers/riskprofile/internal/middleware"
	"github.com/epeers/riskprofile/internal/models"
	"github.com/epeers/riskprofile/internal/reference"
	"github.com/epeers/riskprofile/internal/repository"
	"github.com/epeers/riskprofile/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection and schema
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.Pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Load reference tables
	refStore, err := reference.NewStore()
	if err != nil {
		log.Fatalf("Failed to build reference tables: %v", err)
	}
	if cfg.ScenarioFile != "" {
		if err := refStore.LoadScenarioFile(cfg.ScenarioFile); err != nil {
			log.Fatalf("Failed to load scenario file %s: %v", cfg.ScenarioFile, err)
		}
	}

	// Initialize caches
	profileCache := cache.NewProfileCache(cfg.ProfileCacheTTL)

	// Initialize repositories
	investorRepo := repository.NewInvestorRepository(db.Pool)
	assessmentRepo := repository.NewAssessmentRepository(db.Pool)
	profileRepo := repository.NewRiskProfileRepository(db.Pool)
	recRepo := repository.NewRecommendationRepository(db.Pool)

	// Initialize services
	var scorerOpts []services.ScorerOption
	if cfg.ToleranceJitterSeed != nil {
		scorerOpts = append(scorerOpts, services.WithToleranceJitter(*cfg.ToleranceJitterSeed))
	}
	scorer := services.NewAssessmentScorer(refStore, scorerOpts...)
	profileSvc := services.NewProfileService(scorer, investorRepo, assessmentRepo, profileRepo, profileCache)
	thresholds := models.ConcentrationThresholds{
		SinglePositionLimit: cfg.SinglePositionLimit,
		SectorLimit:         cfg.SectorLimit,
		Top5Limit:           cfg.Top5Limit,
	}
	analysisSvc := services.NewAnalysisService(profileSvc, refStore, thresholds, recRepo, cfg.DefaultBenchmark)

	// Initialize handlers
	investorHandler := handlers.NewInvestorHandler(profileSvc)
	analysisHandler := handlers.NewAnalysisHandler(analysisSvc)

	// Setup Gin router
	router := gin.New()

	// Apply global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ValidateInvestor())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.RegisterRoutes(router, investorHandler, analysisHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
