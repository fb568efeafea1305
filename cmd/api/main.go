package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/rehabtrack/rehab-api/internal/config"
	"github.com/rehabtrack/rehab-api/internal/handler"
	adminHandler "github.com/rehabtrack/rehab-api/internal/handler/admin"
	assessmentHandler "github.com/rehabtrack/rehab-api/internal/handler/assessment"
	patientHandler "github.com/rehabtrack/rehab-api/internal/handler/patient"
	reportHandler "github.com/rehabtrack/rehab-api/internal/handler/report"
	statsHandler "github.com/rehabtrack/rehab-api/internal/handler/stats"
	workoutHandler "github.com/rehabtrack/rehab-api/internal/handler/workout"
	"github.com/rehabtrack/rehab-api/internal/middleware"
	"github.com/rehabtrack/rehab-api/internal/repository/jsonfile"
	"github.com/rehabtrack/rehab-api/internal/router"
	adminService "github.com/rehabtrack/rehab-api/internal/service/admin"
	"github.com/rehabtrack/rehab-api/internal/service/analytics"
	assessmentService "github.com/rehabtrack/rehab-api/internal/service/assessment"
	patientService "github.com/rehabtrack/rehab-api/internal/service/patient"
	reportService "github.com/rehabtrack/rehab-api/internal/service/report"
	workoutService "github.com/rehabtrack/rehab-api/internal/service/workout"
	"github.com/rehabtrack/rehab-api/pkg/document"
	"github.com/rehabtrack/rehab-api/pkg/generator"
	"github.com/rehabtrack/rehab-api/pkg/generator/gemini"
	"github.com/rehabtrack/rehab-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Initialize storage
	store, err := jsonfile.NewStore(afero.NewOsFs(), cfg.Storage.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	patientRepo := jsonfile.NewPatientRepository(store)
	assessmentRepo := jsonfile.NewAssessmentRepository(store)
	workoutRepo := jsonfile.NewWorkoutRepository(store)

	// Initialize the external generator only when a key is configured;
	// the report composer falls back to deterministic narratives otherwise.
	var gen generator.Generator
	if cfg.Gemini.APIKey != "" {
		gen = gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout(),
		})
		log.Info().Str("model", cfg.Gemini.Model).Msg("report generator configured")
	} else {
		log.Info().Msg("no generator API key set, reports use fallback narratives")
	}

	// Initialize services
	patientSvc := patientService.NewService(patientRepo)
	assessmentSvc := assessmentService.NewService(assessmentRepo, patientRepo)
	workoutSvc := workoutService.NewService(workoutRepo)
	analyticsSvc := analytics.NewService(patientRepo, assessmentRepo, workoutRepo)
	adminSvc := adminService.NewService(patientRepo, assessmentRepo, workoutRepo)
	reportSvc := reportService.NewService(
		patientRepo,
		assessmentRepo,
		workoutRepo,
		gen,
		document.NewRenderer(),
		cfg.Gemini.Timeout(),
	)

	// Setup router
	r := router.NewRouter(
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORS:           corsConfig(cfg),
		},
		handler.NewHandler(),
		patientHandler.NewHandler(patientSvc),
		assessmentHandler.NewHandler(assessmentSvc),
		workoutHandler.NewHandler(workoutSvc),
		statsHandler.NewHandler(analyticsSvc),
		reportHandler.NewHandler(reportSvc),
		adminHandler.NewHandler(adminSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	}
	return corsCfg
}
