package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/band"
	"github.com/SAP-F-2025/exam-engine/internal/cache"
	"github.com/SAP-F-2025/exam-engine/internal/config"
	"github.com/SAP-F-2025/exam-engine/internal/handlers"
	"github.com/SAP-F-2025/exam-engine/internal/models"
	"github.com/SAP-F-2025/exam-engine/internal/repositories/postgres"
	"github.com/SAP-F-2025/exam-engine/internal/scoring"
	"github.com/SAP-F-2025/exam-engine/internal/services"
	"github.com/SAP-F-2025/exam-engine/internal/utils"
	"github.com/SAP-F-2025/exam-engine/internal/validator"
	"github.com/SAP-F-2025/exam-engine/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.ExamRecord{}, &models.ResultRecord{}); err != nil {
		logger.LogError(err, "Failed to run migrations")
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to Redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	examCache := cache.NewRedisCache(redisClient, slogger)
	v := validator.New()

	engine := scoring.NewEngine(band.Default())
	examService := services.NewExamService(repo, examCache, slogger)
	if err := examService.InvalidateAll(context.Background()); err != nil {
		logger.Warn("Failed to flush exam cache", "error", err)
	}
	sessionService := services.NewSessionService(examService, repo, engine, publisher, slogger, v)
	exportService := services.NewExportService(sessionService, slogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(examService, sessionService, exportService, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting exam engine", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server error")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError(err, "Forced shutdown")
	}
}
