package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/wardrobe-planner-api/api/swagger"
	"github.com/noah-isme/wardrobe-planner-api/internal/gateway"
	"github.com/noah-isme/wardrobe-planner-api/internal/handler"
	internalmiddleware "github.com/noah-isme/wardrobe-planner-api/internal/middleware"
	"github.com/noah-isme/wardrobe-planner-api/internal/repository"
	"github.com/noah-isme/wardrobe-planner-api/internal/service"
	"github.com/noah-isme/wardrobe-planner-api/pkg/cache"
	"github.com/noah-isme/wardrobe-planner-api/pkg/config"
	"github.com/noah-isme/wardrobe-planner-api/pkg/database"
	"github.com/noah-isme/wardrobe-planner-api/pkg/jobs"
	"github.com/noah-isme/wardrobe-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/wardrobe-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/wardrobe-planner-api/pkg/middleware/requestid"
	"github.com/noah-isme/wardrobe-planner-api/pkg/storage"
)

// @title Wardrobe Planner API
// @version 0.1.0
// @description Outfit composition and weekly wardrobe planning service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Wardrobe.CacheTTL, logr, cfg.Wardrobe.CacheEnabled)
	} else {
		cacheSvc = service.NewCacheService(nil, metrics, cfg.Wardrobe.CacheTTL, logr, false)
	}

	wardrobeRepo := repository.NewWardrobeRepository(db)
	outfitRepo := repository.NewOutfitRepository(db)
	planRepo := repository.NewPlanRepository(db)

	recommender := gateway.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, logr)

	wardrobeSvc := service.NewWardrobeService(wardrobeRepo, cacheSvc, logr, service.WardrobeServiceConfig{
		CacheTTL: cfg.Wardrobe.CacheTTL,
	})
	outfitSvc := service.NewOutfitService(outfitRepo, logr)
	composerSvc := service.NewComposerService(wardrobeRepo, outfitRepo, validate, logr, service.ComposerServiceConfig{
		SessionTTL: cfg.Composer.SessionTTL,
	})
	plannerSvc := service.NewPlannerService(planRepo, wardrobeRepo, outfitRepo, recommender, validate, logr, metrics, service.PlannerServiceConfig{
		SessionTTL:        cfg.Planner.SessionTTL,
		DefaultPlanLength: cfg.Planner.DefaultPlanLength,
		DefaultOccasion:   cfg.Planner.DefaultOccasion,
		DefaultCreativity: cfg.Planner.DefaultCreativity,
		Location:          cfg.Gateway.Location,
	})

	var exportSvc *service.ExportService
	var exportQueue *jobs.Queue
	if cfg.Exports.Enabled {
		fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportRepo := repository.NewExportRepository(db)
		exportSvc = service.NewExportService(exportRepo, planRepo, fileStore, signer, metrics, validate, logr, service.ExportServiceConfig{
			APIPrefix:       cfg.APIPrefix,
			RetentionTTL:    cfg.Exports.RetentionTTL,
			CleanupInterval: cfg.Exports.CleanupInterval,
		})
		exportQueue = jobs.NewQueue("plan-exports", exportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		exportSvc.AttachQueue(exportQueue)
		exportQueue.Start(context.Background())
		defer exportQueue.Stop()
		exportSvc.StartCleanup(context.Background())
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.WithResponseMeta())
	r.Use(internalmiddleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, db, redisClient)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	wardrobeHandler := handler.NewWardrobeHandler(wardrobeSvc)
	api.GET("/wardrobe", wardrobeHandler.List)
	api.GET("/wardrobe/grouped", wardrobeHandler.Grouped)

	composerHandler := handler.NewComposerHandler(composerSvc)
	composer := api.Group("/composer/sessions")
	composer.POST("", composerHandler.Start)
	composer.GET("/:id", composerHandler.State)
	composer.POST("/:id/place", composerHandler.Place)
	composer.POST("/:id/remove", composerHandler.Remove)
	composer.POST("/:id/image", composerHandler.UpdateImage)
	composer.POST("/:id/save", composerHandler.Save)
	composer.DELETE("/:id", composerHandler.Discard)

	outfitHandler := handler.NewOutfitHandler(outfitSvc)
	api.GET("/outfits", outfitHandler.List)
	api.GET("/outfits/:id", outfitHandler.Get)
	api.DELETE("/outfits/:id", outfitHandler.Delete)

	planHandler := handler.NewPlanHandler(plannerSvc)
	sessions := api.Group("/plans/sessions")
	sessions.POST("", planHandler.Create)
	sessions.GET("/:id", planHandler.State)
	sessions.POST("/:id/occasion", planHandler.SetOccasion)
	sessions.POST("/:id/lock", planHandler.ToggleLock)
	sessions.POST("/:id/generate", planHandler.Generate)
	sessions.POST("/:id/save", planHandler.Save)
	sessions.DELETE("/:id", planHandler.Discard)
	api.GET("/plans", planHandler.List)
	api.POST("/plans/:id/open", planHandler.Open)
	api.DELETE("/plans/:id", planHandler.Delete)

	if exportSvc != nil {
		exportHandler := handler.NewExportHandler(exportSvc)
		api.POST("/plans/:id/exports", exportHandler.Create)
		api.GET("/exports/:id", exportHandler.Status)
		api.GET("/exports/download", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
