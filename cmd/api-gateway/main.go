package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/examboard/examboard-api/api/swagger"
	"github.com/examboard/examboard-api/internal/handler"
	"github.com/examboard/examboard-api/internal/middleware"
	"github.com/examboard/examboard-api/internal/repository"
	"github.com/examboard/examboard-api/internal/service"
	"github.com/examboard/examboard-api/pkg/cache"
	"github.com/examboard/examboard-api/pkg/config"
	"github.com/examboard/examboard-api/pkg/logger"
	corsmiddleware "github.com/examboard/examboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/examboard/examboard-api/pkg/middleware/requestid"
)

// @title Exam Board API
// @version 0.1.0
// @description Schedule projection and conflict aggregation service for exam schedule review
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Projection.CacheTTL, logr, cacheRepo != nil)

	scheduleSvc := service.NewScheduleService(cacheSvc, metricsSvc, logr, service.ScheduleServiceConfig{
		ResultTTL: cfg.Projection.ResultTTL,
		CacheTTL:  cfg.Projection.CacheTTL,
	})
	exportSvc := service.NewExportService(scheduleSvc, logr, cfg.Exports.Enabled, nil, nil)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, cfg.Projection.MaxPayloadBytes)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		schedules := api.Group("/schedules")
		schedules.POST("", scheduleHandler.Load)
		schedules.GET("/:id/grid", scheduleHandler.Grid)
		schedules.GET("/:id/density", scheduleHandler.Density)
		schedules.GET("/:id/stats", scheduleHandler.Stats)
		schedules.GET("/:id/conflicts", scheduleHandler.Conflicts)
		schedules.GET("/:id/exams", scheduleHandler.Exams)
		schedules.DELETE("/:id", scheduleHandler.Drop)
		schedules.GET("/:id/export/exams.csv", exportHandler.ExamsCSV)
		schedules.GET("/:id/export/conflicts.pdf", exportHandler.ConflictsPDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
