package app

import (
	"fmt"

	"go-leave/internal/config"
	"go-leave/internal/middleware"
	"go-leave/internal/obs"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const redisRetries = 5

// BuildApp connects infrastructure and mounts every module on router. The
// returned cleanup closes the connections it opened.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.Server.AutoMigrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, redisRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	obs.Init()
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(),
		gin.Recovery(),
	)
	router.GET("/metrics", gin.WrapH(obs.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api/v1")
	if cfg.RateLimit.PerSecond > 0 {
		api.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst))
	}

	if err := registerModules(api, Infra{Config: cfg, SQL: sqlDB, Gorm: gormDB, Redis: rdb, Logger: logger}); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
