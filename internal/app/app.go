package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/database"
	"github.com/blogicum/core/internal/modules/storage/image"
	pkgcron "github.com/blogicum/core/internal/pkg/cron"
	pkgredis "github.com/blogicum/core/internal/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rdb    *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, cfg.AutoMigrate)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if !cfg.Redis.Disable {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			closeStores(db, nil, logger)
			return nil, fmt.Errorf("redis: %w", err)
		}
	}
	return assemble(logger, cfg, db, rc)
}

// assemble builds storage, routes and jobs on top of open connections. On
// failure the connections are closed.
func assemble(logger *zap.Logger, cfg *config.AppConfig, db *gorm.DB, rc *pkgredis.Client) (app *App, err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		if err != nil {
			cancel()
			closeStores(db, rc, logger)
		}
	}()

	images, err := image.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := NewEngine(Deps{Config: cfg, DB: db, Redis: rc, Images: images, Logger: logger})
	if err != nil {
		return nil, err
	}

	sched := pkgcron.New(logger)
	registerCronJobs(sched, db, logger)
	sched.Start(ctx)

	return &App{cfg: cfg, router: router, db: db, rdb: rc, logger: logger, cancel: cancel, sched: sched}, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes connections.
func (a *App) Shutdown() {
	a.cancel()
	closeStores(a.db, a.rdb, a.logger)
}

func closeStores(db *gorm.DB, rc *pkgredis.Client, logger *zap.Logger) {
	if rc != nil {
		if err := rc.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("database close failed", zap.Error(err))
		}
	}
}
