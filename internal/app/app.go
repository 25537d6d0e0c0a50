package app

import (
  "fmt"
  "os"

  "github.com/gin-gonic/gin"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/cache"
  "github.com/venturecanvas/assessment-backend/internal/db"
  "github.com/venturecanvas/assessment-backend/internal/logger"
)

type App struct {
  Log      *logger.Logger
  DB       *gorm.DB
  Router   *gin.Engine
  Cfg      Config
  Repos    Repos
  Services Services
}

func New() (*App, error) {
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    return nil, fmt.Errorf("init logger: %w", err)
  }

  log.Info("Loading environment variables...")
  cfg := LoadConfig(log)

  pg, err := db.NewPostgresService(log)
  if err != nil {
    log.Sync()
    return nil, fmt.Errorf("init postgres: %w", err)
  }
  if err := pg.AutoMigrateAll(); err != nil {
    log.Sync()
    return nil, fmt.Errorf("postgres automigrate: %w", err)
  }
  theDB := pg.DB()

  refCache := cache.NewReferenceCache(cfg.RedisAddr, log)
  if refCache == nil {
    log.Info("REDIS_ADDR not set, reference caching disabled")
  }

  reposet := wireRepos(theDB, log)
  serviceset := wireServices(theDB, log, cfg, reposet, refCache)
  handlerset := wireHandlers(log, serviceset)
  middlewareset := wireMiddleware(log, serviceset)
  router := wireRouter(cfg, handlerset, middlewareset)

  return &App{
    Log:      log,
    DB:       theDB,
    Router:   router,
    Cfg:      cfg,
    Repos:    reposet,
    Services: serviceset,
  }, nil
}

func (a *App) Run(addr string) error {
  if a == nil || a.Router == nil {
    return fmt.Errorf("app not initialized")
  }
  return a.Router.Run(addr)
}

func (a *App) Close() {
  if a == nil {
    return
  }
  if a.Log != nil {
    a.Log.Sync()
  }
}
