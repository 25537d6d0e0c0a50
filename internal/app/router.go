package app

import (
  "github.com/gin-gonic/gin"

  "github.com/venturecanvas/assessment-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
  return server.NewRouter(server.RouterConfig{
    AuthHandler:       handlerset.Auth,
    AuthMiddleware:    middlewareset.Auth,
    AdminMiddleware:   middlewareset.Admin,
    UserHandler:       handlerset.User,
    AssessmentHandler: handlerset.Assessment,
    ReportHandler:     handlerset.Report,
    AdminHandler:      handlerset.Admin,
    AllowOrigins:      cfg.AllowOrigins,
  })
}
