package app

import (
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/middleware"
)

type Middleware struct {
  Auth  *middleware.AuthMiddleware
  Admin *middleware.AdminMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
  log.Info("Wiring middleware...")
  return Middleware{
    Auth:  middleware.NewAuthMiddleware(log, serviceset.Auth),
    Admin: middleware.NewAdminMiddleware(log),
  }
}
