package app

import (
  "github.com/venturecanvas/assessment-backend/internal/handlers"
  "github.com/venturecanvas/assessment-backend/internal/logger"
)

type Handlers struct {
  Auth       *handlers.AuthHandler
  User       *handlers.UserHandler
  Assessment *handlers.AssessmentHandler
  Report     *handlers.ReportHandler
  Admin      *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
  log.Info("Wiring handlers...")
  return Handlers{
    Auth:       handlers.NewAuthHandler(serviceset.Auth),
    User:       handlers.NewUserHandler(serviceset.User),
    Assessment: handlers.NewAssessmentHandler(serviceset.Assessment),
    Report:     handlers.NewReportHandler(serviceset.Report),
    Admin:      handlers.NewAdminHandler(serviceset.Reference),
  }
}
