package app

import (
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/cache"
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/services"
)

type Services struct {
  Auth       services.AuthService
  User       services.UserService
  Assessment services.AssessmentService
  Report     services.ReportService
  Reference  services.ReferenceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, refCache *cache.ReferenceCache) Services {
  log.Info("Wiring services...")
  return Services{
    Auth:       services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
    User:       services.NewUserService(db, log, reposet.User),
    Assessment: services.NewAssessmentService(db, log, reposet.Assessment, reposet.Question, reposet.Preamble, reposet.Response, refCache),
    Report:     services.NewReportService(db, log, reposet.Assessment, reposet.Response, reposet.Report, reposet.ReportSection),
    Reference:  services.NewReferenceService(db, log, reposet.Category, reposet.Question, reposet.Preamble, reposet.User, reposet.Assessment, refCache),
  }
}
