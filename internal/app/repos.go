package app

import (
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/repos"
)

type Repos struct {
  User          repos.UserRepo
  UserToken     repos.UserTokenRepo
  Category      repos.CategoryRepo
  Preamble      repos.PreambleRepo
  Question      repos.QuestionRepo
  Assessment    repos.AssessmentRepo
  Response      repos.ResponseRepo
  Report        repos.ReportRepo
  ReportSection repos.ReportSectionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
  log.Info("Wiring repos...")
  return Repos{
    User:          repos.NewUserRepo(db, log),
    UserToken:     repos.NewUserTokenRepo(db, log),
    Category:      repos.NewCategoryRepo(db, log),
    Preamble:      repos.NewPreambleRepo(db, log),
    Question:      repos.NewQuestionRepo(db, log),
    Assessment:    repos.NewAssessmentRepo(db, log),
    Response:      repos.NewResponseRepo(db, log),
    Report:        repos.NewReportRepo(db, log),
    ReportSection: repos.NewReportSectionRepo(db, log),
  }
}
