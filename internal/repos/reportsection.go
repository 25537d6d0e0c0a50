package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type ReportSectionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sections []*types.ReportSection) ([]*types.ReportSection, error)
  GetByReportIDs(ctx context.Context, tx *gorm.DB, reportIDs []uuid.UUID) ([]*types.ReportSection, error)
}

type reportSectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewReportSectionRepo(db *gorm.DB, baseLog *logger.Logger) ReportSectionRepo {
  repoLog := baseLog.With("repo", "ReportSectionRepo")
  return &reportSectionRepo{db: db, log: repoLog}
}

func (rsr *reportSectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.ReportSection) ([]*types.ReportSection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rsr.db
  }

  if len(sections) == 0 {
    return []*types.ReportSection{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&sections).Error; err != nil {
    return nil, err
  }
  return sections, nil
}

func (rsr *reportSectionRepo) GetByReportIDs(ctx context.Context, tx *gorm.DB, reportIDs []uuid.UUID) ([]*types.ReportSection, error) {
  transaction := tx
  if transaction == nil {
    transaction = rsr.db
  }

  var results []*types.ReportSection
  if len(reportIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Joins("JOIN category ON category.id = report_section.category_id").
    Where("report_section.report_id IN ?", reportIDs).
    Order("category.display_order ASC").
    Preload("Category").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
