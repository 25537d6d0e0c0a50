package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type ReportRepo interface {
  Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, reportIDs []uuid.UUID) ([]*types.Report, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Report, error)
  GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Report, error)
}

type reportRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
  repoLog := baseLog.With("repo", "ReportRepo")
  return &reportRepo{db: db, log: repoLog}
}

func (rr *reportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if len(reports) == 0 {
    return []*types.Report{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&reports).Error; err != nil {
    return nil, err
  }
  return reports, nil
}

func (rr *reportRepo) GetByIDs(ctx context.Context, tx *gorm.DB, reportIDs []uuid.UUID) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Report
  if len(reportIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", reportIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *reportRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var reports []*types.Report
  if len(userIDs) == 0 {
    return reports, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("created_at DESC").
    Find(&reports).Error; err != nil {
    return nil, err
  }
  return reports, nil
}

func (rr *reportRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Report, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Report
  if len(assessmentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("assessment_id IN ?", assessmentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
