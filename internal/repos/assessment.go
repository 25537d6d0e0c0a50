package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type AssessmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Assessment, error)
  GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Assessment, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, status string) error
  GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Assessment, error)
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
  CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error)
}

type assessmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
  repoLog := baseLog.With("repo", "AssessmentRepo")
  return &assessmentRepo{db: db, log: repoLog}
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(assessments) == 0 {
    return []*types.Assessment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
    return nil, err
  }
  return assessments, nil
}

func (ar *assessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Assessment
  if len(assessmentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", assessmentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *assessmentRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Assessment
  if len(userIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id IN ?", userIDs).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *assessmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, status string) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Assessment{}).
    Where("id = ?", assessmentID).
    Update("status", status).Error; err != nil {
    return err
  }
  return nil
}

func (ar *assessmentRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Assessment
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Limit(limit).
    Preload("User").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *assessmentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Assessment{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ar *assessmentRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Assessment{}).
    Where("status = ?", status).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
