package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type ResponseRepo interface {
  // Upsert inserts or overwrites responses keyed by
  // (assessment_id, question_id). Last write wins per question.
  Upsert(ctx context.Context, tx *gorm.DB, responses []*types.Response) error
  GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Response, error)
  // GetByAssessmentIDsWithQuestions preloads Question and Question.Category
  // for report aggregation.
  GetByAssessmentIDsWithQuestions(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Response, error)
  CountByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (int64, error)
}

type responseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
  repoLog := baseLog.With("repo", "ResponseRepo")
  return &responseRepo{db: db, log: repoLog}
}

func (rr *responseRepo) Upsert(ctx context.Context, tx *gorm.DB, responses []*types.Response) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if len(responses) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"answer", "confidence_level", "updated_at"}),
    }).
    Create(&responses).Error; err != nil {
    return err
  }
  return nil
}

func (rr *responseRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Response, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Response
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

func (rr *responseRepo) GetByAssessmentIDsWithQuestions(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Response, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.Response
  if len(assessmentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("assessment_id IN ?", assessmentIDs).
    Preload("Question").
    Preload("Question.Category").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *responseRepo) CountByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var count int64
  if len(assessmentIDs) == 0 {
    return 0, nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Response{}).
    Where("assessment_id IN ?", assessmentIDs).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
