package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type QuestionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
  // GetAllOrdered returns every question with its category preloaded,
  // ordered by the explicit composite key (category order, question order).
  GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Question, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Question, error)
  GetByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Question, error)
  Update(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, updates map[string]interface{}) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error
  OrderExists(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, order int, excludeID uuid.UUID) (bool, error)
}

type questionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
  repoLog := baseLog.With("repo", "QuestionRepo")
  return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  if len(questions) == 0 {
    return []*types.Question{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
    return nil, err
  }
  return questions, nil
}

func (qr *questionRepo) GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  var results []*types.Question
  if err := transaction.WithContext(ctx).
    Joins("JOIN category ON category.id = question.category_id").
    Order("category.display_order ASC, question.display_order ASC").
    Preload("Category").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (qr *questionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  var results []*types.Question
  if len(questionIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", questionIDs).
    Preload("Category").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (qr *questionRepo) GetByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  var results []*types.Question
  if len(categoryIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("category_id IN ?", categoryIDs).
    Order("display_order ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (qr *questionRepo) Update(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  if len(updates) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Question{}).
    Where("id = ?", questionID).
    Updates(updates).Error; err != nil {
    return err
  }
  return nil
}

func (qr *questionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  if len(questionIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", questionIDs).
    Delete(&types.Question{}).Error; err != nil {
    return err
  }
  return nil
}

func (qr *questionRepo) OrderExists(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, order int, excludeID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }

  query := transaction.WithContext(ctx).
    Model(&types.Question{}).
    Where("category_id = ? AND display_order = ?", categoryID, order)
  if excludeID != uuid.Nil {
    query = query.Where("id <> ?", excludeID)
  }

  var count int64
  if err := query.Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
