package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type PreambleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, preambles []*types.Preamble) ([]*types.Preamble, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Preamble, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, preambleIDs []uuid.UUID) ([]*types.Preamble, error)
  GetByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Preamble, error)
  Update(ctx context.Context, tx *gorm.DB, preambleID uuid.UUID, updates map[string]interface{}) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, preambleIDs []uuid.UUID) error
}

type preambleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPreambleRepo(db *gorm.DB, baseLog *logger.Logger) PreambleRepo {
  repoLog := baseLog.With("repo", "PreambleRepo")
  return &preambleRepo{db: db, log: repoLog}
}

func (pr *preambleRepo) Create(ctx context.Context, tx *gorm.DB, preambles []*types.Preamble) ([]*types.Preamble, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(preambles) == 0 {
    return []*types.Preamble{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&preambles).Error; err != nil {
    return nil, err
  }
  return preambles, nil
}

func (pr *preambleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Preamble, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Preamble
  if err := transaction.WithContext(ctx).
    Preload("Category").
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *preambleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, preambleIDs []uuid.UUID) ([]*types.Preamble, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Preamble
  if len(preambleIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", preambleIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *preambleRepo) GetByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.Preamble, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Preamble
  if len(categoryIDs) == 0 {
    return results, nil
  }

  // Oldest first so callers can take the first preamble per category.
  if err := transaction.WithContext(ctx).
    Where("category_id IN ?", categoryIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *preambleRepo) Update(ctx context.Context, tx *gorm.DB, preambleID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(updates) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Preamble{}).
    Where("id = ?", preambleID).
    Updates(updates).Error; err != nil {
    return err
  }
  return nil
}

func (pr *preambleRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, preambleIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(preambleIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", preambleIDs).
    Delete(&types.Preamble{}).Error; err != nil {
    return err
  }
  return nil
}
