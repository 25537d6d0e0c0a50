package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/cache"
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/normalization"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

// Overview is the admin dashboard summary.
type Overview struct {
  UserCount            int64               `json:"user_count"`
  AssessmentCount      int64               `json:"assessment_count"`
  CompletedAssessments int64               `json:"completed_assessments"`
  CategoryCount        int64               `json:"category_count"`
  RecentAssessments    []*types.Assessment `json:"recent_assessments"`
}

// ReferenceService is the admin surface over the question bank: categories,
// their preambles and questions. Every mutation invalidates the reference
// cache so assessment workspaces pick the change up on the next load.
type ReferenceService interface {
  CreateCategory(ctx context.Context, name string, order int) (*types.Category, error)
  ListCategories(ctx context.Context) ([]*types.Category, error)
  UpdateCategory(ctx context.Context, categoryID uuid.UUID, updates map[string]interface{}) error
  DeleteCategory(ctx context.Context, categoryID uuid.UUID) error

  CreateQuestion(ctx context.Context, categoryID uuid.UUID, content string, order int) (*types.Question, error)
  ListQuestions(ctx context.Context) ([]*types.Question, error)
  UpdateQuestion(ctx context.Context, questionID uuid.UUID, updates map[string]interface{}) error
  DeleteQuestion(ctx context.Context, questionID uuid.UUID) error

  CreatePreamble(ctx context.Context, categoryID uuid.UUID, content string) (*types.Preamble, error)
  ListPreambles(ctx context.Context) ([]*types.Preamble, error)
  UpdatePreamble(ctx context.Context, preambleID uuid.UUID, updates map[string]interface{}) error
  DeletePreamble(ctx context.Context, preambleID uuid.UUID) error

  GetOverview(ctx context.Context) (*Overview, error)
}

type referenceService struct {
  db             *gorm.DB
  log            *logger.Logger
  categoryRepo   repos.CategoryRepo
  questionRepo   repos.QuestionRepo
  preambleRepo   repos.PreambleRepo
  userRepo       repos.UserRepo
  assessmentRepo repos.AssessmentRepo
  refCache       *cache.ReferenceCache
}

func NewReferenceService(
  db *gorm.DB,
  baseLog *logger.Logger,
  categoryRepo repos.CategoryRepo,
  questionRepo repos.QuestionRepo,
  preambleRepo repos.PreambleRepo,
  userRepo repos.UserRepo,
  assessmentRepo repos.AssessmentRepo,
  refCache *cache.ReferenceCache,
) ReferenceService {
  serviceLog := baseLog.With("service", "ReferenceService")
  return &referenceService{
    db:             db,
    log:            serviceLog,
    categoryRepo:   categoryRepo,
    questionRepo:   questionRepo,
    preambleRepo:   preambleRepo,
    userRepo:       userRepo,
    assessmentRepo: assessmentRepo,
    refCache:       refCache,
  }
}

func (rs *referenceService) CreateCategory(ctx context.Context, name string, order int) (*types.Category, error) {
  name = normalization.TrimInputString(name)
  if name == "" {
    return nil, apierr.Validation(fmt.Errorf("a category name is required"))
  }
  if order < 1 {
    return nil, apierr.Validation(fmt.Errorf("category order must be positive"))
  }

  category := &types.Category{ID: uuid.New(), Name: name, Order: order}
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    taken, oErr := rs.categoryRepo.OrderExists(ctx, tx, order, uuid.Nil)
    if oErr != nil {
      return apierr.Persistence(fmt.Errorf("check category order: %w", oErr))
    }
    if taken {
      return apierr.Validation(fmt.Errorf("category order %d is already in use", order))
    }
    if _, cErr := rs.categoryRepo.Create(ctx, tx, []*types.Category{category}); cErr != nil {
      return apierr.Persistence(fmt.Errorf("create category: %w", cErr))
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  rs.refCache.Invalidate(ctx)
  return category, nil
}

func (rs *referenceService) ListCategories(ctx context.Context) ([]*types.Category, error) {
  categories, err := rs.categoryRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("list categories: %w", err))
  }
  return categories, nil
}

func (rs *referenceService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, updates map[string]interface{}) error {
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := rs.categoryRepo.GetByIDs(ctx, tx, []uuid.UUID{categoryID})
    if gErr != nil {
      return apierr.Persistence(fmt.Errorf("load category: %w", gErr))
    }
    if len(existing) == 0 {
      return apierr.NotFound(fmt.Errorf("category %s not found", categoryID))
    }
    if rawOrder, ok := updates["display_order"]; ok {
      order, isInt := rawOrder.(int)
      if !isInt || order < 1 {
        return apierr.Validation(fmt.Errorf("category order must be a positive integer"))
      }
      taken, oErr := rs.categoryRepo.OrderExists(ctx, tx, order, categoryID)
      if oErr != nil {
        return apierr.Persistence(fmt.Errorf("check category order: %w", oErr))
      }
      if taken {
        return apierr.Validation(fmt.Errorf("category order %d is already in use", order))
      }
    }
    if uErr := rs.categoryRepo.Update(ctx, tx, categoryID, updates); uErr != nil {
      return apierr.Persistence(fmt.Errorf("update category: %w", uErr))
    }
    return nil
  })
  if err != nil {
    return err
  }
  rs.refCache.Invalidate(ctx)
  return nil
}

// DeleteCategory removes a category with its questions and preambles.
func (rs *referenceService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := rs.categoryRepo.GetByIDs(ctx, tx, []uuid.UUID{categoryID})
    if gErr != nil {
      return apierr.Persistence(fmt.Errorf("load category: %w", gErr))
    }
    if len(existing) == 0 {
      return apierr.NotFound(fmt.Errorf("category %s not found", categoryID))
    }

    questions, qErr := rs.questionRepo.GetByCategoryIDs(ctx, tx, []uuid.UUID{categoryID})
    if qErr != nil {
      return apierr.Persistence(fmt.Errorf("load category questions: %w", qErr))
    }
    questionIDs := make([]uuid.UUID, 0, len(questions))
    for _, q := range questions {
      questionIDs = append(questionIDs, q.ID)
    }
    if dErr := rs.questionRepo.FullDeleteByIDs(ctx, tx, questionIDs); dErr != nil {
      return apierr.Persistence(fmt.Errorf("delete category questions: %w", dErr))
    }

    preambles, pErr := rs.preambleRepo.GetByCategoryIDs(ctx, tx, []uuid.UUID{categoryID})
    if pErr != nil {
      return apierr.Persistence(fmt.Errorf("load category preambles: %w", pErr))
    }
    preambleIDs := make([]uuid.UUID, 0, len(preambles))
    for _, p := range preambles {
      preambleIDs = append(preambleIDs, p.ID)
    }
    if dErr := rs.preambleRepo.FullDeleteByIDs(ctx, tx, preambleIDs); dErr != nil {
      return apierr.Persistence(fmt.Errorf("delete category preambles: %w", dErr))
    }

    if dErr := rs.categoryRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{categoryID}); dErr != nil {
      return apierr.Persistence(fmt.Errorf("delete category: %w", dErr))
    }
    return nil
  })
  if err != nil {
    return err
  }
  rs.refCache.Invalidate(ctx)
  return nil
}

func (rs *referenceService) CreateQuestion(ctx context.Context, categoryID uuid.UUID, content string, order int) (*types.Question, error) {
  content = normalization.TrimInputString(content)
  if content == "" {
    return nil, apierr.Validation(fmt.Errorf("question content is required"))
  }
  if order < 1 {
    return nil, apierr.Validation(fmt.Errorf("question order must be positive"))
  }

  question := &types.Question{ID: uuid.New(), CategoryID: categoryID, Content: content, Order: order}
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    categories, cErr := rs.categoryRepo.GetByIDs(ctx, tx, []uuid.UUID{categoryID})
    if cErr != nil {
      return apierr.Persistence(fmt.Errorf("load category: %w", cErr))
    }
    if len(categories) == 0 {
      return apierr.NotFound(fmt.Errorf("category %s not found", categoryID))
    }
    taken, oErr := rs.questionRepo.OrderExists(ctx, tx, categoryID, order, uuid.Nil)
    if oErr != nil {
      return apierr.Persistence(fmt.Errorf("check question order: %w", oErr))
    }
    if taken {
      return apierr.Validation(fmt.Errorf("question order %d is already in use in this category", order))
    }
    if _, qErr := rs.questionRepo.Create(ctx, tx, []*types.Question{question}); qErr != nil {
      return apierr.Persistence(fmt.Errorf("create question: %w", qErr))
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  rs.refCache.Invalidate(ctx)
  return question, nil
}

func (rs *referenceService) ListQuestions(ctx context.Context) ([]*types.Question, error) {
  questions, err := rs.questionRepo.GetAllOrdered(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("list questions: %w", err))
  }
  return questions, nil
}

func (rs *referenceService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, updates map[string]interface{}) error {
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := rs.questionRepo.GetByIDs(ctx, tx, []uuid.UUID{questionID})
    if gErr != nil {
      return apierr.Persistence(fmt.Errorf("load question: %w", gErr))
    }
    if len(existing) == 0 {
      return apierr.NotFound(fmt.Errorf("question %s not found", questionID))
    }
    if rawOrder, ok := updates["display_order"]; ok {
      order, isInt := rawOrder.(int)
      if !isInt || order < 1 {
        return apierr.Validation(fmt.Errorf("question order must be a positive integer"))
      }
      taken, oErr := rs.questionRepo.OrderExists(ctx, tx, existing[0].CategoryID, order, questionID)
      if oErr != nil {
        return apierr.Persistence(fmt.Errorf("check question order: %w", oErr))
      }
      if taken {
        return apierr.Validation(fmt.Errorf("question order %d is already in use in this category", order))
      }
    }
    if uErr := rs.questionRepo.Update(ctx, tx, questionID, updates); uErr != nil {
      return apierr.Persistence(fmt.Errorf("update question: %w", uErr))
    }
    return nil
  })
  if err != nil {
    return err
  }
  rs.refCache.Invalidate(ctx)
  return nil
}

func (rs *referenceService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
  existing, gErr := rs.questionRepo.GetByIDs(ctx, nil, []uuid.UUID{questionID})
  if gErr != nil {
    return apierr.Persistence(fmt.Errorf("load question: %w", gErr))
  }
  if len(existing) == 0 {
    return apierr.NotFound(fmt.Errorf("question %s not found", questionID))
  }
  if dErr := rs.questionRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{questionID}); dErr != nil {
    return apierr.Persistence(fmt.Errorf("delete question: %w", dErr))
  }
  rs.refCache.Invalidate(ctx)
  return nil
}

func (rs *referenceService) CreatePreamble(ctx context.Context, categoryID uuid.UUID, content string) (*types.Preamble, error) {
  content = normalization.TrimInputString(content)
  if content == "" {
    return nil, apierr.Validation(fmt.Errorf("preamble content is required"))
  }

  preamble := &types.Preamble{ID: uuid.New(), CategoryID: categoryID, Content: content}
  err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    categories, cErr := rs.categoryRepo.GetByIDs(ctx, tx, []uuid.UUID{categoryID})
    if cErr != nil {
      return apierr.Persistence(fmt.Errorf("load category: %w", cErr))
    }
    if len(categories) == 0 {
      return apierr.NotFound(fmt.Errorf("category %s not found", categoryID))
    }
    if _, pErr := rs.preambleRepo.Create(ctx, tx, []*types.Preamble{preamble}); pErr != nil {
      return apierr.Persistence(fmt.Errorf("create preamble: %w", pErr))
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  rs.refCache.Invalidate(ctx)
  return preamble, nil
}

func (rs *referenceService) ListPreambles(ctx context.Context) ([]*types.Preamble, error) {
  preambles, err := rs.preambleRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("list preambles: %w", err))
  }
  return preambles, nil
}

func (rs *referenceService) UpdatePreamble(ctx context.Context, preambleID uuid.UUID, updates map[string]interface{}) error {
  existing, gErr := rs.preambleRepo.GetByIDs(ctx, nil, []uuid.UUID{preambleID})
  if gErr != nil {
    return apierr.Persistence(fmt.Errorf("load preamble: %w", gErr))
  }
  if len(existing) == 0 {
    return apierr.NotFound(fmt.Errorf("preamble %s not found", preambleID))
  }
  if uErr := rs.preambleRepo.Update(ctx, nil, preambleID, updates); uErr != nil {
    return apierr.Persistence(fmt.Errorf("update preamble: %w", uErr))
  }
  rs.refCache.Invalidate(ctx)
  return nil
}

func (rs *referenceService) DeletePreamble(ctx context.Context, preambleID uuid.UUID) error {
  existing, gErr := rs.preambleRepo.GetByIDs(ctx, nil, []uuid.UUID{preambleID})
  if gErr != nil {
    return apierr.Persistence(fmt.Errorf("load preamble: %w", gErr))
  }
  if len(existing) == 0 {
    return apierr.NotFound(fmt.Errorf("preamble %s not found", preambleID))
  }
  if dErr := rs.preambleRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{preambleID}); dErr != nil {
    return apierr.Persistence(fmt.Errorf("delete preamble: %w", dErr))
  }
  rs.refCache.Invalidate(ctx)
  return nil
}

func (rs *referenceService) GetOverview(ctx context.Context) (*Overview, error) {
  userCount, err := rs.userRepo.Count(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("count users: %w", err))
  }
  assessmentCount, err := rs.assessmentRepo.Count(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("count assessments: %w", err))
  }
  completedCount, err := rs.assessmentRepo.CountByStatus(ctx, nil, types.AssessmentStatusCompleted)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("count completed assessments: %w", err))
  }
  categoryCount, err := rs.categoryRepo.Count(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("count categories: %w", err))
  }
  recent, err := rs.assessmentRepo.GetRecent(ctx, nil, 5)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load recent assessments: %w", err))
  }
  return &Overview{
    UserCount:            userCount,
    AssessmentCount:      assessmentCount,
    CompletedAssessments: completedCount,
    CategoryCount:        categoryCount,
    RecentAssessments:    recent,
  }, nil
}
