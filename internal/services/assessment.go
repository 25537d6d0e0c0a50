package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/cache"
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/requestdata"
  "github.com/venturecanvas/assessment-backend/internal/session"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

// Workspace is everything a client needs to render the question-by-question
// flow: the ordered questions with category and preamble, the saved answers
// and the resume position.
type Workspace struct {
  Assessment  *types.Assessment             `json:"assessment"`
  Questions   []*WorkspaceQuestion          `json:"questions"`
  Answers     map[uuid.UUID]session.Answer  `json:"answers"`
  ResumeIndex int                           `json:"resume_index"`
}

type WorkspaceQuestion struct {
  ID           uuid.UUID `json:"id"`
  CategoryID   uuid.UUID `json:"category_id"`
  CategoryName string    `json:"category_name"`
  Preamble     string    `json:"preamble,omitempty"`
  Content      string    `json:"content"`
  Order        int       `json:"order"`
}

type AssessmentService interface {
  CreateAssessment(ctx context.Context) (*types.Assessment, error)
  GetUserAssessments(ctx context.Context) ([]*types.Assessment, error)
  GetWorkspace(ctx context.Context, assessmentID uuid.UUID) (*Workspace, error)
  // SaveResponses satisfies session.Saver: it upserts the drafted answers
  // keyed by (assessment_id, question_id).
  SaveResponses(ctx context.Context, assessmentID uuid.UUID, entries []session.Entry) error
}

var _ session.Saver = (AssessmentService)(nil)

type assessmentService struct {
  db             *gorm.DB
  log            *logger.Logger
  assessmentRepo repos.AssessmentRepo
  questionRepo   repos.QuestionRepo
  preambleRepo   repos.PreambleRepo
  responseRepo   repos.ResponseRepo
  refCache       *cache.ReferenceCache
}

func NewAssessmentService(
  db *gorm.DB,
  baseLog *logger.Logger,
  assessmentRepo repos.AssessmentRepo,
  questionRepo repos.QuestionRepo,
  preambleRepo repos.PreambleRepo,
  responseRepo repos.ResponseRepo,
  refCache *cache.ReferenceCache,
) AssessmentService {
  serviceLog := baseLog.With("service", "AssessmentService")
  return &assessmentService{
    db:             db,
    log:            serviceLog,
    assessmentRepo: assessmentRepo,
    questionRepo:   questionRepo,
    preambleRepo:   preambleRepo,
    responseRepo:   responseRepo,
    refCache:       refCache,
  }
}

func (as *assessmentService) CreateAssessment(ctx context.Context) (*types.Assessment, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("request data not set in context")
  }

  assessment := &types.Assessment{
    ID:     uuid.New(),
    UserID: rd.UserID,
    Status: types.AssessmentStatusInProgress,
  }
  if _, err := as.assessmentRepo.Create(ctx, nil, []*types.Assessment{assessment}); err != nil {
    as.log.Error("CreateAssessment failed", "error", err)
    return nil, apierr.Persistence(fmt.Errorf("create assessment: %w", err))
  }
  return assessment, nil
}

func (as *assessmentService) GetUserAssessments(ctx context.Context) ([]*types.Assessment, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("request data not set in context")
  }
  assessments, err := as.assessmentRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("list assessments: %w", err))
  }
  return assessments, nil
}

// getOwnedAssessment loads the assessment and enforces ownership at the
// service boundary: a missing row and a foreign row are indistinguishable
// to the caller.
func (as *assessmentService) getOwnedAssessment(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (*types.Assessment, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("request data not set in context")
  }
  assessments, err := as.assessmentRepo.GetByIDs(ctx, tx, []uuid.UUID{assessmentID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load assessment: %w", err))
  }
  if len(assessments) == 0 || assessments[0] == nil || assessments[0].UserID != rd.UserID {
    return nil, apierr.NotFound(fmt.Errorf("assessment %s not found", assessmentID))
  }
  return assessments[0], nil
}

func (as *assessmentService) loadQuestions(ctx context.Context) ([]*types.Question, error) {
  if questions, ok := as.refCache.GetQuestions(ctx); ok {
    return questions, nil
  }
  questions, err := as.questionRepo.GetAllOrdered(ctx, nil)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load questions: %w", err))
  }
  as.refCache.SetQuestions(ctx, questions)
  return questions, nil
}

func (as *assessmentService) GetWorkspace(ctx context.Context, assessmentID uuid.UUID) (*Workspace, error) {
  assessment, err := as.getOwnedAssessment(ctx, nil, assessmentID)
  if err != nil {
    return nil, err
  }

  questions, err := as.loadQuestions(ctx)
  if err != nil {
    return nil, err
  }

  responses, err := as.responseRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{assessmentID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load responses: %w", err))
  }

  // The session snapshot fixes ordering and the resume position.
  sess := session.New(assessmentID, questions, responses)
  ordered := sess.Questions()

  categoryIDs := make([]uuid.UUID, 0, len(ordered))
  seen := make(map[uuid.UUID]bool, len(ordered))
  for _, q := range ordered {
    if !seen[q.CategoryID] {
      seen[q.CategoryID] = true
      categoryIDs = append(categoryIDs, q.CategoryID)
    }
  }
  preambles, err := as.preambleRepo.GetByCategoryIDs(ctx, nil, categoryIDs)
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load preambles: %w", err))
  }
  // Only the first preamble per category is consumed; extras are ignored.
  preambleByCategory := make(map[uuid.UUID]string, len(categoryIDs))
  for _, p := range preambles {
    if _, ok := preambleByCategory[p.CategoryID]; !ok {
      preambleByCategory[p.CategoryID] = p.Content
    }
  }

  workspaceQuestions := make([]*WorkspaceQuestion, 0, len(ordered))
  for _, q := range ordered {
    wq := &WorkspaceQuestion{
      ID:         q.ID,
      CategoryID: q.CategoryID,
      Preamble:   preambleByCategory[q.CategoryID],
      Content:    q.Content,
      Order:      q.Order,
    }
    if q.Category != nil {
      wq.CategoryName = q.Category.Name
    }
    workspaceQuestions = append(workspaceQuestions, wq)
  }

  return &Workspace{
    Assessment:  assessment,
    Questions:   workspaceQuestions,
    Answers:     sess.Answers(),
    ResumeIndex: sess.Index(),
  }, nil
}

func (as *assessmentService) SaveResponses(ctx context.Context, assessmentID uuid.UUID, entries []session.Entry) error {
  assessment, err := as.getOwnedAssessment(ctx, nil, assessmentID)
  if err != nil {
    return err
  }
  if assessment.Status == types.AssessmentStatusCompleted {
    return apierr.Validation(fmt.Errorf("assessment is already completed"))
  }
  if len(entries) == 0 {
    return nil
  }

  questionIDs := make([]uuid.UUID, 0, len(entries))
  for _, entry := range entries {
    if entry.Confidence < types.ConfidenceMin || entry.Confidence > types.ConfidenceMax {
      return apierr.Validation(fmt.Errorf("confidence for question %s must be between %d and %d", entry.QuestionID, types.ConfidenceMin, types.ConfidenceMax))
    }
    questionIDs = append(questionIDs, entry.QuestionID)
  }
  questions, err := as.questionRepo.GetByIDs(ctx, nil, questionIDs)
  if err != nil {
    return apierr.Persistence(fmt.Errorf("verify questions: %w", err))
  }
  known := make(map[uuid.UUID]bool, len(questions))
  for _, q := range questions {
    known[q.ID] = true
  }
  for _, entry := range entries {
    if !known[entry.QuestionID] {
      return apierr.NotFound(fmt.Errorf("question %s not found", entry.QuestionID))
    }
  }

  responses := make([]*types.Response, 0, len(entries))
  for _, entry := range entries {
    responses = append(responses, &types.Response{
      ID:              uuid.New(),
      AssessmentID:    assessmentID,
      QuestionID:      entry.QuestionID,
      Answer:          entry.Answer,
      ConfidenceLevel: entry.Confidence,
    })
  }
  if err := as.responseRepo.Upsert(ctx, nil, responses); err != nil {
    as.log.Error("SaveResponses upsert failed", "error", err, "assessment_id", assessmentID)
    return apierr.Persistence(fmt.Errorf("save responses: %w", err))
  }
  return nil
}
