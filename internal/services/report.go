package services

import (
  "context"
  "fmt"
  "math"
  "sort"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/requestdata"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

type ReportService interface {
  // Generate rolls a completed response set up into a Report with one
  // ReportSection per represented category, then flips the assessment to
  // completed. The whole write is one transaction: on any failure the
  // assessment stays in_progress and the caller may retry.
  Generate(ctx context.Context, assessmentID uuid.UUID) (*types.Report, error)
  GetUserReports(ctx context.Context) ([]*types.Report, error)
  GetReport(ctx context.Context, reportID uuid.UUID) (*types.Report, []*types.ReportSection, error)
}

type reportService struct {
  db             *gorm.DB
  log            *logger.Logger
  assessmentRepo repos.AssessmentRepo
  responseRepo   repos.ResponseRepo
  reportRepo     repos.ReportRepo
  sectionRepo    repos.ReportSectionRepo
}

func NewReportService(
  db *gorm.DB,
  baseLog *logger.Logger,
  assessmentRepo repos.AssessmentRepo,
  responseRepo repos.ResponseRepo,
  reportRepo repos.ReportRepo,
  sectionRepo repos.ReportSectionRepo,
) ReportService {
  serviceLog := baseLog.With("service", "ReportService")
  return &reportService{
    db:             db,
    log:            serviceLog,
    assessmentRepo: assessmentRepo,
    responseRepo:   responseRepo,
    reportRepo:     reportRepo,
    sectionRepo:    sectionRepo,
  }
}

type categoryGroup struct {
  category  *types.Category
  responses []*types.Response
}

func (rs *reportService) Generate(ctx context.Context, assessmentID uuid.UUID) (*types.Report, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("request data not set in context")
  }

  assessments, err := rs.assessmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assessmentID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load assessment: %w", err))
  }
  if len(assessments) == 0 || assessments[0] == nil || assessments[0].UserID != rd.UserID {
    return nil, apierr.NotFound(fmt.Errorf("assessment %s not found", assessmentID))
  }
  assessment := assessments[0]
  if assessment.Status == types.AssessmentStatusCompleted {
    return nil, apierr.Validation(fmt.Errorf("assessment is already completed"))
  }
  existing, err := rs.reportRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{assessmentID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("check existing report: %w", err))
  }
  if len(existing) > 0 {
    return nil, apierr.Validation(fmt.Errorf("a report already exists for assessment %s", assessmentID))
  }

  responses, err := rs.responseRepo.GetByAssessmentIDsWithQuestions(ctx, nil, []uuid.UUID{assessmentID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("load responses: %w", err))
  }
  if len(responses) == 0 {
    return nil, apierr.Validation(fmt.Errorf("assessment %s has no responses to report on", assessmentID))
  }

  groups, err := groupByCategory(responses)
  if err != nil {
    return nil, err
  }

  report := &types.Report{
    ID:           uuid.New(),
    UserID:       rd.UserID,
    AssessmentID: assessmentID,
    Title:        fmt.Sprintf("Business Assessment Report - %s", time.Now().Format("1/2/2006")),
  }
  sections := make([]*types.ReportSection, 0, len(groups))
  for _, group := range groups {
    sections = append(sections, &types.ReportSection{
      ID:              uuid.New(),
      ReportID:        report.ID,
      CategoryID:      group.category.ID,
      ConfidenceLevel: meanConfidence(group.responses),
      Content:         sectionContent(group.responses),
    })
  }

  // Report, sections and the status flip live in one transaction so a
  // visible completed assessment always has a retrievable report.
  txErr := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := rs.reportRepo.Create(ctx, tx, []*types.Report{report}); err != nil {
      return apierr.Persistence(fmt.Errorf("create report: %w", err))
    }
    if _, err := rs.sectionRepo.Create(ctx, tx, sections); err != nil {
      return apierr.PartialReport(fmt.Errorf("create report sections: %w", err))
    }
    if err := rs.assessmentRepo.UpdateStatus(ctx, tx, assessmentID, types.AssessmentStatusCompleted); err != nil {
      return apierr.Persistence(fmt.Errorf("complete assessment: %w", err))
    }
    return nil
  })
  if txErr != nil {
    rs.log.Error("Report generation failed, assessment left in progress", "error", txErr, "assessment_id", assessmentID)
    return nil, txErr
  }
  return report, nil
}

// groupByCategory splits responses per category, verifying the
// question/category joins along the way. A missing join is a referential
// gap and aborts the whole generation rather than dropping the row.
func groupByCategory(responses []*types.Response) ([]*categoryGroup, error) {
  byCategory := make(map[uuid.UUID]*categoryGroup)
  for _, resp := range responses {
    if resp.Question == nil || resp.Question.Category == nil {
      return nil, apierr.IncompleteData(fmt.Errorf("response %s is missing its question or category", resp.ID))
    }
    category := resp.Question.Category
    group, ok := byCategory[category.ID]
    if !ok {
      group = &categoryGroup{category: category}
      byCategory[category.ID] = group
    }
    group.responses = append(group.responses, resp)
  }

  groups := make([]*categoryGroup, 0, len(byCategory))
  for _, group := range byCategory {
    sort.SliceStable(group.responses, func(i, j int) bool {
      return group.responses[i].Question.Order < group.responses[j].Question.Order
    })
    groups = append(groups, group)
  }
  sort.SliceStable(groups, func(i, j int) bool {
    return groups[i].category.Order < groups[j].category.Order
  })
  return groups, nil
}

// meanConfidence averages the confidence levels, rounded half-up to one
// decimal place.
func meanConfidence(responses []*types.Response) float64 {
  total := 0
  for _, resp := range responses {
    total += resp.ConfidenceLevel
  }
  mean := float64(total) / float64(len(responses))
  return math.Round(mean*10) / 10
}

func sectionContent(responses []*types.Response) string {
  blocks := make([]string, 0, len(responses))
  for _, resp := range responses {
    blocks = append(blocks, fmt.Sprintf("%s\nAnswer: %s\nConfidence: %d/5", resp.Question.Content, resp.Answer, resp.ConfidenceLevel))
  }
  return strings.Join(blocks, "\n\n")
}

func (rs *reportService) GetUserReports(ctx context.Context) ([]*types.Report, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("request data not set in context")
  }
  reports, err := rs.reportRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, apierr.Persistence(fmt.Errorf("list reports: %w", err))
  }
  return reports, nil
}

func (rs *reportService) GetReport(ctx context.Context, reportID uuid.UUID) (*types.Report, []*types.ReportSection, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, nil, fmt.Errorf("request data not set in context")
  }
  reports, err := rs.reportRepo.GetByIDs(ctx, nil, []uuid.UUID{reportID})
  if err != nil {
    return nil, nil, apierr.Persistence(fmt.Errorf("load report: %w", err))
  }
  if len(reports) == 0 || reports[0] == nil || reports[0].UserID != rd.UserID {
    return nil, nil, apierr.NotFound(fmt.Errorf("report %s not found", reportID))
  }
  sections, err := rs.sectionRepo.GetByReportIDs(ctx, nil, []uuid.UUID{reportID})
  if err != nil {
    return nil, nil, apierr.Persistence(fmt.Errorf("load report sections: %w", err))
  }
  return reports[0], sections, nil
}
