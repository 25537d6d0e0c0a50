package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/venturecanvas/assessment-backend/internal/apierr"
	"github.com/venturecanvas/assessment-backend/internal/logger"
	"github.com/venturecanvas/assessment-backend/internal/repos"
	"github.com/venturecanvas/assessment-backend/internal/requestdata"
	"github.com/venturecanvas/assessment-backend/internal/session"
	"github.com/venturecanvas/assessment-backend/internal/types"
)

type testEnv struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	categoryRepo   repos.CategoryRepo
	preambleRepo   repos.PreambleRepo
	questionRepo   repos.QuestionRepo
	assessmentRepo repos.AssessmentRepo
	responseRepo   repos.ResponseRepo
	reportRepo     repos.ReportRepo
	sectionRepo    repos.ReportSectionRepo
	assessments    AssessmentService
	reports        ReportService
	reference      ReferenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Category{},
		&types.Preamble{},
		&types.Question{},
		&types.Assessment{},
		&types.Response{},
		&types.Report{},
		&types.ReportSection{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	env := &testEnv{
		db:             db,
		log:            log,
		userRepo:       repos.NewUserRepo(db, log),
		userTokenRepo:  repos.NewUserTokenRepo(db, log),
		categoryRepo:   repos.NewCategoryRepo(db, log),
		preambleRepo:   repos.NewPreambleRepo(db, log),
		questionRepo:   repos.NewQuestionRepo(db, log),
		assessmentRepo: repos.NewAssessmentRepo(db, log),
		responseRepo:   repos.NewResponseRepo(db, log),
		reportRepo:     repos.NewReportRepo(db, log),
		sectionRepo:    repos.NewReportSectionRepo(db, log),
	}
	env.assessments = NewAssessmentService(db, log, env.assessmentRepo, env.questionRepo, env.preambleRepo, env.responseRepo, nil)
	env.reports = NewReportService(db, log, env.assessmentRepo, env.responseRepo, env.reportRepo, env.sectionRepo)
	env.reference = NewReferenceService(db, log, env.categoryRepo, env.questionRepo, env.preambleRepo, env.userRepo, env.assessmentRepo, nil)
	return env
}

func (env *testEnv) newUserContext(t *testing.T, email string) (context.Context, *types.User) {
	t.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
		Role:      types.UserRoleUser,
	}
	if _, err := env.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: user.ID,
		Role:   user.Role,
	})
	return ctx, user
}

// seedReference inserts two categories with two and one question
// respectively, plus a preamble for the first category.
func (env *testEnv) seedReference(t *testing.T) (categories []*types.Category, questions []*types.Question) {
	t.Helper()
	ctx := context.Background()

	strategy := &types.Category{ID: uuid.New(), Name: "Strategy", Order: 1}
	finance := &types.Category{ID: uuid.New(), Name: "Finance", Order: 2}
	if _, err := env.categoryRepo.Create(ctx, nil, []*types.Category{strategy, finance}); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	qs := []*types.Question{
		{ID: uuid.New(), CategoryID: strategy.ID, Content: "What is your mission?", Order: 1},
		{ID: uuid.New(), CategoryID: strategy.ID, Content: "Who are your competitors?", Order: 2},
		{ID: uuid.New(), CategoryID: finance.ID, Content: "What is your runway?", Order: 1},
	}
	if _, err := env.questionRepo.Create(ctx, nil, qs); err != nil {
		t.Fatalf("seed questions: %v", err)
	}

	preamble := &types.Preamble{ID: uuid.New(), CategoryID: strategy.ID, Content: "Think about direction."}
	if _, err := env.preambleRepo.Create(ctx, nil, []*types.Preamble{preamble}); err != nil {
		t.Fatalf("seed preamble: %v", err)
	}
	return []*types.Category{strategy, finance}, qs
}

func TestSaveResponsesUpsertIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newUserContext(t, "upsert@example.com")
	_, questions := env.seedReference(t)

	assessment, err := env.assessments.CreateAssessment(ctx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	first := []session.Entry{{QuestionID: questions[0].ID, Answer: "draft answer", Confidence: 2}}
	if err := env.assessments.SaveResponses(ctx, assessment.ID, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second := []session.Entry{{QuestionID: questions[0].ID, Answer: "final answer", Confidence: 4}}
	if err := env.assessments.SaveResponses(ctx, assessment.ID, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	responses, err := env.responseRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{assessment.ID})
	if err != nil {
		t.Fatalf("load responses: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 response after re-save, got %d", len(responses))
	}
	if responses[0].Answer != "final answer" || responses[0].ConfidenceLevel != 4 {
		t.Fatalf("expected last write to win, got answer=%q confidence=%d", responses[0].Answer, responses[0].ConfidenceLevel)
	}
}

func TestSaveResponsesRejectsOutOfRangeConfidence(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newUserContext(t, "bounds@example.com")
	_, questions := env.seedReference(t)

	assessment, err := env.assessments.CreateAssessment(ctx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	for _, confidence := range []int{0, 6, -1} {
		entries := []session.Entry{{QuestionID: questions[0].ID, Answer: "x", Confidence: confidence}}
		err := env.assessments.SaveResponses(ctx, assessment.ID, entries)
		if apierr.CodeOf(err) != apierr.CodeValidation {
			t.Fatalf("confidence %d: expected validation error, got %v", confidence, err)
		}
	}
}

func TestSaveResponsesUnknownQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newUserContext(t, "unknown@example.com")
	env.seedReference(t)

	assessment, err := env.assessments.CreateAssessment(ctx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	entries := []session.Entry{{QuestionID: uuid.New(), Answer: "x", Confidence: 3}}
	err = env.assessments.SaveResponses(ctx, assessment.ID, entries)
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found for unknown question, got %v", err)
	}
}

func TestSaveResponsesRejectsCompletedAssessment(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newUserContext(t, "completed@example.com")
	_, questions := env.seedReference(t)

	assessment, err := env.assessments.CreateAssessment(ctx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	if err := env.assessmentRepo.UpdateStatus(ctx, nil, assessment.ID, types.AssessmentStatusCompleted); err != nil {
		t.Fatalf("complete assessment: %v", err)
	}

	entries := []session.Entry{{QuestionID: questions[0].ID, Answer: "x", Confidence: 3}}
	err = env.assessments.SaveResponses(ctx, assessment.ID, entries)
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation error on completed assessment, got %v", err)
	}
}

func TestSaveResponsesEnforcesOwnership(t *testing.T) {
	env := newTestEnv(t)
	ownerCtx, _ := env.newUserContext(t, "owner@example.com")
	otherCtx, _ := env.newUserContext(t, "other@example.com")
	_, questions := env.seedReference(t)

	assessment, err := env.assessments.CreateAssessment(ownerCtx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	entries := []session.Entry{{QuestionID: questions[0].ID, Answer: "x", Confidence: 3}}
	err = env.assessments.SaveResponses(otherCtx, assessment.ID, entries)
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected foreign assessment to look missing, got %v", err)
	}
}

func TestGetWorkspaceOrderingAndResume(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newUserContext(t, "workspace@example.com")
	categories, questions := env.seedReference(t)

	assessment, err := env.assessments.CreateAssessment(ctx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	entries := []session.Entry{{QuestionID: questions[0].ID, Answer: "first", Confidence: 5}}
	if err := env.assessments.SaveResponses(ctx, assessment.ID, entries); err != nil {
		t.Fatalf("save responses: %v", err)
	}

	ws, err := env.assessments.GetWorkspace(ctx, assessment.ID)
	if err != nil {
		t.Fatalf("get workspace: %v", err)
	}
	if len(ws.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(ws.Questions))
	}
	if ws.Questions[0].CategoryID != categories[0].ID || ws.Questions[2].CategoryID != categories[1].ID {
		t.Fatalf("questions not ordered by category display order")
	}
	if ws.Questions[0].Preamble == "" {
		t.Fatalf("expected first category preamble to be attached")
	}
	if ws.Questions[2].Preamble != "" {
		t.Fatalf("expected second category to have no preamble")
	}
	if ws.ResumeIndex != 1 {
		t.Fatalf("expected resume at first unanswered question (1), got %d", ws.ResumeIndex)
	}
	if got := ws.Answers[questions[0].ID]; got.Answer != "first" || got.Confidence != 5 {
		t.Fatalf("saved answer not reflected in workspace: %+v", got)
	}
}
