package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/venturecanvas/assessment-backend/internal/apierr"
	"github.com/venturecanvas/assessment-backend/internal/session"
	"github.com/venturecanvas/assessment-backend/internal/types"
)

func TestCreateCategoryRejectsDuplicateOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.reference.CreateCategory(ctx, "Strategy", 1); err != nil {
		t.Fatalf("create first category: %v", err)
	}
	_, err := env.reference.CreateCategory(ctx, "Finance", 1)
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation error for duplicate order, got %v", err)
	}
	if _, err := env.reference.CreateCategory(ctx, "Finance", 2); err != nil {
		t.Fatalf("create category with free order: %v", err)
	}
}

func TestQuestionOrderUniquePerCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	strategy, err := env.reference.CreateCategory(ctx, "Strategy", 1)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	finance, err := env.reference.CreateCategory(ctx, "Finance", 2)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := env.reference.CreateQuestion(ctx, strategy.ID, "What is your mission?", 1); err != nil {
		t.Fatalf("create question: %v", err)
	}
	_, err = env.reference.CreateQuestion(ctx, strategy.ID, "Who are your competitors?", 1)
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation error for duplicate order in category, got %v", err)
	}
	// Same order in a different category is fine.
	if _, err := env.reference.CreateQuestion(ctx, finance.ID, "What is your runway?", 1); err != nil {
		t.Fatalf("create question in other category: %v", err)
	}
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.reference.CreateQuestion(context.Background(), uuid.New(), "Orphan?", 1)
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found for unknown category, got %v", err)
	}
}

func TestDeleteCategoryRemovesQuestionsAndPreambles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.reference.CreateCategory(ctx, "Strategy", 1)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := env.reference.CreateQuestion(ctx, category.ID, "What is your mission?", 1); err != nil {
		t.Fatalf("create question: %v", err)
	}
	if _, err := env.reference.CreatePreamble(ctx, category.ID, "Think about direction."); err != nil {
		t.Fatalf("create preamble: %v", err)
	}

	if err := env.reference.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	questions, err := env.questionRepo.GetByCategoryIDs(ctx, nil, []uuid.UUID{category.ID})
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("questions survived category delete")
	}
	preambles, err := env.preambleRepo.GetByCategoryIDs(ctx, nil, []uuid.UUID{category.ID})
	if err != nil {
		t.Fatalf("load preambles: %v", err)
	}
	if len(preambles) != 0 {
		t.Fatalf("preambles survived category delete")
	}
}

func TestUpdateCategoryOrderCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.reference.CreateCategory(ctx, "Strategy", 1)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := env.reference.CreateCategory(ctx, "Finance", 2); err != nil {
		t.Fatalf("create category: %v", err)
	}

	err = env.reference.UpdateCategory(ctx, first.ID, map[string]interface{}{"display_order": 2})
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation error for order collision, got %v", err)
	}
	// Keeping its own order is not a collision.
	if err := env.reference.UpdateCategory(ctx, first.ID, map[string]interface{}{"display_order": 1, "name": "Vision"}); err != nil {
		t.Fatalf("update category keeping order: %v", err)
	}
}

func TestGetOverviewCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newUserContext(t, "overview@example.com")
	_, questions := env.seedReference(t)

	first, err := env.assessments.CreateAssessment(ctx)
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	if _, err := env.assessments.CreateAssessment(ctx); err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	entries := []session.Entry{{QuestionID: questions[0].ID, Answer: "x", Confidence: 3}}
	if err := env.assessments.SaveResponses(ctx, first.ID, entries); err != nil {
		t.Fatalf("save responses: %v", err)
	}
	if _, err := env.reports.Generate(ctx, first.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	overview, err := env.reference.GetOverview(ctx)
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if overview.UserCount != 1 {
		t.Fatalf("user count = %d, want 1", overview.UserCount)
	}
	if overview.AssessmentCount != 2 {
		t.Fatalf("assessment count = %d, want 2", overview.AssessmentCount)
	}
	if overview.CompletedAssessments != 1 {
		t.Fatalf("completed count = %d, want 1", overview.CompletedAssessments)
	}
	if overview.CategoryCount != 2 {
		t.Fatalf("category count = %d, want 2", overview.CategoryCount)
	}
	if len(overview.RecentAssessments) != 2 {
		t.Fatalf("recent assessments = %d, want 2", len(overview.RecentAssessments))
	}
	if overview.RecentAssessments[0].Status != types.AssessmentStatusInProgress &&
		overview.RecentAssessments[1].Status != types.AssessmentStatusInProgress {
		t.Fatalf("expected an in-progress assessment among recents")
	}
}
