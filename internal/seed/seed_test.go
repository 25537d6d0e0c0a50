package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/venturecanvas/assessment-backend/internal/logger"
	"github.com/venturecanvas/assessment-backend/internal/repos"
	"github.com/venturecanvas/assessment-backend/internal/types"
)

func newSeeder(t *testing.T) (*Seeder, *gorm.DB, repos.QuestionRepo, repos.CategoryRepo, repos.PreambleRepo) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Category{}, &types.Preamble{}, &types.Question{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	categoryRepo := repos.NewCategoryRepo(db, log)
	preambleRepo := repos.NewPreambleRepo(db, log)
	questionRepo := repos.NewQuestionRepo(db, log)
	return NewSeeder(db, log, categoryRepo, preambleRepo, questionRepo), db, questionRepo, categoryRepo, preambleRepo
}

func TestRunSeedsCatalog(t *testing.T) {
	seeder, _, questionRepo, categoryRepo, preambleRepo := newSeeder(t)
	ctx := context.Background()

	if err := seeder.Run(ctx, Catalog); err != nil {
		t.Fatalf("run: %v", err)
	}

	categories, err := categoryRepo.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("load categories: %v", err)
	}
	if len(categories) != len(Catalog) {
		t.Fatalf("seeded %d categories, want %d", len(categories), len(Catalog))
	}
	for i, category := range categories {
		if category.Name != Catalog[i].Name || category.Order != Catalog[i].Order {
			t.Fatalf("category %d = %q order %d, want %q order %d", i, category.Name, category.Order, Catalog[i].Name, Catalog[i].Order)
		}
	}

	preambles, err := preambleRepo.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("load preambles: %v", err)
	}
	if len(preambles) != len(Catalog) {
		t.Fatalf("seeded %d preambles, want %d", len(preambles), len(Catalog))
	}

	questions, err := questionRepo.GetAllOrdered(ctx, nil)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	wantQuestions := 0
	for _, entry := range Catalog {
		wantQuestions += len(entry.Questions)
	}
	if len(questions) != wantQuestions {
		t.Fatalf("seeded %d questions, want %d", len(questions), wantQuestions)
	}
}

// Question order must restart at 1 inside every category. This is the
// invariant the per-category catalog structure guarantees.
func TestQuestionOrderRestartsPerCategory(t *testing.T) {
	seeder, _, questionRepo, categoryRepo, _ := newSeeder(t)
	ctx := context.Background()

	if err := seeder.Run(ctx, Catalog); err != nil {
		t.Fatalf("run: %v", err)
	}
	categories, err := categoryRepo.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("load categories: %v", err)
	}
	for i, category := range categories {
		questions, err := questionRepo.GetByCategoryIDs(ctx, nil, []uuid.UUID{category.ID})
		if err != nil {
			t.Fatalf("load questions for %q: %v", category.Name, err)
		}
		if len(questions) != len(Catalog[i].Questions) {
			t.Fatalf("category %q has %d questions, want %d", category.Name, len(questions), len(Catalog[i].Questions))
		}
		for j, q := range questions {
			if q.Order != j+1 {
				t.Fatalf("category %q question %d has order %d, want %d", category.Name, j, q.Order, j+1)
			}
			if q.Content != Catalog[i].Questions[j] {
				t.Fatalf("category %q question %d content mismatch", category.Name, j)
			}
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	seeder, _, questionRepo, categoryRepo, _ := newSeeder(t)
	ctx := context.Background()

	if err := seeder.Run(ctx, Catalog); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeder.Run(ctx, Catalog); err != nil {
		t.Fatalf("second run: %v", err)
	}

	count, err := categoryRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if int(count) != len(Catalog) {
		t.Fatalf("second run duplicated categories: %d", count)
	}
	questions, err := questionRepo.GetAllOrdered(ctx, nil)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	wantQuestions := 0
	for _, entry := range Catalog {
		wantQuestions += len(entry.Questions)
	}
	if len(questions) != wantQuestions {
		t.Fatalf("second run duplicated questions: %d", len(questions))
	}
}
