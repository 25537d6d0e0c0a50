package seed

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

// CategorySeed bundles a category with its preamble and questions so the
// question order always restarts at 1 inside each category.
type CategorySeed struct {
  Name      string
  Order     int
  Preamble  string
  Questions []string
}

// Catalog is the default question bank.
var Catalog = []CategorySeed{
  {
    Name:     "Problem",
    Order:    1,
    Preamble: "Every business solves problems, and understanding the challenges your customers face is key to serving them better.",
    Questions: []string{
      "What are the biggest frustrations or obstacles your customers deal with regularly? Think about what might keep them up at night or make their day harder.",
      "Are there problems they're currently paying someone else to help them solve? If so, what are they?",
    },
  },
  {
    Name:     "Audience",
    Order:    2,
    Preamble: "Getting to know your ideal customers can help you connect with them more effectively.",
    Questions: []string{
      "Who do you imagine your typical customer is? Consider their age, location, and profession, if that applies.",
      "What do they care deeply about or value most?",
      "What are their future goals or aspirations? What are they working towards?",
    },
  },
  {
    Name:     "Competitors",
    Order:    3,
    Preamble: "Understanding your competition helps you see where you can stand out.",
    Questions: []string{
      "Who else is serving your audience? Can you name a few companies or brands your customers might also turn to?",
      "What do these competitors do well that you admire? And where do they fall short?",
    },
  },
  {
    Name:     "Channels",
    Order:    4,
    Preamble: "Knowing where your customers spend their time helps you reach them in the right places.",
    Questions: []string{
      "Where does your ideal customer typically spend their time? Are they mostly online or offline?",
      "What social media platforms or websites do they use regularly?",
      "How do you keep in touch with your audience? For example, through newsletters or other forms of communication?",
    },
  },
  {
    Name:     "Elevator Pitch",
    Order:    5,
    Preamble: "An elevator pitch is a quick way to introduce your business. Let's create a sentence that sums up what you do and why it matters.",
    Questions: []string{
      "If you had to explain your business in one sentence, how would you describe who you help, what problem you solve, and how you do it differently than others?",
    },
  },
  {
    Name:     "Differentiator",
    Order:    6,
    Preamble: "Being unique is essential in a crowded market. Let's define what sets you apart.",
    Questions: []string{
      "What is unique or different about your approach, product, or service?",
      "How does your business stand out from your competitors?",
    },
  },
  {
    Name:     "Solution",
    Order:    7,
    Preamble: "Now, let's explore how your business solves customer problems.",
    Questions: []string{
      "Imagine your solution working perfectly for your customer. What does that look like?",
      "How does your solution address the main issues your customers face?",
      "What benefits do customers gain from using your product or service?",
    },
  },
  {
    Name:     "Costs",
    Order:    8,
    Preamble: "Running a business comes with costs. It's helpful to think about them now so you can plan accordingly.",
    Questions: []string{
      "What are some of the main costs you expect for building and delivering your solution? Will these be monthly, yearly, or one-time expenses?",
      "Do you plan to hire contractors or employees to help you?",
    },
  },
  {
    Name:     "Revenue",
    Order:    9,
    Preamble: "Let's think about how you'll make money from your business.",
    Questions: []string{
      "What will you be selling to your customers to solve their problems?",
      "How much do you plan to charge for it?",
    },
  },
  {
    Name:     "Business Boosters",
    Order:    10,
    Preamble: "Every business has strengths. Let's identify yours.",
    Questions: []string{
      "What advantages does your business have over others? These could be relationships, resources, or skills that are hard to copy.",
    },
  },
  {
    Name:     "Personal Fit",
    Order:    11,
    Preamble: "Building a business is a big commitment, so it's essential to make sure it feels like the right fit for you.",
    Questions: []string{
      "Does this business align with the kind of lifestyle you want? Does it excite and energize you, or do you feel it might wear you down over time?",
    },
  },
}

type Seeder struct {
  db           *gorm.DB
  log          *logger.Logger
  categoryRepo repos.CategoryRepo
  preambleRepo repos.PreambleRepo
  questionRepo repos.QuestionRepo
}

func NewSeeder(db *gorm.DB, baseLog *logger.Logger, categoryRepo repos.CategoryRepo, preambleRepo repos.PreambleRepo, questionRepo repos.QuestionRepo) *Seeder {
  seedLog := baseLog.With("service", "Seeder")
  return &Seeder{
    db:           db,
    log:          seedLog,
    categoryRepo: categoryRepo,
    preambleRepo: preambleRepo,
    questionRepo: questionRepo,
  }
}

// Run inserts the catalog in one transaction. It is a no-op when categories
// already exist, so it is safe to run on every boot.
func (s *Seeder) Run(ctx context.Context, catalog []CategorySeed) error {
  count, err := s.categoryRepo.Count(ctx, nil)
  if err != nil {
    return fmt.Errorf("check existing categories: %w", err)
  }
  if count > 0 {
    s.log.Info("Reference data already present, skipping seed", "categories", count)
    return nil
  }

  return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    for _, entry := range catalog {
      category := &types.Category{ID: uuid.New(), Name: entry.Name, Order: entry.Order}
      if _, err := s.categoryRepo.Create(ctx, tx, []*types.Category{category}); err != nil {
        return fmt.Errorf("seed category %q: %w", entry.Name, err)
      }
      if entry.Preamble != "" {
        preamble := &types.Preamble{ID: uuid.New(), CategoryID: category.ID, Content: entry.Preamble}
        if _, err := s.preambleRepo.Create(ctx, tx, []*types.Preamble{preamble}); err != nil {
          return fmt.Errorf("seed preamble for %q: %w", entry.Name, err)
        }
      }
      questions := make([]*types.Question, 0, len(entry.Questions))
      for i, content := range entry.Questions {
        questions = append(questions, &types.Question{
          ID:         uuid.New(),
          CategoryID: category.ID,
          Content:    content,
          Order:      i + 1,
        })
      }
      if _, err := s.questionRepo.Create(ctx, tx, questions); err != nil {
        return fmt.Errorf("seed questions for %q: %w", entry.Name, err)
      }
      s.log.Info("Seeded category", "name", entry.Name, "questions", len(questions))
    }
    return nil
  })
}
