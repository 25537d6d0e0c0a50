package main

import (
  "context"
  "fmt"
  "os"

  "github.com/venturecanvas/assessment-backend/internal/db"
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/seed"
)

func main() {
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  pg, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err := pg.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := pg.DB()

  categoryRepo := repos.NewCategoryRepo(thePG, log)
  preambleRepo := repos.NewPreambleRepo(thePG, log)
  questionRepo := repos.NewQuestionRepo(thePG, log)

  seeder := seed.NewSeeder(thePG, log, categoryRepo, preambleRepo, questionRepo)
  if err := seeder.Run(context.Background(), seed.Catalog); err != nil {
    log.Fatal("Seeding failed", "error", err)
  }
  log.Info("Seeding completed")
}
