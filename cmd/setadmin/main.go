package main

import (
  "context"
  "fmt"
  "os"

  "github.com/venturecanvas/assessment-backend/internal/db"
  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/normalization"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

// Promotes an existing user to the admin role by email.
func main() {
  if len(os.Args) != 2 {
    fmt.Println("usage: setadmin <email>")
    os.Exit(1)
  }
  email := normalization.ParseInputString(os.Args[1])

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
  userRepo := repos.NewUserRepo(pg.DB(), log)

  ctx := context.Background()
  users, err := userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    log.Fatal("Lookup failed", "error", err)
  }
  if len(users) == 0 {
    log.Fatal("No user found", "email", email)
  }
  if err := userRepo.UpdateRole(ctx, nil, users[0].ID, types.UserRoleAdmin); err != nil {
    log.Fatal("Role update failed", "error", err)
  }
  log.Info("User promoted to admin", "email", email)
}
