package utils

import (
  "context"
  "fmt"

  "golang.org/x/crypto/bcrypt"

  "github.com/venturecanvas/assessment-backend/internal/apierr"
  "github.com/venturecanvas/assessment-backend/internal/repos"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, user *types.User) error {
  if user == nil {
    return apierr.Validation(fmt.Errorf("no user given, cannot proceed with registration"))
  }
  if user.Email == "" {
    return apierr.Validation(fmt.Errorf("an email is required to register"))
  }
  if user.Password == "" {
    return apierr.Validation(fmt.Errorf("a password is required to register"))
  }
  if user.FirstName == "" {
    return apierr.Validation(fmt.Errorf("a first name is required to register"))
  }
  if user.LastName == "" {
    return apierr.Validation(fmt.Errorf("a last name is required to register"))
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return apierr.Persistence(fmt.Errorf("failed to check user email: %w", err))
  }
  if emailExists {
    return apierr.Validation(fmt.Errorf("email is already in use"))
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return apierr.Validation(fmt.Errorf("email is required to login"))
  }
  if password == "" {
    return apierr.Validation(fmt.Errorf("password is required to login"))
  }
  return nil
}

func HashPassword(user *types.User) error {
  hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("failed to hash password: %w", err)
  }
  user.Password = string(hashed)
  return nil
}
