package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  UserRoleUser  = "user"
  UserRoleAdmin = "admin"
)

type User struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password  string    `gorm:"not null;column:password" json:"-"`
  FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
  LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
  Role      string    `gorm:"not null;default:user;column:role" json:"role"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
