package types

import (
  "time"

  "github.com/google/uuid"
)

// Preamble is the introductory text shown once per category. Several may
// exist per category; only the oldest is surfaced to the session.
type Preamble struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CategoryID uuid.UUID `gorm:"index;not null;column:category_id" json:"category_id"`
  Category   *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
  Content    string    `gorm:"type:text;not null;column:content" json:"content"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Preamble) TableName() string {
  return "preamble"
}
