package types

import (
  "time"

  "github.com/google/uuid"
)

// Question order restarts at 1 inside each category; (category_id, order)
// is unique.
type Question struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CategoryID uuid.UUID `gorm:"not null;uniqueIndex:idx_question_category_order;column:category_id" json:"category_id"`
  Category   *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
  Content    string    `gorm:"type:text;not null;column:content" json:"content"`
  Order      int       `gorm:"not null;uniqueIndex:idx_question_category_order;column:display_order" json:"order"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string {
  return "question"
}
