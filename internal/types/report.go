package types

import (
  "time"

  "github.com/google/uuid"
)

// Report is the durable summary generated from a completed assessment.
// AssessmentID is unique: at most one report ever exists per assessment.
type Report struct {
  ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID       uuid.UUID   `gorm:"index;not null;column:user_id" json:"user_id"`
  User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  AssessmentID uuid.UUID   `gorm:"uniqueIndex;not null;column:assessment_id" json:"assessment_id"`
  Assessment   *Assessment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"-"`
  Title        string      `gorm:"not null;column:title" json:"title"`
  CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Report) TableName() string {
  return "report"
}
