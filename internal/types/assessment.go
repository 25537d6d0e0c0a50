package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  AssessmentStatusDraft      = "draft"
  AssessmentStatusInProgress = "in_progress"
  AssessmentStatusCompleted  = "completed"
)

// Assessment is one user's pass through the question set. Status only moves
// forward: draft/in_progress -> completed, never back.
type Assessment struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    uuid.UUID `gorm:"index;not null;column:user_id" json:"user_id"`
  User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Status    string    `gorm:"not null;default:in_progress;column:status" json:"status"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Assessment) TableName() string {
  return "assessment"
}
