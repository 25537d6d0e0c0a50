package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  ConfidenceMin = 1
  ConfidenceMax = 5
)

// Response is one answer to one question within one assessment. The
// (assessment_id, question_id) pair is unique; upserts are last-write-wins.
type Response struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  AssessmentID    uuid.UUID   `gorm:"not null;uniqueIndex:idx_response_assessment_question;column:assessment_id" json:"assessment_id"`
  Assessment      *Assessment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"-"`
  QuestionID      uuid.UUID   `gorm:"not null;uniqueIndex:idx_response_assessment_question;column:question_id" json:"question_id"`
  Question        *Question   `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
  Answer          string      `gorm:"type:text;not null;column:answer" json:"answer"`
  ConfidenceLevel int         `gorm:"not null;column:confidence_level" json:"confidence_level"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (Response) TableName() string {
  return "response"
}
