package types

import (
  "time"

  "github.com/google/uuid"
)

// ReportSection is the per-category rollup inside a report. ConfidenceLevel
// holds the mean confidence for the category rounded to one decimal.
type ReportSection struct {
  ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  ReportID        uuid.UUID `gorm:"index;not null;column:report_id" json:"report_id"`
  Report          *Report   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReportID;references:ID" json:"-"`
  CategoryID      uuid.UUID `gorm:"not null;column:category_id" json:"category_id"`
  Category        *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
  ConfidenceLevel float64   `gorm:"not null;column:confidence_level" json:"confidence_level"`
  Content         string    `gorm:"type:text;not null;column:content" json:"content"`
  CreatedAt       time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (ReportSection) TableName() string {
  return "report_section"
}
