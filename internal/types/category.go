package types

import (
  "time"

  "github.com/google/uuid"
)

// Category groups related questions. Order is the display position and is
// unique across the category set.
type Category struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name      string    `gorm:"not null;column:name" json:"name"`
  Order     int       `gorm:"uniqueIndex;not null;column:display_order" json:"order"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string {
  return "category"
}
