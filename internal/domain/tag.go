package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a free-text label deduplicated globally by exact text.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text string    `gorm:"column:text;not null;uniqueIndex" json:"text"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// ExpressionTag joins expressions to shared tags.
type ExpressionTag struct {
	ExpressionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"expression_id"`
	TagID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
}

func (ExpressionTag) TableName() string { return "expression_tags" }
