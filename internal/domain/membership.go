package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bookmarking marks an expression as "needs review" for one user. Unique per
// (user, expression); re-adding is a no-op at the repo boundary.
type Bookmarking struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarkings_user_expression" json:"user_id"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ExpressionID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_bookmarkings_user_expression" json:"expression_id"`
	Expression   *Expression `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpressionID;references:ID" json:"expression,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Bookmarking) TableName() string { return "bookmarkings" }

// Memorising marks an expression as learned for one user. Independent of
// Bookmarking; an expression may be in both sets, either, or neither.
type Memorising struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_memorisings_user_expression" json:"user_id"`
	User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ExpressionID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_memorisings_user_expression" json:"expression_id"`
	Expression   *Expression `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpressionID;references:ID" json:"expression,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Memorising) TableName() string { return "memorisings" }
