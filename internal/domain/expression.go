package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expression is a group of 2-5 easily confused phrases studied together.
// UserID is nil for ownerless sample content visible to everyone.
type Expression struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Note string `gorm:"column:note;type:text" json:"note"`

	Items []ExpressionItem `gorm:"foreignKey:ExpressionID" json:"items,omitempty"`
	Tags  []Tag            `gorm:"many2many:expression_tags" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Expression) TableName() string { return "expressions" }

// ExpressionItem is one phrase within an expression group. Position is the
// display order (0..4) and is significant across edits.
type ExpressionItem struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ExpressionID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_expression_items_position" json:"expression_id"`
	Expression   *Expression `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpressionID;references:ID" json:"expression,omitempty"`

	Content     string `gorm:"column:content;not null" json:"content"`
	Explanation string `gorm:"column:explanation;not null;type:text" json:"explanation"`
	Position    int    `gorm:"column:position;not null;uniqueIndex:idx_expression_items_position" json:"position"`

	Examples []Example `gorm:"foreignKey:ExpressionItemID" json:"examples,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ExpressionItem) TableName() string { return "expression_items" }

// Example is an example sentence for one expression item. The form layer caps
// these at three per item; storage does not.
type Example struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ExpressionItemID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_examples_position" json:"expression_item_id"`
	ExpressionItem   *ExpressionItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpressionItemID;references:ID" json:"expression_item,omitempty"`

	Content  string `gorm:"column:content;not null;type:text" json:"content"`
	Position int    `gorm:"column:position;not null;uniqueIndex:idx_examples_position" json:"position"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Example) TableName() string { return "examples" }
