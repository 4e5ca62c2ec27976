package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionRecord persists wizard/quiz session payloads when no redis is
// configured. Kind separates the two state machines under one session id.
type SessionRecord struct {
	SessionID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"session_id"`
	Kind      string         `gorm:"primaryKey" json:"kind"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SessionRecord) TableName() string { return "session_records" }
