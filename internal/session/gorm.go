package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-24/word-warmup/internal/domain"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

// GormStore persists session payloads in the session_records table when no
// redis is configured. Expired rows are filtered on read and overwritten on
// write; no background sweeper exists.
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
	ttl time.Duration
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger, ttl time.Duration) *GormStore {
	return &GormStore{
		db:  db,
		log: baseLog.With("store", "GormSessionStore"),
		ttl: ttl,
	}
}

func (s *GormStore) Get(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) (bool, error) {
	var row domain.SessionRecord
	if err := s.db.WithContext(ctx).
		Where("session_id = ? AND kind = ? AND expires_at > ?", sessionID, string(kind), time.Now().UTC()).
		Limit(1).
		Find(&row).Error; err != nil {
		return false, err
	}
	if row.SessionID == uuid.Nil {
		return false, nil
	}
	if err := json.Unmarshal(row.Payload, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *GormStore) Put(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	row := &domain.SessionRecord{
		SessionID: sessionID,
		Kind:      string(kind),
		Payload:   datatypes.JSON(raw),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).
		Create(row).Error
}

func (s *GormStore) Delete(ctx context.Context, kind Kind, sessionID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("session_id = ? AND kind = ?", sessionID, string(kind)).
		Delete(&domain.SessionRecord{}).Error
}
