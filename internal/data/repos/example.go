package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/domain"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

type ExampleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Example) ([]*domain.Example, error)
	GetByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*domain.Example, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type exampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExampleRepo(db *gorm.DB, baseLog *logger.Logger) ExampleRepo {
	return &exampleRepo{db: db, log: baseLog.With("repo", "ExampleRepo")}
}

func (r *exampleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Example) ([]*domain.Example, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Example{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *exampleRepo) GetByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*domain.Example, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Example
	if len(itemIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("expression_item_id IN ?", itemIDs).
		Order("expression_item_id ASC, position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *exampleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).Model(&domain.Example{}).Where("id = ?", id).Updates(updates).Error
}
