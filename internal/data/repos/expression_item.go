package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/domain"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

type ExpressionItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.ExpressionItem) ([]*domain.ExpressionItem, error)
	GetByExpressionID(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID) ([]*domain.ExpressionItem, error)
	GetByExpressionIDs(ctx context.Context, tx *gorm.DB, expressionIDs []uuid.UUID) ([]*domain.ExpressionItem, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type expressionItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpressionItemRepo(db *gorm.DB, baseLog *logger.Logger) ExpressionItemRepo {
	return &expressionItemRepo{db: db, log: baseLog.With("repo", "ExpressionItemRepo")}
}

func (r *expressionItemRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.ExpressionItem) ([]*domain.ExpressionItem, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.ExpressionItem{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expressionItemRepo) GetByExpressionID(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID) ([]*domain.ExpressionItem, error) {
	if expressionID == uuid.Nil {
		return nil, nil
	}
	return r.GetByExpressionIDs(ctx, tx, []uuid.UUID{expressionID})
}

func (r *expressionItemRepo) GetByExpressionIDs(ctx context.Context, tx *gorm.DB, expressionIDs []uuid.UUID) ([]*domain.ExpressionItem, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ExpressionItem
	if len(expressionIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("expression_id IN ?", expressionIDs).
		Order("expression_id ASC, position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *expressionItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).Model(&domain.ExpressionItem{}).Where("id = ?", id).Updates(updates).Error
}
