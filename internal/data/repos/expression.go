package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/domain"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

type ExpressionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Expression) ([]*domain.Expression, error)

	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Expression, error)
	GetByIDPreloaded(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Expression, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)

	// ListDefault returns the user's unclassified pool: expressions owned by
	// the user or ownerless, present in neither of the user's membership
	// lists, in creation order.
	ListDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Expression, error)
	// ListSample returns every ownerless expression in creation order.
	ListSample(ctx context.Context, tx *gorm.DB) ([]*domain.Expression, error)

	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type expressionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpressionRepo(db *gorm.DB, baseLog *logger.Logger) ExpressionRepo {
	return &expressionRepo{db: db, log: baseLog.With("repo", "ExpressionRepo")}
}

func (r *expressionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Expression) ([]*domain.Expression, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Expression{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expressionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Expression, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Expression
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *expressionRepo) GetByIDPreloaded(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Expression, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Expression
	if err := t.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Examples", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tags").
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *expressionRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	var count int64
	if err := t.WithContext(ctx).Model(&domain.Expression{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *expressionRepo) ListDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Expression, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Expression
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("(user_id = ? OR user_id IS NULL)", userID).
		Where("id NOT IN (?)", t.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Bookmarking{}).Select("expression_id").Where("user_id = ?", userID)).
		Where("id NOT IN (?)", t.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Memorising{}).Select("expression_id").Where("user_id = ?", userID)).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *expressionRepo) ListSample(ctx context.Context, tx *gorm.DB) ([]*domain.Expression, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Expression
	if err := t.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id IS NULL").
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *expressionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).Model(&domain.Expression{}).Where("id = ?", id).Updates(updates).Error
}

func (r *expressionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&domain.Expression{}).Error
}
