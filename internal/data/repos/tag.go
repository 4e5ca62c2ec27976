package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-24/word-warmup/internal/domain"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

type TagRepo interface {
	// EnsureByTexts inserts missing tags by exact text and returns the full
	// tag rows for every requested text. Existing rows are never duplicated.
	EnsureByTexts(ctx context.Context, tx *gorm.DB, texts []string) ([]*domain.Tag, error)
	GetByTexts(ctx context.Context, tx *gorm.DB, texts []string) ([]*domain.Tag, error)
	GetByExpressionID(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID) ([]*domain.Tag, error)

	// AttachToExpression creates missing join rows; attaching an already
	// attached tag is a no-op.
	AttachToExpression(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID, tagIDs []uuid.UUID) error
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) EnsureByTexts(ctx context.Context, tx *gorm.DB, texts []string) ([]*domain.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(texts) == 0 {
		return []*domain.Tag{}, nil
	}

	rows := make([]*domain.Tag, 0, len(texts))
	seen := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		rows = append(rows, &domain.Tag{ID: uuid.New(), Text: text})
	}

	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "text"}},
			DoNothing: true,
		}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	// Reselect so callers see the canonical IDs of pre-existing rows.
	return r.GetByTexts(ctx, t, texts)
}

func (r *tagRepo) GetByTexts(ctx context.Context, tx *gorm.DB, texts []string) ([]*domain.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Tag
	if len(texts) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("text IN ?", texts).Order("text ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) GetByExpressionID(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID) ([]*domain.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Tag
	if expressionID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Joins("JOIN expression_tags ON expression_tags.tag_id = tags.id").
		Where("expression_tags.expression_id = ?", expressionID).
		Order("tags.text ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) AttachToExpression(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID, tagIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if expressionID == uuid.Nil || len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*domain.ExpressionTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &domain.ExpressionTag{ExpressionID: expressionID, TagID: tagID})
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
