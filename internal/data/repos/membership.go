package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-24/word-warmup/internal/domain"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

// EnsureResult is the outcome of an idempotent membership insert.
type EnsureResult int

const (
	EnsureCreated EnsureResult = iota
	EnsureAlreadyPresent
	EnsureNotFound
)

func (e EnsureResult) String() string {
	switch e {
	case EnsureCreated:
		return "created"
	case EnsureAlreadyPresent:
		return "already_present"
	case EnsureNotFound:
		return "not_found"
	}
	return "unknown"
}

// BookmarkingRepo manages the per-user review list.
type BookmarkingRepo interface {
	// Ensure inserts the (user, expression) membership. Duplicates are
	// success no-ops; a vanished expression is reported, not an error.
	Ensure(ctx context.Context, tx *gorm.DB, userID, expressionID uuid.UUID) (EnsureResult, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Bookmarking, error)
	ExpressionIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	FullDeleteByUserAndExpressions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, expressionIDs []uuid.UUID) error
}

// MemorisingRepo manages the per-user memorised list. Independent of
// BookmarkingRepo; the same expression may appear in both.
type MemorisingRepo interface {
	Ensure(ctx context.Context, tx *gorm.DB, userID, expressionID uuid.UUID) (EnsureResult, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Memorising, error)
	ExpressionIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	FullDeleteByUserAndExpressions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, expressionIDs []uuid.UUID) error
}

type bookmarkingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookmarkingRepo(db *gorm.DB, baseLog *logger.Logger) BookmarkingRepo {
	return &bookmarkingRepo{db: db, log: baseLog.With("repo", "BookmarkingRepo")}
}

func (r *bookmarkingRepo) Ensure(ctx context.Context, tx *gorm.DB, userID, expressionID uuid.UUID) (EnsureResult, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.Bookmarking{
		ID:           uuid.New(),
		UserID:       userID,
		ExpressionID: expressionID,
		CreatedAt:    time.Now().UTC(),
	}
	return ensureMembership(ctx, t, userID, expressionID, row)
}

func (r *bookmarkingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Bookmarking, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Bookmarking
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bookmarkingRepo) ExpressionIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []uuid.UUID
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Model(&domain.Bookmarking{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("expression_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bookmarkingRepo) FullDeleteByUserAndExpressions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, expressionIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || len(expressionIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("user_id = ? AND expression_id IN ?", userID, expressionIDs).
		Delete(&domain.Bookmarking{}).Error
}

type memorisingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemorisingRepo(db *gorm.DB, baseLog *logger.Logger) MemorisingRepo {
	return &memorisingRepo{db: db, log: baseLog.With("repo", "MemorisingRepo")}
}

func (r *memorisingRepo) Ensure(ctx context.Context, tx *gorm.DB, userID, expressionID uuid.UUID) (EnsureResult, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.Memorising{
		ID:           uuid.New(),
		UserID:       userID,
		ExpressionID: expressionID,
		CreatedAt:    time.Now().UTC(),
	}
	return ensureMembership(ctx, t, userID, expressionID, row)
}

func (r *memorisingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Memorising, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Memorising
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memorisingRepo) ExpressionIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []uuid.UUID
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Model(&domain.Memorising{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("expression_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *memorisingRepo) FullDeleteByUserAndExpressions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, expressionIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || len(expressionIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("user_id = ? AND expression_id IN ?", userID, expressionIDs).
		Delete(&domain.Memorising{}).Error
}

// ensureMembership performs the shared insert-or-ignore with an existence
// gate. The uniqueness constraint is the concurrency guard; an insert error
// against a vanished expression is reported as EnsureNotFound rather than
// surfaced, so one bad item cannot abort a batch.
func ensureMembership(ctx context.Context, t *gorm.DB, userID, expressionID uuid.UUID, row interface{}) (EnsureResult, error) {
	if userID == uuid.Nil || expressionID == uuid.Nil {
		return EnsureNotFound, nil
	}

	var count int64
	if err := t.WithContext(ctx).Model(&domain.Expression{}).Where("id = ?", expressionID).Count(&count).Error; err != nil {
		return EnsureNotFound, err
	}
	if count == 0 {
		return EnsureNotFound, nil
	}

	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "expression_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		// The expression may have been deleted between the gate and the
		// insert; re-check before treating this as a real failure.
		var recheck int64
		if err := t.WithContext(ctx).Model(&domain.Expression{}).Where("id = ?", expressionID).Count(&recheck).Error; err == nil && recheck == 0 {
			return EnsureNotFound, nil
		}
		return EnsureNotFound, res.Error
	}
	if res.RowsAffected == 0 {
		return EnsureAlreadyPresent, nil
	}
	return EnsureCreated, nil
}
