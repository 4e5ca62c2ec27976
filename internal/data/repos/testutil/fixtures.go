package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "tester",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedExpression creates an expression with one item per phrase, each item
// carrying a generated explanation. userID nil seeds sample content.
func SeedExpression(tb testing.TB, ctx context.Context, tx *gorm.DB, userID *uuid.UUID, phrases ...string) *domain.Expression {
	tb.Helper()
	now := time.Now().UTC()
	e := &domain.Expression{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed expression: %v", err)
	}
	for i, phrase := range phrases {
		item := &domain.ExpressionItem{
			ID:           uuid.New(),
			ExpressionID: e.ID,
			Content:      phrase,
			Explanation:  fmt.Sprintf("explanation of %s", phrase),
			Position:     i,
		}
		if err := tx.WithContext(ctx).Create(item).Error; err != nil {
			tb.Fatalf("seed expression item: %v", err)
		}
		e.Items = append(e.Items, *item)
	}
	return e
}

func SeedBookmarking(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, expressionID uuid.UUID) *domain.Bookmarking {
	tb.Helper()
	b := &domain.Bookmarking{
		ID:           uuid.New(),
		UserID:       userID,
		ExpressionID: expressionID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed bookmarking: %v", err)
	}
	return b
}

func SeedMemorising(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, expressionID uuid.UUID) *domain.Memorising {
	tb.Helper()
	m := &domain.Memorising{
		ID:           uuid.New(),
		UserID:       userID,
		ExpressionID: expressionID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed memorising: %v", err)
	}
	return m
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, text string) *domain.Tag {
	tb.Helper()
	tag := &domain.Tag{ID: uuid.New(), Text: text, CreatedAt: time.Now().UTC()}
	if err := tx.WithContext(ctx).Create(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return tag
}
