package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ai-24/word-warmup/internal/data/repos/testutil"
	"github.com/ai-24/word-warmup/internal/domain"
)

func TestTagRepoEnsureByTexts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewTagRepo(db, testutil.Logger(t))

	existing := testutil.SeedTag(t, ctx, tx, "English")

	// One existing text, one duplicate within the request, one new.
	rows, err := repo.EnsureByTexts(ctx, tx, []string{"English", "preposition", "preposition"})
	if err != nil {
		t.Fatalf("EnsureByTexts: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("EnsureByTexts returned %d rows, want 2", len(rows))
	}

	var count int64
	if err := tx.Model(&domain.Tag{}).Count(&count).Error; err != nil || count != 2 {
		t.Fatalf("tag rows after ensure: %d err=%v", count, err)
	}

	// Matching is exact and case-sensitive: "english" is a distinct tag.
	if _, err := repo.EnsureByTexts(ctx, tx, []string{"english"}); err != nil {
		t.Fatalf("EnsureByTexts lowercase: %v", err)
	}
	if err := tx.Model(&domain.Tag{}).Count(&count).Error; err != nil || count != 3 {
		t.Fatalf("tag rows after lowercase ensure: %d err=%v", count, err)
	}

	got, err := repo.GetByTexts(ctx, tx, []string{"English"})
	if err != nil || len(got) != 1 || got[0].ID != existing.ID {
		t.Fatalf("GetByTexts kept canonical row: got=%v err=%v", got, err)
	}
}

func TestTagRepoAttachToExpression(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewTagRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "tagrepo@example.com")
	e := testutil.SeedExpression(t, ctx, tx, &u.ID, "big", "large")
	tag1 := testutil.SeedTag(t, ctx, tx, "adjective")
	tag2 := testutil.SeedTag(t, ctx, tx, "size")

	if err := repo.AttachToExpression(ctx, tx, e.ID, []uuid.UUID{tag1.ID, tag2.ID}); err != nil {
		t.Fatalf("AttachToExpression: %v", err)
	}
	// Attaching again must not duplicate join rows.
	if err := repo.AttachToExpression(ctx, tx, e.ID, []uuid.UUID{tag1.ID}); err != nil {
		t.Fatalf("AttachToExpression repeat: %v", err)
	}

	tags, err := repo.GetByExpressionID(ctx, tx, e.ID)
	if err != nil || len(tags) != 2 {
		t.Fatalf("GetByExpressionID: err=%v len=%d", err, len(tags))
	}
	if tags[0].Text != "adjective" || tags[1].Text != "size" {
		t.Fatalf("GetByExpressionID order: %q then %q", tags[0].Text, tags[1].Text)
	}
}
