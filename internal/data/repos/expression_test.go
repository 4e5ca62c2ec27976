package repos

import (
	"context"
	"testing"
	"time"

	"github.com/ai-24/word-warmup/internal/data/repos/testutil"
)

func TestExpressionRepoListDefault(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewExpressionRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "expressionrepo@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other-expressionrepo@example.com")

	owned := testutil.SeedExpression(t, ctx, tx, &u.ID, "balcony", "veranda")
	bookmarked := testutil.SeedExpression(t, ctx, tx, &u.ID, "porch", "terrace")
	memorised := testutil.SeedExpression(t, ctx, tx, &u.ID, "big", "large")
	sample := testutil.SeedExpression(t, ctx, tx, nil, "on the beach", "at the beach")
	foreign := testutil.SeedExpression(t, ctx, tx, &other.ID, "hear", "listen")

	// Stable creation order for the assertion below.
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []any{owned.ID, bookmarked.ID, memorised.ID, sample.ID, foreign.ID} {
		if err := tx.Exec("UPDATE expressions SET created_at = ? WHERE id = ?", base.Add(time.Duration(i)*time.Minute), id).Error; err != nil {
			t.Fatalf("set created_at: %v", err)
		}
	}

	testutil.SeedBookmarking(t, ctx, tx, u.ID, bookmarked.ID)
	testutil.SeedMemorising(t, ctx, tx, u.ID, memorised.ID)

	pool, err := repo.ListDefault(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListDefault: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("ListDefault returned %d expressions, want owned+sample only", len(pool))
	}
	if pool[0].ID != owned.ID || pool[1].ID != sample.ID {
		t.Fatalf("ListDefault order: got %v then %v", pool[0].ID, pool[1].ID)
	}

	samples, err := repo.ListSample(ctx, tx)
	if err != nil || len(samples) != 1 || samples[0].ID != sample.ID {
		t.Fatalf("ListSample: err=%v len=%d", err, len(samples))
	}

	got, err := repo.GetByIDPreloaded(ctx, tx, owned.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByIDPreloaded: got=%v err=%v", got, err)
	}
	if len(got.Items) != 2 || got.Items[0].Position != 0 || got.Items[1].Position != 1 {
		t.Fatalf("GetByIDPreloaded items: %+v", got.Items)
	}

	if ok, err := repo.Exists(ctx, tx, owned.ID); err != nil || !ok {
		t.Fatalf("Exists: ok=%v err=%v", ok, err)
	}
}

func TestExpressionRepoListDefaultSharedSampleStaysForOthers(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewExpressionRepo(db, testutil.Logger(t))

	a := testutil.SeedUser(t, ctx, tx, "pool-a@example.com")
	b := testutil.SeedUser(t, ctx, tx, "pool-b@example.com")
	sample := testutil.SeedExpression(t, ctx, tx, nil, "balcony", "veranda")

	// User A classifying a sample removes it from A's pool only.
	testutil.SeedMemorising(t, ctx, tx, a.ID, sample.ID)

	poolA, err := repo.ListDefault(ctx, tx, a.ID)
	if err != nil || len(poolA) != 0 {
		t.Fatalf("pool for A: err=%v len=%d", err, len(poolA))
	}
	poolB, err := repo.ListDefault(ctx, tx, b.ID)
	if err != nil || len(poolB) != 1 {
		t.Fatalf("pool for B: err=%v len=%d", err, len(poolB))
	}
}
