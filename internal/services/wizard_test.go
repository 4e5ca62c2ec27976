package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/data/repos"
	"github.com/ai-24/word-warmup/internal/data/repos/testutil"
	"github.com/ai-24/word-warmup/internal/domain"
	pkgerrors "github.com/ai-24/word-warmup/internal/pkg/errors"
	"github.com/ai-24/word-warmup/internal/session"
	"github.com/ai-24/word-warmup/internal/wizard"
)

type wizardFixture struct {
	tx    *gorm.DB
	store session.Store
	svc   WizardService
}

func newWizardFixture(t *testing.T) wizardFixture {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	store := session.NewMemoryStore(time.Hour)
	svc := NewWizardService(
		tx,
		log,
		store,
		repos.NewExpressionRepo(tx, log),
		repos.NewExpressionItemRepo(tx, log),
		repos.NewExampleRepo(tx, log),
		repos.NewTagRepo(tx, log),
	)
	return wizardFixture{tx: tx, store: store, svc: svc}
}

func runWizard(t *testing.T, f wizardFixture, sessionID uuid.UUID, phrases []string, note string, tags []string) {
	t.Helper()
	ctx := context.Background()

	state, fieldErrs, err := f.svc.Submit(ctx, sessionID, 0, wizard.StepForm{Phrases: phrases})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	for step := 1; step <= len(state.Items); step++ {
		_, fieldErrs, err = f.svc.Submit(ctx, sessionID, step, wizard.StepForm{
			Explanation: "explanation of " + state.Items[step-1].Content,
		})
		require.NoError(t, err)
		require.Empty(t, fieldErrs)
	}

	_, fieldErrs, err = f.svc.Submit(ctx, sessionID, state.FinalStep(), wizard.StepForm{Note: note, Tags: tags})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
}

func TestWizardCreateRoundTrip(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, f.tx, "create@example.com")
	sessionID := uuid.New()

	_, err := f.svc.Start(ctx, user.ID, sessionID)
	require.NoError(t, err)

	runWizard(t, f, sessionID, []string{"big", "large", "huge"}, "size words", []string{"adjectives", "size"})

	expr, err := f.svc.Finalize(ctx, user.ID, sessionID)
	require.NoError(t, err)
	require.NotNil(t, expr)

	var stored domain.Expression
	require.NoError(t, f.tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tags").
		Where("id = ?", expr.ID).First(&stored).Error)

	require.Len(t, stored.Items, 3)
	for i, content := range []string{"big", "large", "huge"} {
		assert.Equal(t, content, stored.Items[i].Content)
		assert.Equal(t, i, stored.Items[i].Position)
		assert.Equal(t, "explanation of "+content, stored.Items[i].Explanation)
	}
	assert.Equal(t, "size words", stored.Note)
	assert.Len(t, stored.Tags, 2)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, user.ID, *stored.UserID)

	// The wizard session is gone once the expression is persisted.
	var left wizard.State
	ok, err := f.store.Get(ctx, session.KindWizard, sessionID, &left)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWizardFinalizeRejectsIncompleteSession(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, f.tx, "incomplete@example.com")
	sessionID := uuid.New()

	_, err := f.svc.Start(ctx, user.ID, sessionID)
	require.NoError(t, err)

	_, fieldErrs, err := f.svc.Submit(ctx, sessionID, 0, wizard.StepForm{Phrases: []string{"big", "large"}})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	_, err = f.svc.Finalize(ctx, user.ID, sessionID)
	require.ErrorIs(t, err, pkgerrors.ErrInvalidArgument)

	var count int64
	require.NoError(t, f.tx.Model(&domain.Expression{}).Count(&count).Error)
	assert.Zero(t, count, "nothing persisted before every step is complete")
}

func TestWizardEditUpdatesOnlyChangedChildren(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, f.tx, "edit@example.com")
	seeded := testutil.SeedExpression(t, ctx, f.tx, &user.ID, "balcony", "veranda")
	sessionID := uuid.New()

	state, err := f.svc.StartEdit(ctx, user.ID, sessionID, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.ModeEdit, state.Mode)
	assert.Empty(t, wizard.IncompleteSteps(state), "edit sessions start fully valid")

	// Change the second explanation only, then finalize.
	_, fieldErrs, err := f.svc.Submit(ctx, sessionID, 2, wizard.StepForm{Explanation: "an open gallery"})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	_, fieldErrs, err = f.svc.Submit(ctx, sessionID, state.FinalStep(), wizard.StepForm{Note: "porch words"})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	expr, err := f.svc.Finalize(ctx, user.ID, sessionID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, expr.ID)

	var items []domain.ExpressionItem
	require.NoError(t, f.tx.Where("expression_id = ?", seeded.ID).Order("position ASC").Find(&items).Error)
	require.Len(t, items, 2, "edit never grows the item set unless phrases were added")
	assert.Equal(t, seeded.Items[0].ID, items[0].ID, "untouched item keeps its row")
	assert.Equal(t, "explanation of balcony", items[0].Explanation)
	assert.Equal(t, seeded.Items[1].ID, items[1].ID, "changed item keeps its row too")
	assert.Equal(t, "an open gallery", items[1].Explanation)
}

func TestWizardEditAppendsNewPhrases(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, f.tx, "append@example.com")
	seeded := testutil.SeedExpression(t, ctx, f.tx, &user.ID, "big", "large")
	sessionID := uuid.New()

	_, err := f.svc.StartEdit(ctx, user.ID, sessionID, seeded.ID)
	require.NoError(t, err)

	state, fieldErrs, err := f.svc.Submit(ctx, sessionID, 0, wizard.StepForm{Phrases: []string{"big", "large", "huge"}})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.Len(t, state.Items, 3)

	_, fieldErrs, err = f.svc.Submit(ctx, sessionID, 3, wizard.StepForm{Explanation: "explanation of huge"})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	_, fieldErrs, err = f.svc.Submit(ctx, sessionID, state.FinalStep(), wizard.StepForm{})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	_, err = f.svc.Finalize(ctx, user.ID, sessionID)
	require.NoError(t, err)

	var items []domain.ExpressionItem
	require.NoError(t, f.tx.Where("expression_id = ?", seeded.ID).Order("position ASC").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, "huge", items[2].Content)
	assert.Equal(t, 2, items[2].Position)
}

func TestWizardEditRequiresOwnership(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, f.tx, "owner@example.com")
	other := testutil.SeedUser(t, ctx, f.tx, "other@example.com")
	seeded := testutil.SeedExpression(t, ctx, f.tx, &owner.ID, "big", "large")

	_, err := f.svc.StartEdit(ctx, other.ID, uuid.New(), seeded.ID)
	require.ErrorIs(t, err, pkgerrors.ErrForbidden)

	_, err = f.svc.StartEdit(ctx, other.ID, uuid.New(), uuid.New())
	require.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestWizardBackKeepsEnteredValues(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, f.tx, "back@example.com")
	sessionID := uuid.New()

	_, err := f.svc.Start(ctx, user.ID, sessionID)
	require.NoError(t, err)

	_, _, err = f.svc.Submit(ctx, sessionID, 0, wizard.StepForm{Phrases: []string{"big", "large"}})
	require.NoError(t, err)
	state, _, err := f.svc.Submit(ctx, sessionID, 1, wizard.StepForm{
		Explanation: "explanation of big",
		Examples:    []string{"a big dog"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, state.CurrentStep)

	state, err = f.svc.Back(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, "explanation of big", state.Items[0].Explanation)
	assert.Equal(t, []string{"a big dog"}, state.Items[0].Examples)
}
