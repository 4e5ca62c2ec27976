package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/data/repos"
	"github.com/ai-24/word-warmup/internal/domain"
	pkgerrors "github.com/ai-24/word-warmup/internal/pkg/errors"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
	"github.com/ai-24/word-warmup/internal/session"
	"github.com/ai-24/word-warmup/internal/wizard"
)

// WizardService drives the multi-step expression form. Each request loads the
// session state, applies one pure transition and stores the result; the
// browser serializes navigation, so no in-process locking is attempted.
type WizardService interface {
	Start(ctx context.Context, userID, sessionID uuid.UUID) (wizard.State, error)
	StartEdit(ctx context.Context, userID, sessionID, expressionID uuid.UUID) (wizard.State, error)
	Submit(ctx context.Context, sessionID uuid.UUID, step int, form wizard.StepForm) (wizard.State, wizard.FieldErrors, error)
	Back(ctx context.Context, sessionID uuid.UUID) (wizard.State, error)
	Finalize(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Expression, error)
}

type wizardService struct {
	db             *gorm.DB
	log            *logger.Logger
	store          session.Store
	expressionRepo repos.ExpressionRepo
	itemRepo       repos.ExpressionItemRepo
	exampleRepo    repos.ExampleRepo
	tagRepo        repos.TagRepo
}

func NewWizardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	store session.Store,
	expressionRepo repos.ExpressionRepo,
	itemRepo repos.ExpressionItemRepo,
	exampleRepo repos.ExampleRepo,
	tagRepo repos.TagRepo,
) WizardService {
	return &wizardService{
		db:             db,
		log:            baseLog.With("service", "WizardService"),
		store:          store,
		expressionRepo: expressionRepo,
		itemRepo:       itemRepo,
		exampleRepo:    exampleRepo,
		tagRepo:        tagRepo,
	}
}

func (ws *wizardService) Start(ctx context.Context, userID, sessionID uuid.UUID) (wizard.State, error) {
	if userID == uuid.Nil {
		return wizard.State{}, pkgerrors.ErrUnauthorized
	}
	state := wizard.NewCreateState()
	if err := ws.store.Put(ctx, session.KindWizard, sessionID, state); err != nil {
		return wizard.State{}, fmt.Errorf("store wizard session: %w", err)
	}
	return state, nil
}

func (ws *wizardService) StartEdit(ctx context.Context, userID, sessionID, expressionID uuid.UUID) (wizard.State, error) {
	if userID == uuid.Nil {
		return wizard.State{}, pkgerrors.ErrUnauthorized
	}
	expr, err := ws.expressionRepo.GetByIDPreloaded(ctx, nil, expressionID)
	if err != nil {
		return wizard.State{}, fmt.Errorf("load expression: %w", err)
	}
	if expr == nil {
		return wizard.State{}, pkgerrors.ErrNotFound
	}
	if expr.UserID == nil || *expr.UserID != userID {
		return wizard.State{}, pkgerrors.ErrForbidden
	}

	items := make([]wizard.ItemDraft, len(expr.Items))
	for i, item := range expr.Items {
		draft := wizard.ItemDraft{Content: item.Content, Explanation: item.Explanation}
		for _, example := range item.Examples {
			draft.Examples = append(draft.Examples, example.Content)
		}
		items[i] = draft
	}
	tags := make([]string, len(expr.Tags))
	for i, tag := range expr.Tags {
		tags[i] = tag.Text
	}

	state := wizard.NewEditState(expr.ID, items, expr.Note, tags)
	if err := ws.store.Put(ctx, session.KindWizard, sessionID, state); err != nil {
		return wizard.State{}, fmt.Errorf("store wizard session: %w", err)
	}
	return state, nil
}

func (ws *wizardService) Submit(ctx context.Context, sessionID uuid.UUID, step int, form wizard.StepForm) (wizard.State, wizard.FieldErrors, error) {
	state, err := ws.load(ctx, sessionID)
	if err != nil {
		return wizard.State{}, nil, err
	}
	next, fieldErrs := wizard.SubmitStep(state, step, form)
	if err := ws.store.Put(ctx, session.KindWizard, sessionID, next); err != nil {
		return wizard.State{}, nil, fmt.Errorf("store wizard session: %w", err)
	}
	return next, fieldErrs, nil
}

func (ws *wizardService) Back(ctx context.Context, sessionID uuid.UUID) (wizard.State, error) {
	state, err := ws.load(ctx, sessionID)
	if err != nil {
		return wizard.State{}, err
	}
	next := wizard.GoBack(state)
	if err := ws.store.Put(ctx, session.KindWizard, sessionID, next); err != nil {
		return wizard.State{}, fmt.Errorf("store wizard session: %w", err)
	}
	return next, nil
}

func (ws *wizardService) Finalize(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Expression, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	state, err := ws.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if steps := wizard.IncompleteSteps(state); len(steps) > 0 {
		return nil, fmt.Errorf("steps %v incomplete: %w", steps, pkgerrors.ErrInvalidArgument)
	}

	var expr *domain.Expression
	err = ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if state.Mode == wizard.ModeEdit && state.ExpressionID != nil {
			expr, err = ws.applyEdit(ctx, tx, userID, state)
			return err
		}
		expr, err = ws.applyCreate(ctx, tx, userID, state)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := ws.store.Delete(ctx, session.KindWizard, sessionID); err != nil {
		ws.log.Warn("failed to clear wizard session", "error", err, "session_id", sessionID)
	}
	return expr, nil
}

func (ws *wizardService) load(ctx context.Context, sessionID uuid.UUID) (wizard.State, error) {
	var state wizard.State
	ok, err := ws.store.Get(ctx, session.KindWizard, sessionID, &state)
	if err != nil {
		return wizard.State{}, fmt.Errorf("load wizard session: %w", err)
	}
	if !ok {
		return wizard.State{}, fmt.Errorf("no wizard session: %w", pkgerrors.ErrNotFound)
	}
	return state, nil
}

func (ws *wizardService) applyCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, state wizard.State) (*domain.Expression, error) {
	now := time.Now().UTC()
	expr := &domain.Expression{
		ID:        uuid.New(),
		UserID:    &userID,
		Note:      state.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ws.expressionRepo.Create(ctx, tx, []*domain.Expression{expr}); err != nil {
		return nil, fmt.Errorf("create expression: %w", err)
	}

	items := make([]*domain.ExpressionItem, len(state.Items))
	for i, draft := range state.Items {
		items[i] = &domain.ExpressionItem{
			ID:           uuid.New(),
			ExpressionID: expr.ID,
			Content:      draft.Content,
			Explanation:  draft.Explanation,
			Position:     i,
		}
	}
	if _, err := ws.itemRepo.Create(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("create expression items: %w", err)
	}

	var examples []*domain.Example
	for i, draft := range state.Items {
		for j, content := range draft.Examples {
			examples = append(examples, &domain.Example{
				ID:               uuid.New(),
				ExpressionItemID: items[i].ID,
				Content:          content,
				Position:         j,
			})
		}
	}
	if _, err := ws.exampleRepo.Create(ctx, tx, examples); err != nil {
		return nil, fmt.Errorf("create examples: %w", err)
	}

	if err := ws.applyTags(ctx, tx, expr.ID, state.Tags); err != nil {
		return nil, err
	}
	return expr, nil
}

// applyEdit updates children in place by position and appends new positions.
// Child rows are never deleted by an edit.
func (ws *wizardService) applyEdit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, state wizard.State) (*domain.Expression, error) {
	expr, err := ws.expressionRepo.GetByIDPreloaded(ctx, tx, *state.ExpressionID)
	if err != nil {
		return nil, fmt.Errorf("load expression: %w", err)
	}
	if expr == nil {
		return nil, pkgerrors.ErrNotFound
	}
	if expr.UserID == nil || *expr.UserID != userID {
		return nil, pkgerrors.ErrForbidden
	}

	if expr.Note != state.Note {
		if err := ws.expressionRepo.UpdateFields(ctx, tx, expr.ID, map[string]interface{}{"note": state.Note}); err != nil {
			return nil, fmt.Errorf("update note: %w", err)
		}
	}

	for i, draft := range state.Items {
		if i < len(expr.Items) {
			existing := expr.Items[i]
			updates := map[string]interface{}{}
			if existing.Content != draft.Content {
				updates["content"] = draft.Content
			}
			if existing.Explanation != draft.Explanation {
				updates["explanation"] = draft.Explanation
			}
			if len(updates) > 0 {
				if err := ws.itemRepo.UpdateFields(ctx, tx, existing.ID, updates); err != nil {
					return nil, fmt.Errorf("update item %d: %w", i, err)
				}
			}
			if err := ws.applyExampleEdits(ctx, tx, existing, draft.Examples); err != nil {
				return nil, err
			}
			continue
		}

		item := &domain.ExpressionItem{
			ID:           uuid.New(),
			ExpressionID: expr.ID,
			Content:      draft.Content,
			Explanation:  draft.Explanation,
			Position:     i,
		}
		if _, err := ws.itemRepo.Create(ctx, tx, []*domain.ExpressionItem{item}); err != nil {
			return nil, fmt.Errorf("append item %d: %w", i, err)
		}
		for j, content := range draft.Examples {
			example := &domain.Example{
				ID:               uuid.New(),
				ExpressionItemID: item.ID,
				Content:          content,
				Position:         j,
			}
			if _, err := ws.exampleRepo.Create(ctx, tx, []*domain.Example{example}); err != nil {
				return nil, fmt.Errorf("append example: %w", err)
			}
		}
	}

	if err := ws.applyTags(ctx, tx, expr.ID, state.Tags); err != nil {
		return nil, err
	}
	return expr, nil
}

func (ws *wizardService) applyExampleEdits(ctx context.Context, tx *gorm.DB, item domain.ExpressionItem, drafts []string) error {
	for j, content := range drafts {
		if j < len(item.Examples) {
			if item.Examples[j].Content != content {
				if err := ws.exampleRepo.UpdateFields(ctx, tx, item.Examples[j].ID, map[string]interface{}{"content": content}); err != nil {
					return fmt.Errorf("update example: %w", err)
				}
			}
			continue
		}
		example := &domain.Example{
			ID:               uuid.New(),
			ExpressionItemID: item.ID,
			Content:          content,
			Position:         j,
		}
		if _, err := ws.exampleRepo.Create(ctx, tx, []*domain.Example{example}); err != nil {
			return fmt.Errorf("append example: %w", err)
		}
	}
	return nil
}

func (ws *wizardService) applyTags(ctx context.Context, tx *gorm.DB, expressionID uuid.UUID, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	tags, err := ws.tagRepo.EnsureByTexts(ctx, tx, texts)
	if err != nil {
		return fmt.Errorf("ensure tags: %w", err)
	}
	tagIDs := make([]uuid.UUID, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.ID
	}
	if err := ws.tagRepo.AttachToExpression(ctx, tx, expressionID, tagIDs); err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}
	return nil
}
