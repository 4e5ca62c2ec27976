package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/data/repos"
	"github.com/ai-24/word-warmup/internal/domain"
	pkgerrors "github.com/ai-24/word-warmup/internal/pkg/errors"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

// ListKind selects which per-user list an expression is browsed within.
// Ordering is stable per list: creation order for the default list,
// membership-insertion order for the other two.
type ListKind string

const (
	ListDefault    ListKind = "default"
	ListBookmarked ListKind = "bookmarked"
	ListMemorised  ListKind = "memorised"
)

// ExpressionDetail is one expression plus its neighbours within the list it
// was opened from.
type ExpressionDetail struct {
	Expression *domain.Expression `json:"expression"`
	PrevID     *uuid.UUID         `json:"prev_id,omitempty"`
	NextID     *uuid.UUID         `json:"next_id,omitempty"`
}

type ExpressionService interface {
	List(ctx context.Context, userID uuid.UUID, kind ListKind) ([]*domain.Expression, error)
	Get(ctx context.Context, userID uuid.UUID, id uuid.UUID, kind ListKind) (*ExpressionDetail, error)
	// Labels renders "a, b and c" display text per expression for the
	// reclassification lists.
	Labels(ctx context.Context, expressionIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type expressionService struct {
	db              *gorm.DB
	log             *logger.Logger
	expressionRepo  repos.ExpressionRepo
	itemRepo        repos.ExpressionItemRepo
	bookmarkingRepo repos.BookmarkingRepo
	memorisingRepo  repos.MemorisingRepo
}

func NewExpressionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	expressionRepo repos.ExpressionRepo,
	itemRepo repos.ExpressionItemRepo,
	bookmarkingRepo repos.BookmarkingRepo,
	memorisingRepo repos.MemorisingRepo,
) ExpressionService {
	return &expressionService{
		db:              db,
		log:             baseLog.With("service", "ExpressionService"),
		expressionRepo:  expressionRepo,
		itemRepo:        itemRepo,
		bookmarkingRepo: bookmarkingRepo,
		memorisingRepo:  memorisingRepo,
	}
}

func (es *expressionService) List(ctx context.Context, userID uuid.UUID, kind ListKind) ([]*domain.Expression, error) {
	ids, err := es.listIDs(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Expression, 0, len(ids))
	for _, id := range ids {
		expr, err := es.expressionRepo.GetByIDPreloaded(ctx, nil, id)
		if err != nil {
			return nil, fmt.Errorf("load expression: %w", err)
		}
		if expr != nil {
			out = append(out, expr)
		}
	}
	return out, nil
}

func (es *expressionService) Get(ctx context.Context, userID uuid.UUID, id uuid.UUID, kind ListKind) (*ExpressionDetail, error) {
	expr, err := es.expressionRepo.GetByIDPreloaded(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load expression: %w", err)
	}
	if expr == nil {
		return nil, pkgerrors.ErrNotFound
	}

	// Ownership is checked before any private field leaves this method. An
	// anonymous visitor gets a login prompt; a logged-in non-owner does not.
	if expr.UserID != nil && *expr.UserID != userID {
		if userID == uuid.Nil {
			return nil, pkgerrors.ErrUnauthorized
		}
		return nil, pkgerrors.ErrForbidden
	}

	detail := &ExpressionDetail{Expression: expr}

	ids, err := es.listIDs(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	for i, listID := range ids {
		if listID != id {
			continue
		}
		if i > 0 {
			prev := ids[i-1]
			detail.PrevID = &prev
		}
		if i+1 < len(ids) {
			next := ids[i+1]
			detail.NextID = &next
		}
		break
	}
	return detail, nil
}

func (es *expressionService) Labels(ctx context.Context, expressionIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	items, err := es.itemRepo.GetByExpressionIDs(ctx, nil, expressionIDs)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	grouped := make(map[uuid.UUID][]string)
	for _, item := range items {
		grouped[item.ExpressionID] = append(grouped[item.ExpressionID], item.Content)
	}
	out := make(map[uuid.UUID]string, len(grouped))
	for id, contents := range grouped {
		out[id] = JoinContents(contents)
	}
	return out, nil
}

func (es *expressionService) listIDs(ctx context.Context, userID uuid.UUID, kind ListKind) ([]uuid.UUID, error) {
	switch kind {
	case ListDefault, "":
		if userID == uuid.Nil {
			samples, err := es.expressionRepo.ListSample(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("load sample list: %w", err)
			}
			ids := make([]uuid.UUID, len(samples))
			for i, e := range samples {
				ids[i] = e.ID
			}
			return ids, nil
		}
		pool, err := es.expressionRepo.ListDefault(ctx, nil, userID)
		if err != nil {
			return nil, fmt.Errorf("load default list: %w", err)
		}
		ids := make([]uuid.UUID, len(pool))
		for i, e := range pool {
			ids[i] = e.ID
		}
		return ids, nil
	case ListBookmarked:
		if userID == uuid.Nil {
			return nil, pkgerrors.ErrUnauthorized
		}
		return es.bookmarkingRepo.ExpressionIDsByUser(ctx, nil, userID)
	case ListMemorised:
		if userID == uuid.Nil {
			return nil, pkgerrors.ErrUnauthorized
		}
		return es.memorisingRepo.ExpressionIDsByUser(ctx, nil, userID)
	}
	return nil, fmt.Errorf("unknown list %q: %w", kind, pkgerrors.ErrInvalidArgument)
}

// JoinContents renders "a", "a and b" or "a, b and c".
func JoinContents(contents []string) string {
	switch len(contents) {
	case 0:
		return ""
	case 1:
		return contents[0]
	case 2:
		return contents[0] + " and " + contents[1]
	default:
		return strings.Join(contents[:len(contents)-1], ", ") + " and " + contents[len(contents)-1]
	}
}
