package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/data/repos"
	"github.com/ai-24/word-warmup/internal/domain"
	pkgerrors "github.com/ai-24/word-warmup/internal/pkg/errors"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
	"github.com/ai-24/word-warmup/internal/quiz"
	"github.com/ai-24/word-warmup/internal/session"
)

// SaveStatus summarizes a reclassification batch. Saves are per-row and
// independent, so a batch can partially succeed; the status tells the client
// which flavour of partial it got.
type SaveStatus string

const (
	SaveAllSaved         SaveStatus = "all_saved"
	SaveExcludingMissing SaveStatus = "saved_excluding_missing"
	SaveReviewFailed     SaveStatus = "review_list_failed"
	SaveLearnedFailed    SaveStatus = "learned_list_failed"
	SaveBothFailed       SaveStatus = "both_lists_failed"
	SaveNothingSelected  SaveStatus = "nothing_selected"
	SaveUnauthenticated  SaveStatus = "unauthenticated"
)

// SaveRequest carries the expressions still checked in each result list.
type SaveRequest struct {
	ReviewIDs  []uuid.UUID `json:"review_ids"`
	LearnedIDs []uuid.UUID `json:"learned_ids"`
}

// SaveOutcome reports what actually happened, list by list.
type SaveOutcome struct {
	Status       SaveStatus `json:"status"`
	ReviewSaved  int        `json:"review_saved"`
	LearnedSaved int        `json:"learned_saved"`
	Missing      int        `json:"missing"`
}

type QuizService interface {
	Start(ctx context.Context, userID, sessionID uuid.UUID) (quiz.State, error)
	Answer(ctx context.Context, sessionID uuid.UUID, given string) (quiz.State, *quiz.AnswerRecord, error)
	Result(ctx context.Context, sessionID uuid.UUID) (*quiz.ResultLists, error)
	Save(ctx context.Context, userID, sessionID uuid.UUID, req SaveRequest) (SaveOutcome, error)
	// Retry discards the finished run and builds a fresh one; expressions
	// reclassified by a preceding save have left the pool and stay out.
	Retry(ctx context.Context, userID, sessionID uuid.UUID) (quiz.State, error)
}

type quizService struct {
	db              *gorm.DB
	log             *logger.Logger
	store           session.Store
	expressionRepo  repos.ExpressionRepo
	expressionSvc   ExpressionService
	bookmarkingRepo repos.BookmarkingRepo
	memorisingRepo  repos.MemorisingRepo
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	store session.Store,
	expressionRepo repos.ExpressionRepo,
	expressionSvc ExpressionService,
	bookmarkingRepo repos.BookmarkingRepo,
	memorisingRepo repos.MemorisingRepo,
) QuizService {
	return &quizService{
		db:              db,
		log:             baseLog.With("service", "QuizService"),
		store:           store,
		expressionRepo:  expressionRepo,
		expressionSvc:   expressionSvc,
		bookmarkingRepo: bookmarkingRepo,
		memorisingRepo:  memorisingRepo,
	}
}

func (qs *quizService) Start(ctx context.Context, userID, sessionID uuid.UUID) (quiz.State, error) {
	pool, err := qs.pool(ctx, userID)
	if err != nil {
		return quiz.State{}, err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state := quiz.Build(pool, rng)
	if err := qs.store.Put(ctx, session.KindQuiz, sessionID, state); err != nil {
		return quiz.State{}, fmt.Errorf("store quiz session: %w", err)
	}
	return state, nil
}

func (qs *quizService) Answer(ctx context.Context, sessionID uuid.UUID, given string) (quiz.State, *quiz.AnswerRecord, error) {
	state, err := qs.load(ctx, sessionID)
	if err != nil {
		return quiz.State{}, nil, err
	}
	next, record := quiz.Answer(state, given)
	if err := qs.store.Put(ctx, session.KindQuiz, sessionID, next); err != nil {
		return quiz.State{}, nil, fmt.Errorf("store quiz session: %w", err)
	}
	return next, record, nil
}

func (qs *quizService) Result(ctx context.Context, sessionID uuid.UUID) (*quiz.ResultLists, error) {
	state, err := qs.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.AllAnswered() {
		return nil, fmt.Errorf("quiz still in progress: %w", pkgerrors.ErrInvalidArgument)
	}

	ids := make([]uuid.UUID, len(state.Questions))
	for i, q := range state.Questions {
		ids[i] = q.ExpressionID
	}
	labels, err := qs.expressionSvc.Labels(ctx, ids)
	if err != nil {
		return nil, err
	}
	lists := quiz.BuildResultLists(state, labels)
	return &lists, nil
}

func (qs *quizService) Save(ctx context.Context, userID, sessionID uuid.UUID, req SaveRequest) (SaveOutcome, error) {
	if userID == uuid.Nil {
		return SaveOutcome{Status: SaveUnauthenticated}, nil
	}
	state, err := qs.load(ctx, sessionID)
	if err != nil {
		return SaveOutcome{}, err
	}

	asked := make(map[uuid.UUID]bool, len(state.Questions))
	for _, q := range state.Questions {
		asked[q.ExpressionID] = true
	}
	reviewIDs := filterAsked(req.ReviewIDs, asked)
	learnedIDs := filterAsked(req.LearnedIDs, asked)
	if len(reviewIDs) == 0 && len(learnedIDs) == 0 {
		return SaveOutcome{Status: SaveNothingSelected}, nil
	}

	var out SaveOutcome
	var reviewFailed, learnedFailed bool

	// Each row is its own insert; one failure never rolls back its
	// neighbours or the other list.
	for _, id := range reviewIDs {
		result, err := qs.bookmarkingRepo.Ensure(ctx, nil, userID, id)
		if err != nil {
			qs.log.Error("review save failed", "error", err, "expression_id", id, "user_id", userID)
			reviewFailed = true
			continue
		}
		switch result {
		case repos.EnsureNotFound:
			out.Missing++
		default:
			out.ReviewSaved++
		}
	}
	for _, id := range learnedIDs {
		result, err := qs.memorisingRepo.Ensure(ctx, nil, userID, id)
		if err != nil {
			qs.log.Error("learned save failed", "error", err, "expression_id", id, "user_id", userID)
			learnedFailed = true
			continue
		}
		switch result {
		case repos.EnsureNotFound:
			out.Missing++
		default:
			out.LearnedSaved++
		}
	}

	switch {
	case reviewFailed && learnedFailed:
		out.Status = SaveBothFailed
	case reviewFailed:
		out.Status = SaveReviewFailed
	case learnedFailed:
		out.Status = SaveLearnedFailed
	case out.Missing > 0:
		out.Status = SaveExcludingMissing
	default:
		out.Status = SaveAllSaved
	}

	if !reviewFailed && !learnedFailed {
		if err := qs.store.Delete(ctx, session.KindQuiz, sessionID); err != nil {
			qs.log.Warn("failed to clear quiz session", "error", err, "session_id", sessionID)
		}
	}
	return out, nil
}

func (qs *quizService) Retry(ctx context.Context, userID, sessionID uuid.UUID) (quiz.State, error) {
	if err := qs.store.Delete(ctx, session.KindQuiz, sessionID); err != nil {
		qs.log.Warn("failed to clear quiz session", "error", err, "session_id", sessionID)
	}
	return qs.Start(ctx, userID, sessionID)
}

func (qs *quizService) load(ctx context.Context, sessionID uuid.UUID) (quiz.State, error) {
	var state quiz.State
	ok, err := qs.store.Get(ctx, session.KindQuiz, sessionID, &state)
	if err != nil {
		return quiz.State{}, fmt.Errorf("load quiz session: %w", err)
	}
	if !ok {
		return quiz.State{}, fmt.Errorf("no quiz session: %w", pkgerrors.ErrNotFound)
	}
	return state, nil
}

// pool selects the questionable expressions. Logged-in users draw from their
// default list (owned plus samples, minus anything already reclassified);
// anonymous visitors draw from the samples alone.
func (qs *quizService) pool(ctx context.Context, userID uuid.UUID) ([]*domain.Expression, error) {
	if userID == uuid.Nil {
		return qs.expressionRepo.ListSample(ctx, nil)
	}
	return qs.expressionRepo.ListDefault(ctx, nil, userID)
}

func filterAsked(ids []uuid.UUID, asked map[uuid.UUID]bool) []uuid.UUID {
	var out []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if asked[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
