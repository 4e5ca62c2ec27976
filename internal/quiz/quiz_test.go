package quiz

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-24/word-warmup/internal/domain"
)

func poolExpression(phrases ...string) *domain.Expression {
	e := &domain.Expression{ID: uuid.New()}
	for i, phrase := range phrases {
		e.Items = append(e.Items, domain.ExpressionItem{
			ID:           uuid.New(),
			ExpressionID: e.ID,
			Content:      phrase,
			Explanation:  "explanation of " + phrase,
			Position:     i,
		})
	}
	return e
}

func TestBuildOneQuestionPerExpression(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := []*domain.Expression{
		poolExpression("balcony", "veranda"),
		poolExpression("big", "large", "huge"),
		{ID: uuid.New()}, // no items, unaskable
	}

	s := Build(pool, rng)
	require.Len(t, s.Questions, 2)

	seen := map[uuid.UUID]bool{}
	for _, q := range s.Questions {
		assert.NotEmpty(t, q.Prompt)
		assert.NotEmpty(t, q.Answers)
		seen[q.ExpressionID] = true
	}
	assert.Len(t, seen, 2)
}

func TestBuildPromptIsOneItemsExplanation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	expr := poolExpression("big", "large")
	s := Build([]*domain.Expression{expr}, rng)
	require.Len(t, s.Questions, 1)

	q := s.Questions[0]
	assert.Contains(t, []string{"explanation of big", "explanation of large"}, q.Prompt)
	assert.Equal(t, []string{"big", "large"}, q.Answers)
}

func TestAnswerAdvancesThroughTheRun(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := Build([]*domain.Expression{
		poolExpression("balcony", "veranda"),
		poolExpression("big", "large"),
	}, rng)

	require.NotNil(t, s.Current())
	assert.False(t, s.AllAnswered())

	s, record := Answer(s, s.Questions[0].Answers[0])
	require.NotNil(t, record)
	assert.Equal(t, ResultCorrect, record.Result)
	assert.True(t, s.LastQuestion())

	s, record = Answer(s, "")
	require.NotNil(t, record)
	assert.Equal(t, ResultNoAnswer, record.Result)

	assert.True(t, s.AllAnswered())
	assert.Nil(t, s.Current())
	assert.Equal(t, 1, s.CorrectCount())

	// Answering past the end is a no-op.
	s, record = Answer(s, "anything")
	assert.Nil(t, record)
	assert.Len(t, s.Answers, 2)
}

func TestBuildResultListsSplitAndDefaults(t *testing.T) {
	e1 := poolExpression("balcony", "veranda")
	e2 := poolExpression("big", "large")
	s := State{
		Questions: []Question{
			{ExpressionID: e1.ID, Answers: []string{"balcony", "veranda"}},
			{ExpressionID: e2.ID, Answers: []string{"big", "large"}},
		},
		Index: 2,
		Answers: []AnswerRecord{
			{Given: "balcony", Result: ResultCorrect},
			{Given: "", Result: ResultNoAnswer},
		},
	}

	lists := BuildResultLists(s, map[uuid.UUID]string{
		e1.ID: "balcony and veranda",
		e2.ID: "big and large",
	})

	assert.Equal(t, 1, lists.Correct)
	assert.Equal(t, 2, lists.Total)
	require.Len(t, lists.Learned.Items, 1)
	require.Len(t, lists.Review.Items, 1)
	assert.Equal(t, e2.ID, lists.Review.Items[0].ExpressionID, "omitted answer lands in the review list")
	assert.True(t, lists.Learned.Items[0].Selected)
	assert.True(t, lists.Review.Items[0].Selected)
	assert.True(t, lists.Learned.SelectAll)
	assert.True(t, lists.Review.SelectAll)
}

func TestToggleSemantics(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	g := ListGroup{
		SelectAll: true,
		Items: []ListItem{
			{ExpressionID: id1, Selected: true},
			{ExpressionID: id2, Selected: true},
		},
	}

	g.ToggleItem(id1, false)
	assert.False(t, g.SelectAll, "single deselection clears select-all")
	assert.True(t, g.Items[1].Selected, "sibling untouched")

	g.ToggleItem(id1, true)
	assert.True(t, g.SelectAll, "reselecting the last child restores select-all")

	g.ToggleAll(false)
	assert.Equal(t, []uuid.UUID(nil), g.SelectedIDs())

	g.ToggleAll(true)
	assert.Len(t, g.SelectedIDs(), 2)
}
