package quiz

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/ai-24/word-warmup/internal/domain"
)

// Question asks which phrase a randomly chosen explanation describes. Every
// item content of the expression counts as a right answer, not only the
// prompted one's.
type Question struct {
	ExpressionID uuid.UUID `json:"expression_id"`
	Prompt       string    `json:"prompt"`
	Answers      []string  `json:"answers"`
}

type ResultKind string

const (
	ResultCorrect  ResultKind = "correct"
	ResultWrong    ResultKind = "wrong"
	ResultNoAnswer ResultKind = "no_answer"
)

// AnswerRecord is one graded submission.
type AnswerRecord struct {
	Given  string     `json:"given"`
	Result ResultKind `json:"result"`
}

// State is the session-backed quiz run: Question 1..N, then AllAnswered,
// then Result.
type State struct {
	Questions []Question     `json:"questions"`
	Index     int            `json:"index"`
	Answers   []AnswerRecord `json:"answers"`
}

// Build makes one question per pool expression in random order. Expressions
// without items are skipped; they cannot be asked or answered.
func Build(pool []*domain.Expression, rng *rand.Rand) State {
	questions := make([]Question, 0, len(pool))
	for _, expr := range pool {
		if len(expr.Items) == 0 {
			continue
		}
		prompted := expr.Items[rng.Intn(len(expr.Items))]
		answers := make([]string, len(expr.Items))
		for i, item := range expr.Items {
			answers[i] = item.Content
		}
		questions = append(questions, Question{
			ExpressionID: expr.ID,
			Prompt:       prompted.Explanation,
			Answers:      answers,
		})
	}
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return State{Questions: questions}
}

// Current returns the question awaiting an answer, or nil once all are done.
func (s State) Current() *Question {
	if s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

func (s State) AllAnswered() bool {
	return len(s.Answers) == len(s.Questions)
}

// LastQuestion reports whether the pending question is the final one, where
// "next" is replaced by "show result".
func (s State) LastQuestion() bool {
	return s.Index == len(s.Questions)-1
}

func (s State) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.Result == ResultCorrect {
			n++
		}
	}
	return n
}

// Answer grades the submission for the current question and advances.
func Answer(s State, given string) (State, *AnswerRecord) {
	q := s.Current()
	if q == nil {
		return s, nil
	}
	record := AnswerRecord{Given: given, Result: Grade(given, q.Answers)}
	s.Answers = append(s.Answers, record)
	s.Index++
	return s, &record
}
