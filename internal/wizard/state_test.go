package wizard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPhrasesRequiresTwo(t *testing.T) {
	s := NewCreateState()

	s, errs := SubmitStep(s, 0, StepForm{Phrases: []string{"balcony", "  "}})
	require.Len(t, errs, 1)
	assert.Equal(t, "at least two expressions required", errs["phrases"])
	assert.Equal(t, 0, s.CurrentStep, "must not advance on failure")
	assert.Equal(t, "balcony", s.Items[0].Content, "entered value is retained")

	s, errs = SubmitStep(s, 0, StepForm{Phrases: []string{"balcony", "veranda"}})
	require.Empty(t, errs)
	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, []string{"balcony", "veranda"}, s.Phrases())
	assert.Equal(t, 4, s.StepCount())
}

func TestSubmitPhrasesTrimsTrailingBlanksAndCapsAtFive(t *testing.T) {
	s := NewCreateState()
	s, errs := SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2", "w3", "", ""}})
	require.Empty(t, errs)
	assert.Len(t, s.Items, 3)

	s = NewCreateState()
	s, errs = SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2", "w3", "w4", "w5", "w6"}})
	require.Empty(t, errs)
	assert.Len(t, s.Items, MaxItems)
}

func TestSubmitItemRequiresExplanation(t *testing.T) {
	s := NewCreateState()
	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"big", "large"}})

	s, errs := SubmitStep(s, 1, StepForm{Explanation: "   ", Examples: []string{"so big"}})
	require.Len(t, errs, 1)
	assert.Equal(t, "explanation required", errs["explanation"])
	assert.Equal(t, 1, s.CurrentStep)
	assert.Equal(t, []string{"so big"}, s.Items[0].Examples, "examples are retained across the failure")

	s, errs = SubmitStep(s, 1, StepForm{Explanation: "used for size", Examples: []string{"so big", "", "a big dog", "x", "y"}})
	require.Empty(t, errs)
	assert.Equal(t, 2, s.CurrentStep)
	assert.Len(t, s.Items[0].Examples, MaxExamples)
}

func TestSubmitFinalStepHasNoRequiredFields(t *testing.T) {
	s := NewCreateState()
	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"big", "large"}})
	s, _ = SubmitStep(s, 1, StepForm{Explanation: "e1"})
	s, _ = SubmitStep(s, 2, StepForm{Explanation: "e2"})

	s, errs := SubmitStep(s, 3, StepForm{Note: " a note ", Tags: []string{"English", "English", " ", "size"}})
	require.Empty(t, errs)
	assert.Equal(t, "a note", s.Note)
	assert.Equal(t, []string{"English", "size"}, s.Tags, "tags deduplicated exactly, blanks dropped")
	assert.Empty(t, IncompleteSteps(s))
}

func TestGoBackPreservesEverything(t *testing.T) {
	s := NewCreateState()
	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"big", "large"}})
	s, _ = SubmitStep(s, 1, StepForm{Explanation: "e1", Examples: []string{"ex1"}})

	s = GoBack(s)
	assert.Equal(t, 1, s.CurrentStep)
	s = GoBack(s)
	assert.Equal(t, 0, s.CurrentStep)
	s = GoBack(s)
	assert.Equal(t, 0, s.CurrentStep, "back from the first step stays put")

	assert.Equal(t, "e1", s.Items[0].Explanation)
	assert.Equal(t, []string{"ex1"}, s.Items[0].Examples)
}

func TestRecomputePreservesUnchangedPositions(t *testing.T) {
	s := NewCreateState()
	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2", "w3"}})
	s, _ = SubmitStep(s, 1, StepForm{Explanation: "e1"})
	s, _ = SubmitStep(s, 2, StepForm{Explanation: "e2"})
	s, _ = SubmitStep(s, 3, StepForm{Explanation: "e3"})

	// Go back to step one and swap the middle phrase.
	s.CurrentStep = 0
	s, errs := SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "other", "w3"}})
	require.Empty(t, errs)

	assert.Equal(t, "e1", s.Items[0].Explanation, "unchanged position keeps its draft")
	assert.Equal(t, "", s.Items[1].Explanation, "changed position starts over")
	assert.Equal(t, "e3", s.Items[2].Explanation)
	assert.True(t, s.Completed[1])
	assert.False(t, s.Completed[2], "completion mark cleared for the replaced phrase")
	assert.True(t, s.Completed[3])
}

func TestRecomputeShrinksAndGrows(t *testing.T) {
	s := NewCreateState()
	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2", "w3"}})
	s, _ = SubmitStep(s, 1, StepForm{Explanation: "e1"})

	s, errs := SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2"}})
	require.Empty(t, errs)
	assert.Len(t, s.Items, 2)
	assert.Equal(t, 4, s.StepCount())
	assert.Equal(t, "e1", s.Items[0].Explanation)

	s, errs = SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2", "w3", "w4"}})
	require.Empty(t, errs)
	assert.Len(t, s.Items, 4)
	assert.Equal(t, "e1", s.Items[0].Explanation)
	assert.Equal(t, "", s.Items[2].Explanation, "re-added phrase does not resurrect old draft")
}

func TestProgressStatuses(t *testing.T) {
	s := NewCreateState()
	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2"}})
	s, _ = SubmitStep(s, 1, StepForm{Explanation: "e1"})
	s = GoBack(s)

	progress := s.Progress()
	require.Len(t, progress, 4)
	assert.Equal(t, StatusComplete, progress[0])
	assert.Equal(t, StatusCurrent, progress[1], "current step highlighted even when already complete")
	assert.Equal(t, StatusUpcoming, progress[2])
	assert.Equal(t, StatusUpcoming, progress[3])
}

func TestIncompleteStepsBlocksFinalize(t *testing.T) {
	s := NewCreateState()
	assert.Equal(t, []int{0}, IncompleteSteps(s))

	s, _ = SubmitStep(s, 0, StepForm{Phrases: []string{"w1", "w2"}})
	s, _ = SubmitStep(s, 1, StepForm{Explanation: "e1"})
	assert.Equal(t, []int{2}, IncompleteSteps(s))

	s, _ = SubmitStep(s, 2, StepForm{Explanation: "e2"})
	assert.Empty(t, IncompleteSteps(s))
}

func TestNewEditStateIsPrefilled(t *testing.T) {
	id := uuid.New()
	s := NewEditState(id, []ItemDraft{
		{Content: "big", Explanation: "e1"},
		{Content: "large", Explanation: "e2", Examples: []string{"a large crowd"}},
	}, "note", []string{"size"})

	require.NotNil(t, s.ExpressionID)
	assert.Equal(t, id, *s.ExpressionID)
	assert.Equal(t, ModeEdit, s.Mode)
	assert.Equal(t, 0, s.CurrentStep)
	for i, done := range s.Completed {
		assert.True(t, done, "step %d should start complete when editing", i)
	}
	assert.Empty(t, IncompleteSteps(s))
}
