package wizard

import (
	"fmt"
	"strings"
)

// FieldErrors maps a form field to its validation message. Empty means the
// step passed and the wizard advanced.
type FieldErrors map[string]string

// StepForm is the union of the per-step submissions; only the fields for the
// submitted step are read.
type StepForm struct {
	Phrases     []string `json:"phrases,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Note        string   `json:"note,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SubmitStep validates the submitted step and merges it into the state. On
// failure the state keeps the entered values and stays on the same step so
// the page can re-render with field-level markers.
func SubmitStep(s State, step int, form StepForm) (State, FieldErrors) {
	if step < 0 || step >= s.StepCount() {
		return s, FieldErrors{"step": fmt.Sprintf("unknown step %d", step)}
	}
	s.CurrentStep = step

	switch {
	case step == 0:
		return submitPhrases(s, form)
	case step == s.FinalStep():
		return submitNoteAndTags(s, form)
	default:
		return submitItem(s, step, form)
	}
}

func submitPhrases(s State, form StepForm) (State, FieldErrors) {
	phrases := normalizePhrases(form.Phrases)
	if len(phrases) < MinItems {
		// Keep the raw entry so the page re-renders what was typed.
		for i, phrase := range form.Phrases {
			if i >= len(s.Items) {
				s.Items = append(s.Items, ItemDraft{})
			}
			s.Items[i].Content = strings.TrimSpace(phrase)
		}
		return s, FieldErrors{"phrases": "at least two expressions required"}
	}

	s = Recompute(s, phrases)
	s.Completed[0] = true
	s.CurrentStep = 1
	return s, nil
}

func submitItem(s State, step int, form StepForm) (State, FieldErrors) {
	idx := step - 1
	explanation := strings.TrimSpace(form.Explanation)
	examples := normalizeExamples(form.Examples)

	// Retain what was typed even when validation fails.
	s.Items[idx].Explanation = explanation
	s.Items[idx].Examples = examples

	if explanation == "" {
		s.Completed[step] = false
		return s, FieldErrors{"explanation": "explanation required"}
	}

	s.Completed[step] = true
	s.CurrentStep = step + 1
	return s, nil
}

func submitNoteAndTags(s State, form StepForm) (State, FieldErrors) {
	s.Note = strings.TrimSpace(form.Note)
	s.Tags = normalizeTags(form.Tags)
	s.Completed[s.FinalStep()] = true
	return s, nil
}

// IncompleteSteps lists every step that would block finalize: fewer than two
// phrases, or an item step whose explanation is still blank.
func IncompleteSteps(s State) []int {
	var out []int
	if len(s.Items) < MinItems {
		return []int{0}
	}
	for i, item := range s.Items {
		if strings.TrimSpace(item.Explanation) == "" {
			out = append(out, i+1)
		}
	}
	return out
}
