package wizard

import (
	"strings"

	"github.com/google/uuid"
)

const (
	MinItems    = 2
	MaxItems    = 5
	MaxExamples = 3
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ItemDraft is the in-progress form state for one phrase of the group.
type ItemDraft struct {
	Content     string   `json:"content"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples,omitempty"`
}

// State is the whole wizard session between requests. Step 0 collects the
// phrases, steps 1..N carry one ItemDraft each, step N+1 is the note/tags
// page. Completed tracks which steps have passed forward validation in this
// session; Recompute un-marks steps it invalidates.
type State struct {
	Mode         Mode        `json:"mode"`
	ExpressionID *uuid.UUID  `json:"expression_id,omitempty"`
	Items        []ItemDraft `json:"items"`
	Note         string      `json:"note"`
	Tags         []string    `json:"tags,omitempty"`
	CurrentStep  int         `json:"current_step"`
	Completed    []bool      `json:"completed"`
}

func NewCreateState() State {
	return State{
		Mode:      ModeCreate,
		Completed: make([]bool, 2),
	}
}

// NewEditState seeds the wizard from an existing expression. Every step is
// pre-marked complete since the stored data already passed validation once.
func NewEditState(expressionID uuid.UUID, items []ItemDraft, note string, tags []string) State {
	id := expressionID
	completed := make([]bool, len(items)+2)
	for i := range completed {
		completed[i] = true
	}
	return State{
		Mode:         ModeEdit,
		ExpressionID: &id,
		Items:        items,
		Note:         note,
		Tags:         tags,
		Completed:    completed,
	}
}

// StepCount is phrases + one step per item + the note/tags step.
func (s State) StepCount() int {
	return len(s.Items) + 2
}

// FinalStep is the index of the note/tags page.
func (s State) FinalStep() int {
	return s.StepCount() - 1
}

// GoBack moves one step back without discarding any entered values.
func GoBack(s State) State {
	if s.CurrentStep > 0 {
		s.CurrentStep--
	}
	return s
}

// Recompute realigns downstream step state after the phrase list changed.
// A draft survives only when its position still holds the same content;
// positions that now hold a different or new phrase start over, and their
// completion marks are cleared.
func Recompute(s State, phrases []string) State {
	items := make([]ItemDraft, len(phrases))
	completed := make([]bool, len(phrases)+2)

	completed[0] = len(s.Completed) > 0 && s.Completed[0]
	if last := len(s.Completed) - 1; last >= 1 {
		completed[len(completed)-1] = s.Completed[last]
	}

	for i, phrase := range phrases {
		if i < len(s.Items) && s.Items[i].Content == phrase {
			items[i] = s.Items[i]
			if i+1 < len(s.Completed) {
				completed[i+1] = s.Completed[i+1]
			}
			continue
		}
		items[i] = ItemDraft{Content: phrase}
	}

	s.Items = items
	s.Completed = completed
	return s
}

// StepStatus feeds the progress indicator.
type StepStatus int

const (
	StatusUpcoming StepStatus = iota
	StatusCurrent
	StatusComplete
)

// Progress derives one status per step. The current step is highlighted even
// when it has already passed validation.
func (s State) Progress() []StepStatus {
	out := make([]StepStatus, s.StepCount())
	for i := range out {
		switch {
		case i == s.CurrentStep:
			out[i] = StatusCurrent
		case i < len(s.Completed) && s.Completed[i]:
			out[i] = StatusComplete
		}
	}
	return out
}

// Phrases returns the current contents in display order.
func (s State) Phrases() []string {
	out := make([]string, len(s.Items))
	for i, item := range s.Items {
		out[i] = item.Content
	}
	return out
}

func normalizePhrases(raw []string) []string {
	out := make([]string, 0, MaxItems)
	for _, phrase := range raw {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			continue
		}
		if len(out) == MaxItems {
			break
		}
		out = append(out, phrase)
	}
	return out
}

func normalizeExamples(raw []string) []string {
	var out []string
	for _, example := range raw {
		example = strings.TrimSpace(example)
		if example == "" {
			continue
		}
		if len(out) == MaxExamples {
			break
		}
		out = append(out, example)
	}
	return out
}

func normalizeTags(raw []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
