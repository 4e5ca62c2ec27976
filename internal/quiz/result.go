package quiz

import (
	"github.com/google/uuid"
)

// ListItem is one expression offered for reclassification.
type ListItem struct {
	ExpressionID uuid.UUID `json:"expression_id"`
	Label        string    `json:"label"`
	Selected     bool      `json:"selected"`
}

// ListGroup is one reclassification list with its select-all control.
type ListGroup struct {
	SelectAll bool       `json:"select_all"`
	Items     []ListItem `json:"items"`
}

// ResultLists splits the quiz outcome into the memorised-list candidates
// (correct) and the review-list candidates (wrong or omitted). The two
// groups are independent; toggling one never affects the other.
type ResultLists struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Learned ListGroup `json:"learned"`
	Review  ListGroup `json:"review"`
}

// BuildResultLists places each answered expression into exactly one group,
// everything selected by default. labels supplies the display text per
// expression (typically the phrases joined for the list view).
func BuildResultLists(s State, labels map[uuid.UUID]string) ResultLists {
	out := ResultLists{
		Correct: s.CorrectCount(),
		Total:   len(s.Questions),
	}
	for i, q := range s.Questions {
		if i >= len(s.Answers) {
			break
		}
		item := ListItem{
			ExpressionID: q.ExpressionID,
			Label:        labels[q.ExpressionID],
			Selected:     true,
		}
		if s.Answers[i].Result == ResultCorrect {
			out.Learned.Items = append(out.Learned.Items, item)
		} else {
			out.Review.Items = append(out.Review.Items, item)
		}
	}
	out.Learned.SelectAll = len(out.Learned.Items) > 0
	out.Review.SelectAll = len(out.Review.Items) > 0
	return out
}

// ToggleAll sets every child to the group state.
func (g *ListGroup) ToggleAll(on bool) {
	g.SelectAll = on && len(g.Items) > 0
	for i := range g.Items {
		g.Items[i].Selected = on
	}
}

// ToggleItem flips one child. Deselecting any child clears the group's
// select-all; selecting the last unselected child restores it.
func (g *ListGroup) ToggleItem(expressionID uuid.UUID, on bool) {
	for i := range g.Items {
		if g.Items[i].ExpressionID == expressionID {
			g.Items[i].Selected = on
			break
		}
	}
	all := len(g.Items) > 0
	for _, item := range g.Items {
		if !item.Selected {
			all = false
			break
		}
	}
	g.SelectAll = all
}

// SelectedIDs lists the expressions still checked in the group.
func (g ListGroup) SelectedIDs() []uuid.UUID {
	var out []uuid.UUID
	for _, item := range g.Items {
		if item.Selected {
			out = append(out, item.ExpressionID)
		}
	}
	return out
}
