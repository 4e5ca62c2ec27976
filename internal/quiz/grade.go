package quiz

import "strings"

// Grade checks a free-text answer against the answer set. Matching is
// case-insensitive on trimmed text; a blank submission is flagged apart from
// a wrong attempt so the result view can say "no answer given".
func Grade(given string, answers []string) ResultKind {
	given = strings.TrimSpace(given)
	if given == "" {
		return ResultNoAnswer
	}
	for _, answer := range answers {
		if strings.EqualFold(given, strings.TrimSpace(answer)) {
			return ResultCorrect
		}
	}
	return ResultWrong
}
