package answer

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/wabot/models"
)

type Status int

const (
	// StatusFailed means the API reported an error.
	StatusFailed Status = iota
	// StatusUnresolved means there was no error, but no answer either, e.g.
	// the API needs clarification.
	StatusUnresolved
	StatusSucceeded
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusUnresolved:
		return "unresolved"
	case StatusSucceeded:
		return "succeeded"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Section is a titled part of an answer, ordered by Position.
type Section struct {
	Position  int
	Title     string
	Fragments []string
}

type Answer struct {
	Status Status
	// Errors are "<code> - <msg>" pairs, populated when Status is StatusFailed.
	Errors []string
	// Suggestions are populated when Status is StatusUnresolved.
	Suggestions []string
	// Sections are populated when Status is StatusSucceeded, in ascending
	// position order.
	Sections []Section
	// TitlesWithText is the number of distinct pod titles that collected at
	// least one fragment. A title can have text even if a later pod at the
	// same position took its section.
	TitlesWithText int
}

// Empty returns true if no pod title collected any text.
func (a Answer) Empty() bool {
	return a.TitlesWithText == 0
}

// Parse converts a query result document into an Answer.
func Parse(doc models.QueryResult) (a Answer, err error) {
	success, err := strconv.ParseBool(doc.Success)
	if err != nil {
		return a, fmt.Errorf("answer: invalid success attribute %q: %w", doc.Success, err)
	}
	failed, err := strconv.ParseBool(doc.Error)
	if err != nil {
		return a, fmt.Errorf("answer: invalid error attribute %q: %w", doc.Error, err)
	}
	switch {
	case success:
		a.Status = StatusSucceeded
		a.Sections, a.TitlesWithText = sections(doc.Pods)
	case failed:
		a.Status = StatusFailed
		for _, e := range doc.Errors {
			a.Errors = append(a.Errors, fmt.Sprintf("%s - %s", strings.TrimSpace(e.Code), strings.TrimSpace(e.Msg)))
		}
	default:
		a.Status = StatusUnresolved
		a.Suggestions = suggestions(doc)
	}
	return a, nil
}

func suggestions(doc models.QueryResult) (s []string) {
	for _, ft := range doc.FutureTopics {
		s = append(s, "FUTURE TOPIC: "+ft.Msg)
	}
	for _, dym := range doc.DidYouMeans {
		for _, text := range dym.DidYouMean {
			s = append(s, "Did you mean? "+text)
		}
	}
	for _, tips := range doc.Tips {
		for _, tip := range tips.Tip {
			s = append(s, "TIPS: "+tip.Text)
		}
	}
	return s
}

func sections(pods []models.Pod) (result []Section, titlesWithText int) {
	// A title can appear in more than one pod, its fragments accumulate.
	fragmentsByTitle := make(map[string][]string)
	titleByPosition := make(map[int]string)
	for _, pod := range pods {
		titleByPosition[pod.Position] = pod.Title
		for _, text := range pod.Plaintext {
			if text == "" {
				continue
			}
			fragmentsByTitle[pod.Title] = append(fragmentsByTitle[pod.Title], strings.ReplaceAll(text, "\n", " "))
		}
	}
	positions := make([]int, 0, len(titleByPosition))
	for p := range titleByPosition {
		positions = append(positions, p)
	}
	slices.Sort(positions)

	result = make([]Section, len(positions))
	for i, p := range positions {
		title := titleByPosition[p]
		result[i] = Section{
			Position:  p,
			Title:     title,
			Fragments: fragmentsByTitle[title],
		}
	}
	return result, len(fragmentsByTitle)
}
