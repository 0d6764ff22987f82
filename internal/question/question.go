package question

import (
	"fmt"
	"sort"
	"strings"
)

// Question is a single multiple-choice exam question. Text, Options and
// Correct are fixed at load/generation time; only the response state
// (Selections, Flagged) changes during a session.
type Question struct {
	// ID is the stable identity of the question, unique within a bank.
	ID string

	// Text is the prompt shown to the candidate.
	Text string

	// Options holds the answer choices in display order (2 to 26 entries,
	// lettered A onward).
	Options []string

	// Correct is the set of option indices that are correct. More than one
	// entry means the question is multi-select.
	Correct IndexSet

	// Domain is the topic label, e.g. "Hydraulics". Only procedurally
	// generated questions are guaranteed to carry one.
	Domain string

	// Selections is the candidate's current answer for the active session.
	Selections IndexSet

	// Flagged marks the question for later review within the session.
	Flagged bool
}

// IndexSet is a set of option indices.
type IndexSet map[int]bool

// NewIndexSet builds a set from the given indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = true
	}
	return s
}

// Equal reports whether both sets contain exactly the same indices.
func (s IndexSet) Equal(other IndexSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !other[i] {
			return false
		}
	}
	return true
}

// Sorted returns the member indices in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// MultiSelect reports whether the question expects more than one answer.
func (q *Question) MultiSelect() bool {
	return len(q.Correct) > 1
}

// IsAnswered reports whether the candidate has selected at least one option.
func (q *Question) IsAnswered() bool {
	return len(q.Selections) > 0
}

// IsCorrect reports whether the selections exactly match the correct set.
// Partial matches on multi-select questions do not count.
func (q *Question) IsCorrect() bool {
	return q.Selections.Equal(q.Correct)
}

// ResetResponse clears the candidate's selections and flag. Called when the
// question is placed into a new session.
func (q *Question) ResetResponse() {
	q.Selections = make(IndexSet)
	q.Flagged = false
}

// Letter returns the display letter for an option index (0 → "A").
// Indices beyond "Z" render as "?"; banks never exceed 26 options.
func Letter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// CorrectLetters returns the correct options as comma-joined letters in
// alphabetical order, e.g. "A, C".
func (q *Question) CorrectLetters() string {
	letters := make([]string, 0, len(q.Correct))
	for _, i := range q.Correct.Sorted() {
		letters = append(letters, Letter(i))
	}
	return strings.Join(letters, ", ")
}

// SelectedLetters returns the candidate's selections as comma-joined letters.
func (q *Question) SelectedLetters() string {
	letters := make([]string, 0, len(q.Selections))
	for _, i := range q.Selections.Sorted() {
		letters = append(letters, Letter(i))
	}
	return strings.Join(letters, ", ")
}

// Validate checks the structural invariants of a question record.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has empty id")
	}
	if len(q.Options) < 2 || len(q.Options) > 26 {
		return fmt.Errorf("question %s: option count %d outside 2..26", q.ID, len(q.Options))
	}
	if len(q.Correct) == 0 {
		return fmt.Errorf("question %s: no correct option marked", q.ID)
	}
	for i := range q.Correct {
		if i < 0 || i >= len(q.Options) {
			return fmt.Errorf("question %s: correct index %d out of range", q.ID, i)
		}
	}
	return nil
}
