// Package ledger tracks cumulative exam progress across sessions: which
// question ids have ever been placed into a session, which were ever
// missed, and running answer counters.
package ledger

import "sort"

// Ledger is the durable progress record. Held in memory between explicit
// Load/Save calls; there is no automatic checkpointing.
type Ledger struct {
	used  map[string]bool
	wrong map[string]bool

	// Correct and Answered accumulate across every submitted session.
	Correct  int
	Answered int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		used:  make(map[string]bool),
		wrong: make(map[string]bool),
	}
}

// MarkUsed records that a question id was placed into a session. Marking
// happens at sampling time, so an abandoned session still consumes the id.
func (l *Ledger) MarkUsed(id string) {
	l.used[id] = true
}

// IsUsed reports whether the id has ever been placed into a session.
func (l *Ledger) IsUsed(id string) bool {
	return l.used[id]
}

// UsedCount returns the number of distinct used ids.
func (l *Ledger) UsedCount() int {
	return len(l.used)
}

// RecordResult folds one graded answer into the counters. A miss adds the
// id to the wrong set permanently: a later correct answer never removes it,
// which is what makes the set usable as a weak-area tracker. Only Reset
// clears it.
func (l *Ledger) RecordResult(id string, correct bool) {
	l.Answered++
	if correct {
		l.Correct++
	} else {
		l.wrong[id] = true
	}
}

// IsWrong reports whether the id was ever answered incorrectly.
func (l *Ledger) IsWrong(id string) bool {
	return l.wrong[id]
}

// WrongIDs returns the ever-missed ids in sorted order.
func (l *Ledger) WrongIDs() []string {
	return sortedKeys(l.wrong)
}

// UsedIDs returns the used ids in sorted order.
func (l *Ledger) UsedIDs() []string {
	return sortedKeys(l.used)
}

// Accuracy returns the cumulative fraction of correct answers, or 0 when
// nothing has been answered.
func (l *Ledger) Accuracy() float64 {
	if l.Answered == 0 {
		return 0
	}
	return float64(l.Correct) / float64(l.Answered)
}

// Reset clears all progress: used and wrong sets and both counters.
func (l *Ledger) Reset() {
	l.used = make(map[string]bool)
	l.wrong = make(map[string]bool)
	l.Correct = 0
	l.Answered = 0
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
