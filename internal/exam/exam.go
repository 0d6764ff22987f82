// Package exam is the session state machine: one timed practice run over a
// sampled set of questions. Operations are plain command handlers over the
// Session struct; the boundary layer (TUI or CLI) decides when to redraw.
package exam

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"peprep/internal/ledger"
	"peprep/internal/question"
)

// Stage is the lifecycle phase of a session.
type Stage int

const (
	StageSetup  Stage = iota // no active session
	StageActive              // answering one question at the cursor
	StageReview              // read-only status grid, pre-submission
	StageReport              // graded results, terminal until reset
)

func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "SETUP"
	case StageActive:
		return "ACTIVE"
	case StageReview:
		return "REVIEW"
	case StageReport:
		return "REPORT"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Status summarizes one question for the review grid.
type Status int

const (
	StatusUnanswered Status = iota
	StatusAnswered
	StatusFlagged // flag wins over answered in the grid
)

// Session is one practice run. Not persisted; discarded on reset. The
// ledger mutations it triggers (used marks at sampling, grades at submit)
// outlive it.
type Session struct {
	ID        string
	Questions []*question.Question
	Current   int
	Stage     Stage
	StartedAt time.Time

	// Result is set once by Submit; nil before the report stage.
	Result *Result
}

// Result is the graded outcome of a submitted session.
type Result struct {
	Correct int
	Total   int
	Missed  []*question.Question
}

// Percent returns the score as a percentage.
func (r *Result) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}

// Start opens a session over an already-sampled question set. The sampler
// has reset each question's response state and marked its id used.
func Start(questions []*question.Question) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Questions: questions,
		Stage:     StageActive,
		StartedAt: time.Now(),
	}
}

// CurrentQuestion returns the question at the cursor, or nil outside ACTIVE.
func (s *Session) CurrentQuestion() *question.Question {
	if s.Stage != StageActive || s.Current < 0 || s.Current >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.Current]
}

// Next advances the cursor. No wraparound; returns false at the last
// question.
func (s *Session) Next() bool {
	if s.Stage != StageActive || s.Current >= len(s.Questions)-1 {
		return false
	}
	s.Current++
	return true
}

// Prev moves the cursor back. No wraparound; returns false at the first
// question.
func (s *Session) Prev() bool {
	if s.Stage != StageActive || s.Current <= 0 {
		return false
	}
	s.Current--
	return true
}

// ToggleFlag flips the flag on the current question.
func (s *Session) ToggleFlag() {
	if q := s.CurrentQuestion(); q != nil {
		q.Flagged = !q.Flagged
	}
}

// Select records an answer choice on the current question. Single-select
// questions replace the whole selection; multi-select questions toggle the
// individual index.
func (s *Session) Select(idx int) {
	q := s.CurrentQuestion()
	if q == nil || idx < 0 || idx >= len(q.Options) {
		return
	}
	if q.MultiSelect() {
		if q.Selections[idx] {
			delete(q.Selections, idx)
		} else {
			q.Selections[idx] = true
		}
		return
	}
	q.Selections = question.NewIndexSet(idx)
}

// BeginReview moves from ACTIVE to the review grid.
func (s *Session) BeginReview() {
	if s.Stage == StageActive {
		s.Stage = StageReview
	}
}

// Jump re-enters ACTIVE at the given question index. Valid from REVIEW
// (grid navigation) and from ACTIVE itself.
func (s *Session) Jump(idx int) error {
	if s.Stage != StageActive && s.Stage != StageReview {
		return fmt.Errorf("cannot jump in stage %s", s.Stage)
	}
	if idx < 0 || idx >= len(s.Questions) {
		return fmt.Errorf("question index %d out of range", idx)
	}
	s.Current = idx
	s.Stage = StageActive
	return nil
}

// Statuses returns the review-grid status of every session question.
func (s *Session) Statuses() []Status {
	out := make([]Status, len(s.Questions))
	for i, q := range s.Questions {
		switch {
		case q.Flagged:
			out[i] = StatusFlagged
		case q.IsAnswered():
			out[i] = StatusAnswered
		default:
			out[i] = StatusUnanswered
		}
	}
	return out
}

// AnsweredCount returns how many questions carry at least one selection.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if q.IsAnswered() {
			n++
		}
	}
	return n
}

// Submit grades every question exactly once and folds the outcome into the
// ledger: each miss joins wrong_ids, and the counters accumulate. Only
// valid from REVIEW. A crash before Submit loses the session's grading
// contribution; the used marks from sampling already happened.
func (s *Session) Submit(led *ledger.Ledger) (*Result, error) {
	if s.Stage != StageReview {
		return nil, fmt.Errorf("cannot submit in stage %s", s.Stage)
	}

	res := &Result{Total: len(s.Questions)}
	for _, q := range s.Questions {
		correct := q.IsCorrect()
		if correct {
			res.Correct++
		} else {
			res.Missed = append(res.Missed, q)
		}
		led.RecordResult(q.ID, correct)
	}

	s.Result = res
	s.Stage = StageReport
	return res, nil
}
