package exam

import (
	"fmt"
	"testing"

	"peprep/internal/ledger"
	"peprep/internal/question"
)

func testQuestions(t *testing.T, n int) []*question.Question {
	t.Helper()
	qs := make([]*question.Question, 0, n)
	for i := 0; i < n; i++ {
		q := &question.Question{
			ID:      fmt.Sprintf("q%d", i),
			Text:    fmt.Sprintf("question %d", i),
			Options: []string{"w", "x", "y", "z"},
			Correct: question.NewIndexSet(0),
		}
		q.ResetResponse()
		qs = append(qs, q)
	}
	return qs
}

func TestStartOpensActive(t *testing.T) {
	s := Start(testQuestions(t, 3))
	if s.Stage != StageActive {
		t.Fatalf("stage = %s, want ACTIVE", s.Stage)
	}
	if s.Current != 0 {
		t.Fatalf("cursor = %d, want 0", s.Current)
	}
	if s.ID == "" {
		t.Fatal("session id empty")
	}
}

func TestNavigationBounds(t *testing.T) {
	s := Start(testQuestions(t, 3))

	if s.Prev() {
		t.Error("Prev at first question should refuse")
	}
	if !s.Next() || !s.Next() {
		t.Fatal("Next should advance twice")
	}
	if s.Next() {
		t.Error("Next at last question should refuse")
	}
	if s.Current != 2 {
		t.Errorf("cursor = %d, want 2", s.Current)
	}
}

func TestSelectSingleReplaces(t *testing.T) {
	s := Start(testQuestions(t, 1))
	s.Select(1)
	s.Select(3)

	q := s.CurrentQuestion()
	if !q.Selections.Equal(question.NewIndexSet(3)) {
		t.Errorf("selections = %v, want {3}", q.Selections)
	}
}

func TestSelectMultiToggles(t *testing.T) {
	qs := testQuestions(t, 1)
	qs[0].Correct = question.NewIndexSet(0, 2)
	s := Start(qs)

	s.Select(1)
	s.Select(2)
	if !s.CurrentQuestion().Selections.Equal(question.NewIndexSet(1, 2)) {
		t.Fatalf("selections = %v, want {1,2}", s.CurrentQuestion().Selections)
	}
	s.Select(1) // toggle off
	if !s.CurrentQuestion().Selections.Equal(question.NewIndexSet(2)) {
		t.Fatalf("selections = %v, want {2}", s.CurrentQuestion().Selections)
	}
}

func TestToggleFlag(t *testing.T) {
	s := Start(testQuestions(t, 1))
	s.ToggleFlag()
	if !s.Questions[0].Flagged {
		t.Error("flag should be set")
	}
	s.ToggleFlag()
	if s.Questions[0].Flagged {
		t.Error("flag should be cleared")
	}
}

func TestReviewJumpResumesActive(t *testing.T) {
	s := Start(testQuestions(t, 5))
	s.BeginReview()
	if s.Stage != StageReview {
		t.Fatalf("stage = %s, want REVIEW", s.Stage)
	}

	if err := s.Jump(3); err != nil {
		t.Fatalf("Jump: %v", err)
	}
	if s.Stage != StageActive || s.Current != 3 {
		t.Errorf("after jump: stage=%s cursor=%d, want ACTIVE/3", s.Stage, s.Current)
	}

	if err := s.Jump(99); err == nil {
		t.Error("out-of-range jump should fail")
	}
}

func TestStatuses(t *testing.T) {
	s := Start(testQuestions(t, 3))
	s.Select(0)    // q0 answered
	s.Next()
	s.ToggleFlag() // q1 flagged
	s.Select(2)    // q1 answered too; flag wins

	got := s.Statuses()
	want := []Status{StatusAnswered, StatusFlagged, StatusUnanswered}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubmitGradesExactMatch(t *testing.T) {
	qs := testQuestions(t, 3)
	qs[1].Correct = question.NewIndexSet(1, 2) // multi-select
	s := Start(qs)
	led := ledger.New()

	s.Select(0)  // q0 correct
	s.Next()
	s.Select(1)  // q1 partial: no credit
	s.Next()
	s.Select(3)  // q2 wrong
	s.BeginReview()

	res, err := s.Submit(led)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Correct != 1 || res.Total != 3 {
		t.Errorf("result = %d/%d, want 1/3", res.Correct, res.Total)
	}
	if len(res.Missed) != 2 {
		t.Errorf("missed = %d, want 2", len(res.Missed))
	}
	if s.Stage != StageReport {
		t.Errorf("stage = %s, want REPORT", s.Stage)
	}

	if !led.IsWrong("q1") || !led.IsWrong("q2") {
		t.Error("missed ids should join wrong_ids")
	}
	if led.IsWrong("q0") {
		t.Error("correct id must not join wrong_ids")
	}
	if led.Correct != 1 || led.Answered != 3 {
		t.Errorf("ledger counters = %d/%d, want 1/3", led.Correct, led.Answered)
	}
}

func TestSubmitOnlyFromReview(t *testing.T) {
	s := Start(testQuestions(t, 1))
	if _, err := s.Submit(ledger.New()); err == nil {
		t.Error("submit from ACTIVE should fail")
	}
}

func TestLedgerAccumulatesAcrossSessions(t *testing.T) {
	led := ledger.New()

	for i := 0; i < 2; i++ {
		s := Start(testQuestions(t, 2))
		s.Select(0)
		s.BeginReview()
		if _, err := s.Submit(led); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	if led.Answered != 4 || led.Correct != 2 {
		t.Errorf("counters = %d/%d, want 2/4 after two sessions", led.Correct, led.Answered)
	}
}

func TestResultPercent(t *testing.T) {
	r := &Result{Correct: 15, Total: 20}
	if r.Percent() != 75 {
		t.Errorf("Percent() = %v, want 75", r.Percent())
	}
	empty := &Result{}
	if empty.Percent() != 0 {
		t.Errorf("empty Percent() = %v, want 0", empty.Percent())
	}
}
