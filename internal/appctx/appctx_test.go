package appctx

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"peprep/internal/exam"
	"peprep/internal/history"
	"peprep/internal/ledger"
	"peprep/internal/question"
	"peprep/internal/topics"
)

func testBank(t *testing.T, n int) *question.Bank {
	t.Helper()
	bank := question.NewBank()
	for i := 0; i < n; i++ {
		q := &question.Question{
			ID:      fmt.Sprintf("FPE-%d", i+1),
			Text:    fmt.Sprintf("Prompt %d", i+1),
			Options: []string{"a", "b", "c", "d"},
			Correct: question.NewIndexSet(i % 4),
		}
		if err := bank.Add(q); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return bank
}

func testContext(t *testing.T, n int) *Context {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.json")
	return NewWithRand(testBank(t, n), ledger.New(), path, rand.New(rand.NewSource(11)))
}

func TestStartStandardMarksAndPersists(t *testing.T) {
	c := testContext(t, 30)

	s, err := c.StartStandard(20)
	if err != nil {
		t.Fatalf("StartStandard: %v", err)
	}
	if len(s.Questions) != 20 {
		t.Fatalf("session size = %d, want 20", len(s.Questions))
	}
	if s.Stage != exam.StageActive {
		t.Errorf("stage = %v, want ACTIVE", s.Stage)
	}
	if c.Remaining() != 10 {
		t.Errorf("remaining = %d, want 10", c.Remaining())
	}
	if c.SessionMode() != "standard" {
		t.Errorf("mode = %q", c.SessionMode())
	}

	// Used marks must already be on disk.
	reloaded := ledger.New()
	if err := reloaded.Load(c.LedgerPath); err != nil {
		t.Fatalf("reload ledger: %v", err)
	}
	if reloaded.UsedCount() != 20 {
		t.Errorf("persisted used = %d, want 20", reloaded.UsedCount())
	}
}

func TestStartTargetedRequiresTopics(t *testing.T) {
	c := testContext(t, 10)
	if _, err := c.StartTargeted("hydraulics", 20); err == nil {
		t.Fatal("expected error with no topics configured")
	}

	set, err := topics.Parse([]byte("topics:\n  - name: hydraulics\n    ids: [FPE-1, FPE-2, FPE-3]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c.Topics = set

	if _, err := c.StartTargeted("electrical", 20); err == nil {
		t.Fatal("expected error for unknown topic")
	}

	s, err := c.StartTargeted("hydraulics", 20)
	if err != nil {
		t.Fatalf("StartTargeted: %v", err)
	}
	if len(s.Questions) != 3 {
		t.Errorf("session size = %d, want 3", len(s.Questions))
	}
	if c.SessionMode() != "targeted:hydraulics" {
		t.Errorf("mode = %q", c.SessionMode())
	}
}

func TestSubmitSessionGradesAndRecords(t *testing.T) {
	c := testContext(t, 5)
	hs, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer hs.Close()
	c.History = hs

	s, err := c.StartStandard(5)
	if err != nil {
		t.Fatalf("StartStandard: %v", err)
	}

	// Answer every question with its correct set except the first.
	for i, q := range s.Questions {
		if i == 0 {
			q.Selections = question.NewIndexSet((q.Correct.Sorted()[0] + 1) % 4)
			continue
		}
		q.Selections = question.NewIndexSet(q.Correct.Sorted()...)
	}
	s.BeginReview()

	res, err := c.SubmitSession()
	if err != nil {
		t.Fatalf("SubmitSession: %v", err)
	}
	if res.Correct != 4 || res.Total != 5 {
		t.Errorf("result = %d/%d, want 4/5", res.Correct, res.Total)
	}
	if len(c.MissedQuestions()) != 1 {
		t.Errorf("missed = %d, want 1", len(c.MissedQuestions()))
	}

	sessions, correct, answered, err := hs.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if sessions != 1 || correct != 4 || answered != 5 {
		t.Errorf("history totals = %d/%d/%d", sessions, correct, answered)
	}

	// Graded counters must be persisted.
	reloaded := ledger.New()
	if err := reloaded.Load(c.LedgerPath); err != nil {
		t.Fatalf("reload ledger: %v", err)
	}
	if reloaded.Correct != 4 || reloaded.Answered != 5 {
		t.Errorf("persisted counters = %d/%d", reloaded.Correct, reloaded.Answered)
	}

	c.DiscardSession()
	if c.Session != nil {
		t.Error("session still attached after discard")
	}
	if _, err := c.SubmitSession(); err != ErrNoSession {
		t.Errorf("SubmitSession after discard = %v, want ErrNoSession", err)
	}
}

func TestSaveLedgerSkippedWithoutPath(t *testing.T) {
	c := NewWithRand(testBank(t, 3), ledger.New(), "", rand.New(rand.NewSource(1)))
	if _, err := c.StartStandard(3); err != nil {
		t.Fatalf("StartStandard: %v", err)
	}
	if _, err := os.Stat("ledger.json"); err == nil {
		t.Error("ledger written despite empty path")
	}
}
