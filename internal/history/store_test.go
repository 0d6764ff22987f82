package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSession(id string, submitted time.Time) (SessionRecord, []AttemptRecord) {
	sess := SessionRecord{
		ID:          id,
		Mode:        "standard",
		StartedAt:   submitted.Add(-30 * time.Minute),
		SubmittedAt: submitted,
		Correct:     1,
		Total:       2,
	}
	attempts := []AttemptRecord{
		{
			SessionID:      id,
			QuestionID:     "FPE-1",
			QuestionText:   "First prompt",
			Selected:       "A",
			CorrectLetters: "A",
			IsCorrect:      true,
			Position:       0,
		},
		{
			SessionID:      id,
			QuestionID:     "FPE-2",
			QuestionText:   "Second prompt",
			Selected:       "B",
			CorrectLetters: "A, C",
			IsCorrect:      false,
			Flagged:        true,
			Position:       1,
		},
	}
	return sess, attempts
}

func TestRecordAndListSessions(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"sess-a", "sess-b", "sess-c"} {
		sess, attempts := sampleSession(id, base.Add(time.Duration(i)*time.Hour))
		if err := s.RecordSession(sess, attempts); err != nil {
			t.Fatalf("RecordSession %s: %v", id, err)
		}
	}

	got, err := s.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("sessions = %d, want 3", len(got))
	}
	if got[0].ID != "sess-c" || got[2].ID != "sess-a" {
		t.Errorf("sessions not newest first: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].Mode != "standard" || got[0].Correct != 1 || got[0].Total != 2 {
		t.Errorf("session fields = %+v", got[0])
	}
	if !got[0].SubmittedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("submitted_at = %v", got[0].SubmittedAt)
	}

	limited, err := s.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited sessions = %d, want 2", len(limited))
	}
}

func TestSessionAttemptsOrderAndFields(t *testing.T) {
	s := openTestStore(t)
	sess, attempts := sampleSession("sess-a", time.Now())
	if err := s.RecordSession(sess, attempts); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	got, err := s.SessionAttempts("sess-a")
	if err != nil {
		t.Fatalf("SessionAttempts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("attempts = %d, want 2", len(got))
	}
	if got[0].QuestionID != "FPE-1" || got[1].QuestionID != "FPE-2" {
		t.Errorf("attempt order: %s, %s", got[0].QuestionID, got[1].QuestionID)
	}
	if !got[0].IsCorrect || got[1].IsCorrect {
		t.Errorf("correctness flags round-trip: %v, %v", got[0].IsCorrect, got[1].IsCorrect)
	}
	if !got[1].Flagged {
		t.Error("flagged attempt lost its flag")
	}
	if got[1].CorrectLetters != "A, C" {
		t.Errorf("correct letters = %q", got[1].CorrectLetters)
	}
}

func TestSessionMissed(t *testing.T) {
	s := openTestStore(t)
	sess, attempts := sampleSession("sess-a", time.Now())
	if err := s.RecordSession(sess, attempts); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	missed, err := s.SessionMissed("sess-a")
	if err != nil {
		t.Fatalf("SessionMissed: %v", err)
	}
	if len(missed) != 1 || missed[0].QuestionID != "FPE-2" {
		t.Errorf("missed = %+v", missed)
	}
}

func TestMissedEver(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// FPE-2 missed in both sessions with different selections; the later
	// miss must win. FPE-1 missed only in the second session.
	first := SessionRecord{ID: "sess-a", Mode: "standard", StartedAt: base.Add(-time.Hour), SubmittedAt: base, Correct: 1, Total: 2}
	if err := s.RecordSession(first, []AttemptRecord{
		{SessionID: "sess-a", QuestionID: "FPE-1", QuestionText: "First prompt", Selected: "A", CorrectLetters: "A", IsCorrect: true, Position: 0},
		{SessionID: "sess-a", QuestionID: "FPE-2", QuestionText: "Second prompt", Selected: "B", CorrectLetters: "A, C", Position: 1},
	}); err != nil {
		t.Fatalf("RecordSession sess-a: %v", err)
	}

	second := SessionRecord{ID: "sess-b", Mode: "standard", StartedAt: base, SubmittedAt: base.Add(time.Hour), Correct: 0, Total: 2}
	if err := s.RecordSession(second, []AttemptRecord{
		{SessionID: "sess-b", QuestionID: "FPE-1", QuestionText: "First prompt", Selected: "B", CorrectLetters: "A", Position: 0},
		{SessionID: "sess-b", QuestionID: "FPE-2", QuestionText: "Second prompt", Selected: "D", CorrectLetters: "A, C", Position: 1},
	}); err != nil {
		t.Fatalf("RecordSession sess-b: %v", err)
	}

	missed, err := s.MissedEver()
	if err != nil {
		t.Fatalf("MissedEver: %v", err)
	}
	if len(missed) != 2 {
		t.Fatalf("missed = %d, want 2 distinct questions", len(missed))
	}
	if missed[0].QuestionID != "FPE-1" || missed[1].QuestionID != "FPE-2" {
		t.Errorf("missed order: %s, %s", missed[0].QuestionID, missed[1].QuestionID)
	}
	for _, a := range missed {
		if a.SessionID != "sess-b" {
			t.Errorf("%s resolved from %s, want the most recent miss", a.QuestionID, a.SessionID)
		}
	}
	if missed[1].QuestionText != "Second prompt" || missed[1].CorrectLetters != "A, C" {
		t.Errorf("missed detail = %+v", missed[1])
	}
}

func TestTotals(t *testing.T) {
	s := openTestStore(t)

	sessions, correct, answered, err := s.Totals()
	if err != nil {
		t.Fatalf("Totals on empty store: %v", err)
	}
	if sessions != 0 || correct != 0 || answered != 0 {
		t.Errorf("empty totals = %d/%d/%d", sessions, correct, answered)
	}

	base := time.Now()
	for i, id := range []string{"sess-a", "sess-b"} {
		sess, attempts := sampleSession(id, base.Add(time.Duration(i)*time.Minute))
		if err := s.RecordSession(sess, attempts); err != nil {
			t.Fatalf("RecordSession: %v", err)
		}
	}

	sessions, correct, answered, err = s.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if sessions != 2 || correct != 2 || answered != 4 {
		t.Errorf("totals = %d/%d/%d, want 2/2/4", sessions, correct, answered)
	}
}

func TestDuplicateSessionRejected(t *testing.T) {
	s := openTestStore(t)
	sess, attempts := sampleSession("sess-a", time.Now())
	if err := s.RecordSession(sess, attempts); err != nil {
		t.Fatalf("first RecordSession: %v", err)
	}
	if err := s.RecordSession(sess, attempts); err == nil {
		t.Fatal("duplicate session id accepted")
	}

	// The failed transaction must not leave partial attempt rows behind.
	got, err := s.SessionAttempts("sess-a")
	if err != nil {
		t.Fatalf("SessionAttempts: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("attempts after failed insert = %d, want 2", len(got))
	}
}

func TestSessionPercent(t *testing.T) {
	if p := (SessionRecord{Correct: 3, Total: 4}).Percent(); p != 75 {
		t.Errorf("Percent = %v, want 75", p)
	}
	if p := (SessionRecord{}).Percent(); p != 0 {
		t.Errorf("zero-total Percent = %v, want 0", p)
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "history.db")
	t.Setenv("PEPREP_DB", want)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}

	// ensureDir must have created the parent.
	info, err := os.Stat(filepath.Dir(want))
	if err != nil {
		t.Fatalf("parent dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("parent path is not a directory")
	}
}
