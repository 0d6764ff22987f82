package question

import (
	"strings"
	"testing"
)

func newTestQuestion(correct ...int) *Question {
	q := &Question{
		ID:      "q1",
		Text:    "Pick the right ones",
		Options: []string{"alpha", "beta", "gamma", "delta"},
		Correct: NewIndexSet(correct...),
	}
	q.ResetResponse()
	return q
}

func TestIsCorrectExactMatch(t *testing.T) {
	q := newTestQuestion(1, 2)

	q.Selections = NewIndexSet(1)
	if q.IsCorrect() {
		t.Error("partial selection should not be correct")
	}

	q.Selections = NewIndexSet(1, 2)
	if !q.IsCorrect() {
		t.Error("exact selection should be correct")
	}

	q.Selections = NewIndexSet(1, 2, 3)
	if q.IsCorrect() {
		t.Error("superset selection should not be correct")
	}
}

func TestIsAnswered(t *testing.T) {
	q := newTestQuestion(0)
	if q.IsAnswered() {
		t.Error("fresh question should be unanswered")
	}
	q.Selections = NewIndexSet(2)
	if !q.IsAnswered() {
		t.Error("question with a selection should be answered")
	}
}

func TestResetResponse(t *testing.T) {
	q := newTestQuestion(0)
	q.Selections = NewIndexSet(0, 1)
	q.Flagged = true

	q.ResetResponse()
	if q.IsAnswered() || q.Flagged {
		t.Errorf("reset left state: selections=%v flagged=%v", q.Selections, q.Flagged)
	}
}

func TestCorrectLetters(t *testing.T) {
	q := newTestQuestion(2, 0)
	if got := q.CorrectLetters(); got != "A, C" {
		t.Errorf("CorrectLetters() = %q, want %q", got, "A, C")
	}
}

func TestLetterBounds(t *testing.T) {
	if Letter(0) != "A" || Letter(25) != "Z" {
		t.Error("letter mapping broken at bounds")
	}
	if Letter(26) != "?" || Letter(-1) != "?" {
		t.Error("out-of-range index should render as ?")
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		text   string
		wantID string
		wantOK bool
	}{
		{"What is the friction loss? (FPE-101)", "FPE-101", true},
		{"What is the friction loss? (FPE-101)  ", "FPE-101", true},
		{"No token here", "", false},
		{"Parens (in the middle) of text", "", false},
		{"Underscore token (q_17)", "q_17", true},
	}
	for _, tt := range tests {
		id, ok := ExtractID(tt.text)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("ExtractID(%q) = %q, %v; want %q, %v", tt.text, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestSynthesizeIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := SynthesizeID(7)
		if seen[id] {
			t.Fatalf("duplicate synthesized id %q", id)
		}
		seen[id] = true
		if !strings.HasPrefix(id, "row7-") {
			t.Fatalf("synthesized id %q missing row prefix", id)
		}
	}
}

func TestBankAppendOnly(t *testing.T) {
	b := NewBank()
	if err := b.Add(newTestQuestion(0)); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Duplicate id rejected.
	if err := b.Add(newTestQuestion(1)); err == nil {
		t.Error("expected duplicate id error")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}

	q, ok := b.Get("q1")
	if !ok || q.Text == "" {
		t.Error("Get should return the stored question")
	}
}

func TestBankRejectsInvalid(t *testing.T) {
	b := NewBank()
	bad := &Question{ID: "x", Text: "t", Options: []string{"only one"}, Correct: NewIndexSet(0)}
	if err := b.Add(bad); err == nil {
		t.Error("expected validation error for single-option question")
	}
	bad2 := &Question{ID: "y", Text: "t", Options: []string{"a", "b"}, Correct: NewIndexSet()}
	if err := b.Add(bad2); err == nil {
		t.Error("expected validation error for question without correct option")
	}
}
