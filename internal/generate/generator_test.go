package generate

import (
	"math/rand"
	"strings"
	"testing"
)

func testGenerator() *Generator {
	return NewWithRand(rand.New(rand.NewSource(7)))
}

func TestOneInvariants(t *testing.T) {
	g := testGenerator()
	for i := 0; i < 300; i++ {
		q, err := g.One()
		if err != nil {
			t.Fatalf("One(): %v", err)
		}
		if len(q.Options) != OptionCount {
			t.Fatalf("option count = %d, want %d", len(q.Options), OptionCount)
		}

		matches := 0
		seen := make(map[float64]bool)
		for _, v := range q.Options {
			if v == q.Answer {
				matches++
			}
			if seen[v] {
				t.Errorf("duplicate option %v in %q", v, q.Prompt)
			}
			seen[v] = true
			if v <= 0 {
				t.Errorf("non-positive option %v in %q", v, q.Prompt)
			}
		}
		if matches != 1 {
			t.Errorf("options match answer %v %d times, want exactly 1", q.Answer, matches)
		}
		if q.Options[q.CorrectIndex] != q.Answer {
			t.Errorf("CorrectIndex %d does not hold the answer", q.CorrectIndex)
		}
		if q.Domain == "" || q.Unit == "" || q.Prompt == "" {
			t.Errorf("incomplete draft: %+v", q)
		}
	}
}

// TestCorrectPositionUniform verifies the correct answer lands in each of
// the four slots at the expected rate. Chi-square with 3 degrees of
// freedom; 16.27 is the 99.9% critical value.
func TestCorrectPositionUniform(t *testing.T) {
	g := testGenerator()
	const n = 4000

	counts := make([]int, OptionCount)
	for i := 0; i < n; i++ {
		q, err := g.One()
		if err != nil {
			t.Fatalf("One(): %v", err)
		}
		counts[q.CorrectIndex]++
	}

	expected := float64(n) / OptionCount
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	if chi > 16.27 {
		t.Errorf("correct-position distribution not uniform: counts=%v chi-square=%.2f", counts, chi)
	}
}

func TestSetNumbering(t *testing.T) {
	g := testGenerator()
	set, err := g.Set(25)
	if err != nil {
		t.Fatalf("Set(25): %v", err)
	}
	if len(set) != 25 {
		t.Fatalf("len = %d, want 25", len(set))
	}
	for i, q := range set {
		if q.Seq != i+1 {
			t.Errorf("set[%d].Seq = %d, want %d", i, q.Seq, i+1)
		}
	}
}

func TestPromptSelfContained(t *testing.T) {
	// Each archetype prompt must embed its parameters; spot-check the units
	// and formula anchors that every instance carries.
	g := testGenerator()
	anchors := map[string]string{
		"Hydraulics":    "C-factor",
		"Egress":        "occupant load factor",
		"Smoke Control": "Qc^(1/3)",
		"Fire Alarm":    "2-wire circuit",
	}
	seen := make(map[string]bool)
	for i := 0; i < 200 && len(seen) < len(anchors); i++ {
		q, err := g.One()
		if err != nil {
			t.Fatalf("One(): %v", err)
		}
		anchor, ok := anchors[q.Domain]
		if !ok {
			t.Fatalf("unknown domain %q", q.Domain)
		}
		if !strings.Contains(q.Prompt, anchor) {
			t.Errorf("%s prompt missing %q: %q", q.Domain, anchor, q.Prompt)
		}
		seen[q.Domain] = true
	}
	if len(seen) < len(anchors) {
		t.Errorf("only saw domains %v in 200 draws", seen)
	}
}

func TestExplanationTemplate(t *testing.T) {
	g := testGenerator()
	q, err := g.One()
	if err != nil {
		t.Fatalf("One(): %v", err)
	}
	want := "Derived using standard engineering formulas for " + q.Domain + "."
	if !strings.HasSuffix(q.Explanation(), want) {
		t.Errorf("Explanation() = %q, want suffix %q", q.Explanation(), want)
	}
	if !strings.HasPrefix(q.Explanation(), "Correct Answer: ") {
		t.Errorf("Explanation() = %q, want Correct Answer prefix", q.Explanation())
	}
}

func TestQuestionConversion(t *testing.T) {
	g := testGenerator()
	gen, err := g.One()
	if err != nil {
		t.Fatalf("One(): %v", err)
	}
	q := gen.Question()
	if err := q.Validate(); err != nil {
		t.Fatalf("converted question invalid: %v", err)
	}
	if !strings.HasPrefix(q.ID, "gen-") {
		t.Errorf("id %q missing gen- prefix", q.ID)
	}
	if q.MultiSelect() {
		t.Error("generated questions are single-select")
	}
	if !strings.HasSuffix(q.Options[gen.CorrectIndex], gen.Unit) {
		t.Errorf("option %q missing unit %q", q.Options[gen.CorrectIndex], gen.Unit)
	}
}
