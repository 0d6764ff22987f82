package generate

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"peprep/internal/distractor"
	"peprep/internal/question"
)

// OptionCount is the number of options on a generated question: the correct
// answer plus three distractors.
const OptionCount = 1 + distractor.Count

// Generated is a fully assembled procedural question: shuffled options with
// the correct position recorded.
type Generated struct {
	Seq          int // 1-based position within the generated set
	Domain       string
	Prompt       string
	Unit         string
	Answer       float64
	Options      []float64 // length OptionCount, shuffled
	CorrectIndex int       // index into Options holding Answer
}

// Generator assembles procedural questions from the archetype family.
type Generator struct {
	rng      *rand.Rand
	variance float64
}

// New creates a Generator with a time-seeded source and the default
// distractor variance.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a Generator using the given source. Tests seed it for
// reproducible sets.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, variance: distractor.DefaultVariance}
}

// One generates a single question from a uniformly chosen archetype.
func (g *Generator) One() (*Generated, error) {
	draft := archetypes[g.rng.Intn(len(archetypes))](g.rng)

	wrong, err := distractor.Generate(g.rng, draft.Answer, false, g.variance)
	if err != nil {
		return nil, fmt.Errorf("generate %s question: %w", draft.Domain, err)
	}

	options := append(wrong, draft.Answer)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := -1
	for i, v := range options {
		if v == draft.Answer {
			correctIndex = i
			break
		}
	}

	return &Generated{
		Domain:       draft.Domain,
		Prompt:       draft.Prompt,
		Unit:         draft.Unit,
		Answer:       draft.Answer,
		Options:      options,
		CorrectIndex: correctIndex,
	}, nil
}

// Set generates n questions, numbering them 1..n.
func (g *Generator) Set(n int) ([]*Generated, error) {
	set := make([]*Generated, 0, n)
	for i := 1; i <= n; i++ {
		q, err := g.One()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		q.Seq = i
		set = append(set, q)
	}
	return set, nil
}

// CorrectLetter returns the letter (A-D) of the correct option.
func (q *Generated) CorrectLetter() string {
	return question.Letter(q.CorrectIndex)
}

// Explanation renders the fixed explanation template.
func (q *Generated) Explanation() string {
	return fmt.Sprintf("Correct Answer: %s %s. Derived using standard engineering formulas for %s.",
		formatValue(q.Answer), q.Unit, q.Domain)
}

// OptionStrings renders the options as "<value> <unit>" display strings.
func (q *Generated) OptionStrings() []string {
	out := make([]string, len(q.Options))
	for i, v := range q.Options {
		out[i] = fmt.Sprintf("%s %s", formatValue(v), q.Unit)
	}
	return out
}

// Question converts the generated record into a bank question. Generated
// ids carry a "gen-" prefix so they never collide with imported ids.
func (q *Generated) Question() *question.Question {
	bq := &question.Question{
		ID:      "gen-" + uuid.NewString()[:8],
		Text:    q.Prompt,
		Options: q.OptionStrings(),
		Correct: question.NewIndexSet(q.CorrectIndex),
		Domain:  q.Domain,
	}
	bq.ResetResponse()
	return bq
}

// formatValue renders a rounded value without trailing zeros, matching the
// precision the archetypes round to.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
