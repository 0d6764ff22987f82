// Package sampler selects the working subset of the bank for one practice
// session. Both policies mark the chosen ids as used and reset their
// response state before the session starts, so the Standard pool shrinks on
// exposure, not on completion.
package sampler

import (
	"errors"
	"math/rand"

	"peprep/internal/ledger"
	"peprep/internal/question"
)

// DefaultSessionSize caps a session at 20 questions.
const DefaultSessionSize = 20

// ErrPoolExhausted signals that every bank question has already been used.
// The ledger must be reset before Standard sampling can resume.
var ErrPoolExhausted = errors.New("question pool exhausted: reset progress to continue")

// ErrEmptyTopic signals that a targeted topic list matched no bank question.
var ErrEmptyTopic = errors.New("no bank questions match the topic list")

// Standard draws up to k unseen questions uniformly without replacement.
// k is clamped to DefaultSessionSize. Fewer than k eligible questions
// yields a partial block; zero yields ErrPoolExhausted.
func Standard(rng *rand.Rand, bank *question.Bank, led *ledger.Ledger, k int) ([]*question.Question, error) {
	var eligible []*question.Question
	for _, q := range bank.All() {
		if !led.IsUsed(q.ID) {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrPoolExhausted
	}
	return take(rng, eligible, k, led), nil
}

// Targeted draws up to k questions whose ids appear in the topic list,
// regardless of whether they were used before. Drill sessions revisit weak
// areas, so prior exposure does not exclude them.
func Targeted(rng *rand.Rand, bank *question.Bank, led *ledger.Ledger, ids []string, k int) ([]*question.Question, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var eligible []*question.Question
	for _, q := range bank.All() {
		if want[q.ID] {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrEmptyTopic
	}
	return take(rng, eligible, k, led), nil
}

// take shuffles the eligible pool, keeps at most k, marks each chosen id
// used, and resets each question's response state. A session never exceeds
// DefaultSessionSize, whatever the caller asks for.
func take(rng *rand.Rand, eligible []*question.Question, k int, led *ledger.Ledger) []*question.Question {
	if k < 1 || k > DefaultSessionSize {
		k = DefaultSessionSize
	}
	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > k {
		eligible = eligible[:k]
	}
	for _, q := range eligible {
		led.MarkUsed(q.ID)
		q.ResetResponse()
	}
	return eligible
}
