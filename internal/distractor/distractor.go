// Package distractor produces plausible wrong answers for numeric
// engineering questions by perturbing the correct value within a
// percentage band.
package distractor

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// DefaultVariance is the percentage band used when the caller does not
// override it: factors are drawn from [0.85, 1.15].
const DefaultVariance = 0.15

// Count is the number of distractors produced per question.
const Count = 3

// maxAttempts bounds the rejection sampler. With sane inputs three accepted
// draws take a handful of attempts; hitting the cap means the input is
// degenerate (e.g. variance too small to move an integer answer).
const maxAttempts = 1000

// ErrDegenerateInput is returned when no valid distractor can be produced
// for the given correct value and variance.
var ErrDegenerateInput = errors.New("distractor: degenerate input")

// Generate returns Count distinct values, each positive and different from
// correct. integer selects the rounding rule: truncation for integer-valued
// answers, two-decimal rounding otherwise, so distractors format like the
// real answer. rng may not be nil.
func Generate(rng *rand.Rand, correct float64, integer bool, variance float64) ([]float64, error) {
	if correct <= 0 {
		return nil, fmt.Errorf("%w: correct value %v is not positive", ErrDegenerateInput, correct)
	}
	if variance <= 0 {
		return nil, fmt.Errorf("%w: variance %v is not positive", ErrDegenerateInput, variance)
	}

	seen := make(map[float64]bool, Count)
	out := make([]float64, 0, Count)

	for attempts := 0; len(out) < Count; attempts++ {
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("%w: no %d distinct distractors for %v after %d attempts",
				ErrDegenerateInput, Count, correct, maxAttempts)
		}

		factor := 1 - variance + rng.Float64()*2*variance
		if factor == 1.0 {
			continue
		}

		val := correct * factor
		if integer {
			val = math.Trunc(val)
		} else {
			val = math.Round(val*100) / 100
		}

		if val == correct || val <= 0 || seen[val] {
			continue
		}
		seen[val] = true
		out = append(out, val)
	}

	return out, nil
}
