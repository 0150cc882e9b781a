package quiz

import (
	"math/rand/v2"

	"codeberg.org/snonux/vocabquiz/internal/wordbank"
)

// IntSource supplies the random indexes for the shuffle. *rand.Rand
// implements it.
type IntSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// ClampLimit maps a configured session size into 1..MaxSessionWords.
// Anything outside that range means the maximum.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxSessionWords {
		return MaxSessionWords
	}
	return limit
}

// Pick returns a uniformly shuffled copy of words truncated to
// min(limit, len(words)). The input slice is left untouched. A nil src uses
// the global generator.
func Pick(words []wordbank.Entry, limit int, src IntSource) []wordbank.Entry {
	if src == nil {
		src = globalSource{}
	}

	shuffled := make([]wordbank.Entry, len(words))
	copy(shuffled, words)

	// Fisher-Yates
	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	n := ClampLimit(limit)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// NewSeededSource returns a deterministic source for reproducible picks
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
