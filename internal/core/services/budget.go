package services

import (
	"fmt"
	"unicode/utf8"
)

// Step is one tier of a Budget: sizes up to and including UpTo get Tokens.
type Step struct {
	UpTo   int
	Tokens int
}

// Budget maps a size signal (units or slide count) to a max output token count.
// Steps must be ordered by UpTo with non-decreasing Tokens; sizes beyond the
// last step use Max.
type Budget struct {
	Steps []Step
	Max   int
}

// For returns the token budget for size, clamped to ceiling when ceiling > 0.
// The result is monotonic non-decreasing in size.
func (b Budget) For(size, ceiling int) int {
	tokens := b.Max
	for _, s := range b.Steps {
		if size <= s.UpTo {
			tokens = s.Tokens
			break
		}
	}
	if ceiling > 0 && tokens > ceiling {
		return ceiling
	}
	return tokens
}

// Fixed returns a Budget that ignores the size signal.
func Fixed(tokens int) Budget {
	return Budget{Max: tokens}
}

// Per-task budgets.
var (
	// SummaryBudget is keyed by total corpus units, matching the summary depth tiers.
	SummaryBudget = Budget{
		Steps: []Step{{UpTo: 5, Tokens: 2000}, {UpTo: 20, Tokens: 4000}, {UpTo: 80, Tokens: 6000}},
		Max:   8192,
	}

	// DeckBudget is keyed by requested slide count.
	DeckBudget = Budget{
		Steps: []Step{{UpTo: 5, Tokens: 3000}, {UpTo: 10, Tokens: 5000}, {UpTo: 15, Tokens: 7000}},
		Max:   8192,
	}

	// AnalysisBudget is keyed by the units covered by a section.
	AnalysisBudget = Budget{
		Steps: []Step{{UpTo: 5, Tokens: 1500}, {UpTo: 20, Tokens: 3000}},
		Max:   4000,
	}

	SectionsBudget      = Fixed(2000)
	ChatBudget          = Fixed(1500)
	KeyConceptsBudget   = Fixed(2000)
	TranscriptionBudget = Fixed(8192)
)

// Truncate cuts text to at most limit characters and appends a marker when it cuts.
// A non-positive limit disables truncation.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 {
		return text, false
	}
	total := utf8.RuneCountInString(text)
	if total <= limit {
		return text, false
	}

	// Walk to the byte offset of the limit-th rune.
	cut := 0
	for i := 0; i < limit; i++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}

	marker := fmt.Sprintf("\n\n[... truncated: showing %d of %d characters ...]", limit, total)
	return text[:cut] + marker, true
}

// Head returns at most limit characters of text without a marker.
func Head(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	cut := 0
	for i := 0; i < limit; i++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return text[:cut]
}
