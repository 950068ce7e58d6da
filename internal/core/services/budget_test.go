package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgets_MonotonicAndWithinCeiling(t *testing.T) {
	sizes := []int{1, 10, 50, 100, 1000}
	budgets := map[string]Budget{
		"summary":       SummaryBudget,
		"deck":          DeckBudget,
		"analysis":      AnalysisBudget,
		"sections":      SectionsBudget,
		"chat":          ChatBudget,
		"key_concepts":  KeyConceptsBudget,
		"transcription": TranscriptionBudget,
	}

	for _, ceiling := range []int{8192, 4096} {
		for name, b := range budgets {
			t.Run(fmt.Sprintf("%s/ceiling=%d", name, ceiling), func(t *testing.T) {
				prev := 0
				for _, size := range sizes {
					got := b.For(size, ceiling)
					assert.GreaterOrEqual(t, got, prev, "size %d", size)
					assert.LessOrEqual(t, got, ceiling, "size %d", size)
					assert.Positive(t, got)
					prev = got
				}
			})
		}
	}
}

func TestSummaryBudget_Steps(t *testing.T) {
	tests := []struct {
		units int
		want  int
	}{
		{1, 2000},
		{5, 2000},
		{6, 4000},
		{20, 4000},
		{21, 6000},
		{80, 6000},
		{81, 8192},
		{5000, 8192},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SummaryBudget.For(tt.units, 8192), "units %d", tt.units)
	}
}

func TestDeckBudget_Steps(t *testing.T) {
	assert.Equal(t, 3000, DeckBudget.For(3, 8192))
	assert.Equal(t, 5000, DeckBudget.For(8, 8192))
	assert.Equal(t, 7000, DeckBudget.For(15, 8192))
	assert.Equal(t, 8192, DeckBudget.For(20, 8192))
}

func TestBudget_NoCeiling(t *testing.T) {
	assert.Equal(t, 8192, SummaryBudget.For(1000, 0))
}

func TestTruncate_UnderLimit(t *testing.T) {
	got, cut := Truncate("short text", 100)

	assert.False(t, cut)
	assert.Equal(t, "short text", got)
}

func TestTruncate_OverLimitAppendsMarker(t *testing.T) {
	text := strings.Repeat("a", 150)

	got, cut := Truncate(text, 100)

	assert.True(t, cut)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", 100)+"\n\n"))
	assert.Contains(t, got, "[... truncated: showing 100 of 150 characters ...]")
	assert.NotContains(t, got, strings.Repeat("a", 101))
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("é", 10)

	got, cut := Truncate(text, 4)

	assert.True(t, cut)
	assert.True(t, strings.HasPrefix(got, "éééé\n"))
	assert.Contains(t, got, "showing 4 of 10 characters")
}

func TestTruncate_NonPositiveLimitDisables(t *testing.T) {
	got, cut := Truncate("anything", 0)

	assert.False(t, cut)
	assert.Equal(t, "anything", got)
}

func TestHead(t *testing.T) {
	assert.Equal(t, "abc", Head("abcdef", 3))
	assert.Equal(t, "abc", Head("abc", 10))
	assert.Equal(t, "abc", Head("abc", 0))
}
