package domain

import (
	"strings"
	"unicode/utf8"
)

// corpusBanner separates sources in the combined corpus.
var corpusBanner = strings.Repeat("=", 60)

// Corpus is the addressable text formed from every current Source.
type Corpus struct {
	// Text is the delimited concatenation in insertion order.
	Text string

	// SourceCount is the number of sources included.
	SourceCount int

	// TotalUnits is the sum of the sources' unit counts.
	TotalUnits int

	// TotalChars is the character count of the sources' texts, excluding delimiters.
	TotalChars int
}

// IsEmpty returns true if no source contributes to the corpus.
func (c Corpus) IsEmpty() bool {
	return c.SourceCount == 0
}

// BuildCorpus concatenates sources with the fixed delimiter template:
// a banner line, "SOURCE: <name> (<kind>)", another banner line, then the text.
// It is pure and deterministic.
func BuildCorpus(sources []Source) Corpus {
	var b strings.Builder
	c := Corpus{SourceCount: len(sources)}

	for i, s := range sources {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(corpusBanner)
		b.WriteString("\nSOURCE: ")
		b.WriteString(s.Name)
		b.WriteString(" (")
		b.WriteString(s.Kind.Label())
		b.WriteString(")\n")
		b.WriteString(corpusBanner)
		b.WriteString("\n")
		b.WriteString(s.Text)
		b.WriteString("\n")

		c.TotalUnits += s.UnitCount
		c.TotalChars += utf8.RuneCountInString(s.Text)
	}

	c.Text = b.String()
	return c
}
