package domain

// SummaryDepth is the elaborateness tier of a summary.
type SummaryDepth int

// Summary depth tiers, in increasing order.
const (
	SummaryBrief SummaryDepth = iota
	SummaryStandard
	SummaryDetailed
	SummaryComprehensive
)

// SummaryDepthFor maps a total unit count to a depth tier.
// Tiers: <=5 brief, <=20 standard, <=80 detailed, otherwise comprehensive.
func SummaryDepthFor(units int) SummaryDepth {
	switch {
	case units <= 5:
		return SummaryBrief
	case units <= 20:
		return SummaryStandard
	case units <= 80:
		return SummaryDetailed
	default:
		return SummaryComprehensive
	}
}

// String returns the tier name.
func (d SummaryDepth) String() string {
	switch d {
	case SummaryBrief:
		return "brief"
	case SummaryStandard:
		return "standard"
	case SummaryDetailed:
		return "detailed"
	case SummaryComprehensive:
		return "comprehensive"
	default:
		return unknownDescription
	}
}

// Guidance returns the instructions embedded in the summary prompt for this tier.
func (d SummaryDepth) Guidance() string {
	switch d {
	case SummaryBrief:
		return "Write a short overview (about 300 words) with the 3 to 5 most important ideas as bullet points."
	case SummaryStandard:
		return "Write an overview paragraph, then one subsection per main topic with key points and definitions " +
			"(about 800 words)."
	case SummaryDetailed:
		return "Write an executive overview, then a detailed subsection per main topic covering definitions, " +
			"arguments, examples and relationships between topics, and finish with a list of key takeaways " +
			"(about 1500 words)."
	default:
		return "Write an executive overview, a structured outline of the whole material, a detailed subsection " +
			"per part and main topic with definitions, arguments, examples and formulas where relevant, a glossary " +
			"of essential terms and a list of key takeaways (about 2500 words)."
	}
}
