package domain

// MaxSections caps the number of sections kept from a detection run.
const MaxSections = 15

// Section is a detected logical subdivision of the corpus.
type Section struct {
	// Index is 1-based and contiguous within a detection batch.
	Index int `json:"index"`

	// Title is the section heading.
	Title string `json:"title"`

	// StartUnit is the first unit (page-equivalent) covered.
	StartUnit int `json:"start_unit"`

	// EndUnit is the last unit covered, inclusive.
	EndUnit int `json:"end_unit"`

	// ShortDescription is a one-line description.
	ShortDescription string `json:"short_description"`

	// SourceName optionally names the Source the section belongs to.
	SourceName string `json:"source_name,omitempty"`
}

// UnitSpan returns the number of units covered by the section.
func (s Section) UnitSpan() int {
	if s.EndUnit < s.StartUnit {
		return 1
	}
	return s.EndUnit - s.StartUnit + 1
}

// WholeCorpusSection returns the synthetic section used when no structure is detected.
func WholeCorpusSection(totalUnits int) Section {
	if totalUnits < 1 {
		totalUnits = 1
	}
	return Section{
		Index:            1,
		Title:            "Complete material",
		StartUnit:        1,
		EndUnit:          totalUnits,
		ShortDescription: "All loaded material as a single section.",
	}
}
