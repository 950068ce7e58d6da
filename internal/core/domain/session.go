package domain

import (
	"fmt"
	"time"
)

// Session owns one user's sources and everything derived from them.
// A Session is not safe for concurrent use; driving adapters serialise
// actions against it.
type Session struct {
	// ID identifies the session.
	ID string

	// CreatedAt records when the session was created.
	CreatedAt time.Time

	sources     []Source
	corpus      Corpus
	summary     string
	sections    []Section
	analyses    map[int]string
	keyConcepts string
	deck        *SlideDeckSpec
	turns       []ConversationTurn
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
	}
	s.invalidate()
	return s
}

// AddSource appends a source and invalidates derived state.
func (s *Session) AddSource(src Source) {
	s.sources = append(s.sources, src)
	s.invalidate()
}

// RemoveSource removes the source with the given ID and invalidates derived state.
func (s *Session) RemoveSource(id string) error {
	for i := range s.sources {
		if s.sources[i].ID == id {
			s.sources = append(s.sources[:i:i], s.sources[i+1:]...)
			s.invalidate()
			return nil
		}
	}
	return fmt.Errorf("source %q: %w", id, ErrNotFound)
}

// Reset drops every source and every derived artifact.
func (s *Session) Reset() {
	s.sources = nil
	s.invalidate()
}

// invalidate rebuilds the corpus and clears derived artifacts and chat history.
func (s *Session) invalidate() {
	s.corpus = BuildCorpus(s.sources)
	s.summary = ""
	s.sections = nil
	s.analyses = make(map[int]string)
	s.keyConcepts = ""
	s.deck = nil
	s.turns = nil
}

// Sources returns a copy of the current sources in insertion order.
func (s *Session) Sources() []Source {
	out := make([]Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Source returns the source with the given ID.
func (s *Session) Source(id string) (Source, bool) {
	for _, src := range s.sources {
		if src.ID == id {
			return src, true
		}
	}
	return Source{}, false
}

// Corpus returns the corpus built from the current sources.
func (s *Session) Corpus() Corpus {
	return s.corpus
}

// Summary returns the stored summary, if any.
func (s *Session) Summary() string {
	return s.summary
}

// SetSummary stores the full summary.
func (s *Session) SetSummary(summary string) {
	s.summary = summary
}

// Sections returns a copy of the detected sections.
func (s *Session) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Section returns the section with the given index.
func (s *Session) Section(index int) (Section, bool) {
	for _, sec := range s.sections {
		if sec.Index == index {
			return sec, true
		}
	}
	return Section{}, false
}

// SetSections replaces the sections wholesale and drops their analyses.
func (s *Session) SetSections(sections []Section) {
	s.sections = make([]Section, len(sections))
	copy(s.sections, sections)
	s.analyses = make(map[int]string)
}

// Analysis returns the stored analysis for a section index.
func (s *Session) Analysis(index int) (string, bool) {
	a, ok := s.analyses[index]
	return a, ok
}

// SetAnalysis stores the analysis for a section index.
func (s *Session) SetAnalysis(index int, analysis string) {
	s.analyses[index] = analysis
}

// KeyConcepts returns the stored key concepts table.
func (s *Session) KeyConcepts() string {
	return s.keyConcepts
}

// SetKeyConcepts stores the key concepts table.
func (s *Session) SetKeyConcepts(table string) {
	s.keyConcepts = table
}

// Deck returns the last generated slide deck spec, or nil.
func (s *Session) Deck() *SlideDeckSpec {
	return s.deck
}

// SetDeck stores the last generated slide deck spec.
func (s *Session) SetDeck(deck *SlideDeckSpec) {
	s.deck = deck
}

// Turns returns a copy of the chat history.
func (s *Session) Turns() []ConversationTurn {
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// RecentTurns returns at most n of the latest turns. The window never
// starts with an assistant turn.
func (s *Session) RecentTurns(n int) []ConversationTurn {
	if n <= 0 || len(s.turns) == 0 {
		return nil
	}
	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}
	window := s.turns[start:]
	for len(window) > 0 && window[0].Role != RoleUser {
		window = window[1:]
	}
	out := make([]ConversationTurn, len(window))
	copy(out, window)
	return out
}

// AppendExchange records a question and its answer.
func (s *Session) AppendExchange(question, answer string) {
	s.turns = append(s.turns,
		ConversationTurn{Role: RoleUser, Content: question},
		ConversationTurn{Role: RoleAssistant, Content: answer},
	)
}

// ClearTurns drops the chat history only.
func (s *Session) ClearTurns() {
	s.turns = nil
}
