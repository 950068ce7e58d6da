package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
// Templates are Go text/template sources; the fields available to each are
// documented on the matching services.*PromptData type.
const (
	// PromptSummary produces a Markdown summary. Output: text.
	PromptSummary = "summary"

	// PromptSections detects the corpus structure. Output: JSON.
	PromptSections = "sections"

	// PromptSectionAnalysis analyses one section. Output: text.
	PromptSectionAnalysis = "section_analysis"

	// PromptKeyConcepts extracts a concept table. Output: text.
	PromptKeyConcepts = "key_concepts"

	// PromptSlideDeck plans a slide deck. Output: JSON.
	PromptSlideDeck = "slide_deck"

	// PromptChatSystem is the system instruction for corpus chat. Output: text.
	PromptChatSystem = "chat_system"

	// PromptTranscription transcribes an attached audio stream. Output: text.
	PromptTranscription = "transcription"
)

// AllPromptNames lists every prompt the application loads.
func AllPromptNames() []string {
	return []string{
		PromptSummary,
		PromptSections,
		PromptSectionAnalysis,
		PromptKeyConcepts,
		PromptSlideDeck,
		PromptChatSystem,
		PromptTranscription,
	}
}
