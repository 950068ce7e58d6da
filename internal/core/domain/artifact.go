package domain

// MarkdownContentType is the MIME type of Markdown exports.
const MarkdownContentType = "text/markdown; charset=utf-8"

// Artifact is a downloadable generated file.
type Artifact struct {
	// FileName is the suggested download name.
	FileName string

	// ContentType is the MIME type.
	ContentType string

	// Data is the file content.
	Data []byte
}

// DeckOptions controls slide deck generation.
type DeckOptions struct {
	// Slides is the exact number of slides requested.
	Slides int

	// Title overrides the deck title chosen by the model.
	Title string

	// Author is printed on the title slide footer.
	Author string

	// Focus optionally narrows the deck to a topic or section.
	Focus string
}
