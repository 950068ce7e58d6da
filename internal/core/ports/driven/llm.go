package driven

import "context"

// Chat message roles understood by every provider adapter.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage represents a message in a conversation.
type ChatMessage struct {
	// Role is "user" or "assistant". System instructions travel separately.
	Role string

	// Content is the message text.
	Content string
}

// Attachment is binary input sent alongside the prompt (e.g. audio).
type Attachment struct {
	MIMEType string
	Data     []byte
}

// CompletionRequest is one request to the language model.
type CompletionRequest struct {
	// System is the optional system instruction.
	System string

	// Messages is the ordered list of turns; the last one is the user prompt.
	Messages []ChatMessage

	// MaxTokens is the maximum number of output tokens.
	MaxTokens int

	// Temperature controls randomness (0.0-1.0). Zero leaves the provider default.
	Temperature float64

	// JSON asks the provider for a JSON response where it supports a native mode.
	JSON bool

	// Attachment is optional binary input attached to the last user turn.
	Attachment *Attachment
}

// Completion is the model's answer.
type Completion struct {
	// Text is the concatenated text content.
	Text string

	// StopReason is the provider-reported reason generation ended.
	StopReason string

	// InputTokens and OutputTokens report usage when the provider returns it.
	InputTokens  int
	OutputTokens int
}

// LLMService provides access to a remote language model.
// It is the only outbound dependency that reasons over study material.
type LLMService interface {
	// Complete issues a single request/response cycle. Implementations never retry.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)

	// SupportsAttachment reports whether a binary attachment of the MIME type is accepted.
	SupportsAttachment(mimeType string) bool

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable and the credential is accepted.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
