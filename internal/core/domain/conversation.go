package domain

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one entry of the chat history.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
