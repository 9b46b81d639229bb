package assistant

import "time"

// ConversationEntry is one exchange in a conversation.
type ConversationEntry struct {
	Role    string
	Content string
	At      time.Time
}

// ConversationStore persists conversation history. The core defines the
// boundary and leaves the implementation to the surface that owns the
// session (the chat command keeps one in memory).
type ConversationStore interface {
	Append(entry ConversationEntry) error
	Load() ([]ConversationEntry, error)
	Clear() error
}
