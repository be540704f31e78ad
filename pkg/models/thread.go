package models

import "time"

// MessageThread is one conversation, materialized from the messages that
// share a (Platform, ChatID) pair. Threads are transient values built
// fresh on every fetch; they are never mutated after construction.
type MessageThread struct {
	// ContactIdentifier is the chat id the member messages were grouped by.
	ContactIdentifier string `json:"contact_identifier"`
	// ContactName is the sender name of the most recent member message;
	// empty when that message carries none (e.g. it is self-sent).
	ContactName string   `json:"contact_name,omitempty"`
	Platform    Platform `json:"platform"`
	// Messages is non-empty and strictly descending by timestamp.
	Messages []Message `json:"messages"`
	// UnreadCount counts member messages that are incoming and unread.
	UnreadCount int `json:"unread_count"`
	// LastMessageDate equals Messages[0].Timestamp.
	LastMessageDate time.Time `json:"last_message_date"`
}
