package models

import "time"

// Platform identifies the message store a record was read from.
type Platform string

const (
	PlatformIMessage Platform = "imessage"
	PlatformWhatsApp Platform = "whatsapp"
	PlatformSignal   Platform = "signal"
)

// Direction reports whether the local user sent or received a message.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// Self is the sentinel identifier for the local user. Sender is Self
// exactly when Direction is outgoing; Recipient is Self exactly when
// Direction is incoming.
const Self = "me"

// Message is one normalized unit of conversation history. Readers map
// their native row layouts onto this shape; everything downstream of a
// reader operates only on Message.
type Message struct {
	// ID is globally unique across platforms. Store-local native ids are
	// prefixed with the platform name by the producing reader.
	ID        string   `json:"id"`
	Platform  Platform `json:"platform"`
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	// SenderName is a display name when the store resolves one; empty for
	// self-sent messages and unresolvable contacts.
	SenderName string `json:"sender_name,omitempty"`
	// Content is the raw text body; empty (never absent) for
	// attachment-only messages.
	Content string `json:"content"`
	// Timestamp is normalized to UTC regardless of the source encoding.
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
	// ChatID is scoped per platform; thread identity is (Platform, ChatID).
	ChatID string `json:"chat_id"`
	// IsRead carries the store's raw read flag; only meaningful for
	// incoming messages.
	IsRead        bool `json:"is_read"`
	HasAttachment bool `json:"has_attachment"`
}
