package reader

import (
	"context"
	"testing"
	"time"

	"chatsource/pkg/models"
)

var signalFixtureSchema = []string{
	`CREATE TABLE conversations (id TEXT PRIMARY KEY, name TEXT, e164 TEXT)`,
	`CREATE TABLE messages (
		id TEXT PRIMARY KEY,
		body TEXT,
		sent_at INTEGER,
		type TEXT,
		conversationId TEXT,
		readStatus INTEGER,
		hasAttachments INTEGER
	)`,
}

// store-local ids get the platform prefix; sent_at is unix milliseconds;
// a positive readStatus means read.
func TestSignalMapping(t *testing.T) {
	path := createFixture(t, "db.sqlite", append(signalFixtureSchema,
		`INSERT INTO conversations VALUES ('conv1', 'Bob', '+919999999999')`,
		`INSERT INTO messages VALUES ('42', 'Hi', 1700000000000, 'incoming', 'conv1', 1, 0)`,
	))
	r := connected(t, NewSignal(path))

	msgs, err := r.FetchMessages(context.Background(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	m := msgs[0]
	if m.ID != "signal_42" || m.Platform != models.PlatformSignal {
		t.Fatalf("identity mismatch: %+v", m)
	}
	if m.Sender != "+919999999999" || m.Recipient != models.Self || m.SenderName != "Bob" {
		t.Fatalf("contact mapping mismatch: %+v", m)
	}
	if m.Direction != models.DirectionIncoming || !m.IsRead {
		t.Fatalf("state mismatch: %+v", m)
	}
	want := time.UnixMilli(1700000000000).UTC()
	if !m.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", m.Timestamp, want)
	}
	if m.ChatID != "conv1" || m.Content != "Hi" {
		t.Fatalf("mapping mismatch: %+v", m)
	}
}

// outgoing type flips the endpoints and suppresses the display name; an
// unrecognized type falls back to incoming; a conversation without an
// e164 maps to the documented "unknown" contact.
func TestSignalDirectionAndFallbacks(t *testing.T) {
	path := createFixture(t, "db.sqlite", append(signalFixtureSchema,
		`INSERT INTO conversations VALUES ('conv1', 'Bob', '+919999999999')`,
		`INSERT INTO conversations VALUES ('conv2', NULL, NULL)`,
		`INSERT INTO messages VALUES ('1', 'sent by me', 1000, 'outgoing', 'conv1', 0, 0)`,
		`INSERT INTO messages VALUES ('2', 'group update', 2000, 'group-v2-change', 'conv1', 1, 0)`,
		`INSERT INTO messages VALUES ('3', 'mystery sender', 3000, 'incoming', 'conv2', 0, 0)`,
	))
	r := connected(t, NewSignal(path))

	msgs, err := r.FetchMessages(context.Background(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	byID := map[string]models.Message{}
	for _, m := range msgs {
		byID[m.ID] = m
	}

	out := byID["signal_1"]
	if out.Direction != models.DirectionOutgoing || out.Sender != models.Self ||
		out.Recipient != "+919999999999" || out.SenderName != "" {
		t.Fatalf("outgoing mapping mismatch: %+v", out)
	}

	fallback := byID["signal_2"]
	if fallback.Direction != models.DirectionIncoming {
		t.Fatalf("unrecognized type not mapped to incoming: %+v", fallback)
	}

	unknown := byID["signal_3"]
	if unknown.Sender != "unknown" || unknown.IsRead {
		t.Fatalf("missing e164 mapping mismatch: %+v", unknown)
	}
}

// fetchThreads composes fetchMessages with grouping: two unread incoming
// messages in one conversation come back as one thread, newest first.
func TestSignalFetchThreads(t *testing.T) {
	path := createFixture(t, "db.sqlite", append(signalFixtureSchema,
		`INSERT INTO conversations VALUES ('conv1', 'Bob', '+919999999999')`,
		`INSERT INTO messages VALUES ('1', 'first', 1000, 'incoming', 'conv1', 0, 0)`,
		`INSERT INTO messages VALUES ('2', 'second', 2000, 'incoming', 'conv1', 0, 0)`,
	))
	r := connected(t, NewSignal(path))

	threads, err := r.FetchThreads(context.Background(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("fetch threads: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	th := threads[0]
	if th.ContactIdentifier != "conv1" || th.Platform != models.PlatformSignal {
		t.Fatalf("thread identity mismatch: %+v", th)
	}
	if len(th.Messages) != 2 || th.Messages[0].ID != "signal_2" || th.Messages[1].ID != "signal_1" {
		t.Fatalf("thread order mismatch: %+v", th.Messages)
	}
	if th.UnreadCount != 2 {
		t.Fatalf("unread count = %d, want 2", th.UnreadCount)
	}
	if !th.LastMessageDate.Equal(time.UnixMilli(2000).UTC()) {
		t.Fatalf("last message date = %v", th.LastMessageDate)
	}
	if th.ContactName != "Bob" {
		t.Fatalf("contact name = %q, want Bob", th.ContactName)
	}
}

// a message exactly at the bound is excluded.
func TestSignalSinceExclusive(t *testing.T) {
	path := createFixture(t, "db.sqlite", append(signalFixtureSchema,
		`INSERT INTO conversations VALUES ('conv1', 'Bob', '+919999999999')`,
		`INSERT INTO messages VALUES ('1', 'at bound', 5000, 'incoming', 'conv1', 0, 0)`,
		`INSERT INTO messages VALUES ('2', 'newer', 5001, 'incoming', 'conv1', 0, 0)`,
	))
	r := connected(t, NewSignal(path))

	msgs, err := r.FetchMessages(context.Background(), time.UnixMilli(5000))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "signal_2" {
		t.Fatalf("bound not exclusive: %+v", msgs)
	}
}
