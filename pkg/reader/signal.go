package reader

import (
	"database/sql"
	"time"

	"chatsource/pkg/logger"
	"chatsource/pkg/models"
)

// signalIDPrefix namespaces Signal's store-local message ids into the
// canonical id space.
const signalIDPrefix = "signal_"

// NewSignal returns a reader for the Signal Desktop store.
//
// Defaults for NULLable columns: body maps to an empty content string, a
// conversation with no e164 to the literal contact "unknown", a missing
// conversation name to an absent sender name.
func NewSignal(path string) *Reader {
	return &Reader{path: path, schema: signalSchema}
}

var signalSchema = schema{
	platform: models.PlatformSignal,
	// messages.sent_at is integer milliseconds since the Unix epoch.
	query: `
		SELECT m.id,
		       COALESCE(m.body, ''),
		       m.sent_at,
		       m.type,
		       m.conversationId,
		       COALESCE(c.name, ''),
		       c.e164,
		       COALESCE(m.readStatus, 0),
		       COALESCE(m.hasAttachments, 0)
		FROM messages m
		JOIN conversations c ON c.id = m.conversationId
		WHERE m.sent_at > ?
		ORDER BY m.sent_at DESC`,
	sinceArg: func(since time.Time) any {
		return since.UnixMilli()
	},
	scan: scanSignalRow,
}

func scanSignalRow(rows *sql.Rows) (models.Message, error) {
	var (
		id, body, typ, convID, name string
		sentAt, readStatus          int64
		hasAttachments              bool
		e164                        sql.NullString
	)
	if err := rows.Scan(&id, &body, &sentAt, &typ, &convID, &name,
		&e164, &readStatus, &hasAttachments); err != nil {
		return models.Message{}, err
	}

	var dir models.Direction
	switch typ {
	case "outgoing":
		dir = models.DirectionOutgoing
	case "incoming":
		dir = models.DirectionIncoming
	default:
		// The type column carries values beyond the two message kinds
		// (call history, group updates); anything unrecognized is kept as
		// incoming but flagged so new values surface in the logs.
		dir = models.DirectionIncoming
		logger.Warn("signal_unrecognized_message_type", "type", typ, "id", id)
	}

	contact := "unknown"
	if e164.Valid && e164.String != "" {
		contact = e164.String
	}
	sender, recipient := endpoints(dir, contact)
	if dir == models.DirectionOutgoing {
		name = ""
	}
	return models.Message{
		ID:            signalIDPrefix + id,
		Platform:      models.PlatformSignal,
		Sender:        sender,
		Recipient:     recipient,
		SenderName:    name,
		Content:       body,
		Timestamp:     time.UnixMilli(sentAt).UTC(),
		Direction:     dir,
		ChatID:        convID,
		IsRead:        readStatus > 0,
		HasAttachment: hasAttachments,
	}, nil
}
