package reader

import (
	"database/sql"
	"time"

	"chatsource/pkg/models"
)

// appleEpoch is the reference instant for Apple's Core Data dates:
// iMessage stores nanoseconds since it, WhatsApp's iOS store seconds.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewIMessage returns a reader for the macOS Messages store (chat.db).
//
// Defaults for NULLable columns: text maps to an empty body
// (attachment-only messages), a missing handle to an empty contact, a
// missing chat display name to an absent sender name.
func NewIMessage(path string) *Reader {
	return &Reader{path: path, schema: imessageSchema}
}

var imessageSchema = schema{
	platform: models.PlatformIMessage,
	// message.date is integer nanoseconds since appleEpoch. message.guid
	// is already unique process-wide, so canonical ids carry no prefix.
	query: `
		SELECT m.guid,
		       COALESCE(m.text, ''),
		       m.date,
		       m.is_from_me,
		       m.is_read,
		       m.cache_has_attachments,
		       h.id,
		       c.chat_identifier,
		       COALESCE(c.display_name, '')
		FROM message m
		JOIN chat_message_join cmj ON cmj.message_id = m.ROWID
		JOIN chat c ON c.ROWID = cmj.chat_id
		LEFT JOIN handle h ON h.ROWID = m.handle_id
		WHERE m.date > ?
		ORDER BY m.date DESC`,
	sinceArg: func(since time.Time) any {
		return since.Sub(appleEpoch).Nanoseconds()
	},
	scan: scanIMessageRow,
}

func scanIMessageRow(rows *sql.Rows) (models.Message, error) {
	var (
		guid, text, chatID, displayName string
		date                            int64
		fromMe, isRead, hasAttachment   bool
		handle                          sql.NullString
	)
	if err := rows.Scan(&guid, &text, &date, &fromMe, &isRead,
		&hasAttachment, &handle, &chatID, &displayName); err != nil {
		return models.Message{}, err
	}

	dir := models.DirectionIncoming
	if fromMe {
		dir = models.DirectionOutgoing
	}
	sender, recipient := endpoints(dir, handle.String)
	name := displayName
	if fromMe {
		name = ""
	}
	return models.Message{
		ID:            guid,
		Platform:      models.PlatformIMessage,
		Sender:        sender,
		Recipient:     recipient,
		SenderName:    name,
		Content:       text,
		Timestamp:     appleEpoch.Add(time.Duration(date)),
		Direction:     dir,
		ChatID:        chatID,
		IsRead:        isRead,
		HasAttachment: hasAttachment,
	}, nil
}
