package reader

import (
	"database/sql"
	"strconv"
	"time"

	"chatsource/pkg/models"
)

// whatsappIDPrefix namespaces the store-local ZWAMESSAGE primary keys
// into the canonical id space.
const whatsappIDPrefix = "whatsapp_"

// NewWhatsApp returns a reader for the WhatsApp iOS store
// (ChatStorage.sqlite).
//
// Defaults for NULLable columns: text maps to an empty content string, a
// missing sender JID to the chat session's contact JID, a missing
// partner name to an absent sender name.
//
// The store keeps no per-message read flag, so read state is derived: an
// incoming message is unread iff it is among the session's ZUNREADCOUNT
// most recent messages within the fetched window.
func NewWhatsApp(path string) *Reader {
	return &Reader{path: path, schema: whatsappSchema}
}

var whatsappSchema = schema{
	platform: models.PlatformWhatsApp,
	// ZMESSAGEDATE is REAL seconds since appleEpoch (Core Data dates).
	query: `
		SELECT m.Z_PK,
		       COALESCE(m.ZTEXT, ''),
		       m.ZMESSAGEDATE,
		       m.ZISFROMME,
		       m.ZMEDIAITEM IS NOT NULL,
		       m.ZFROMJID,
		       c.ZCONTACTJID,
		       COALESCE(c.ZPARTNERNAME, ''),
		       CASE
		           WHEN m.ZISFROMME = 1 THEN 1
		           WHEN ROW_NUMBER() OVER (
		               PARTITION BY m.ZCHATSESSION
		               ORDER BY m.ZMESSAGEDATE DESC
		           ) <= COALESCE(c.ZUNREADCOUNT, 0) THEN 0
		           ELSE 1
		       END
		FROM ZWAMESSAGE m
		JOIN ZWACHATSESSION c ON c.Z_PK = m.ZCHATSESSION
		WHERE m.ZMESSAGEDATE > ?
		ORDER BY m.ZMESSAGEDATE DESC`,
	sinceArg: func(since time.Time) any {
		return since.Sub(appleEpoch).Seconds()
	},
	scan: scanWhatsAppRow,
}

func scanWhatsAppRow(rows *sql.Rows) (models.Message, error) {
	var (
		pk                            int64
		text, contactJID, partnerName string
		date                          float64
		fromMe, hasMedia, isRead      bool
		fromJID                       sql.NullString
	)
	if err := rows.Scan(&pk, &text, &date, &fromMe, &hasMedia,
		&fromJID, &contactJID, &partnerName, &isRead); err != nil {
		return models.Message{}, err
	}

	dir := models.DirectionIncoming
	if fromMe {
		dir = models.DirectionOutgoing
	}
	contact := contactJID
	if fromJID.Valid && fromJID.String != "" {
		contact = fromJID.String
	}
	sender, recipient := endpoints(dir, contact)
	name := partnerName
	if fromMe {
		name = ""
	}
	return models.Message{
		ID:            whatsappIDPrefix + strconv.FormatInt(pk, 10),
		Platform:      models.PlatformWhatsApp,
		Sender:        sender,
		Recipient:     recipient,
		SenderName:    name,
		Content:       text,
		Timestamp:     appleEpoch.Add(time.Duration(date * float64(time.Second))).UTC(),
		Direction:     dir,
		ChatID:        contactJID,
		IsRead:        isRead,
		HasAttachment: hasMedia,
	}, nil
}
