// Package reader implements read-only access to platform-native message
// stores and their normalization into the canonical model.
//
// Every platform is a variant of one contract: a SQLite store, a query
// filtered by an exclusive lower time bound, and a row scanner that maps
// the native column layout onto models.Message. The variants differ only
// in query text, timestamp encoding, and field mapping; all shared
// behavior (connection lifecycle, error taxonomy, skip-on-unmappable-row
// convention) lives here.
package reader

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"chatsource/pkg/logger"
	"chatsource/pkg/models"
	"chatsource/pkg/telemetry"
	"chatsource/pkg/threads"
)

// Source is the capability set every platform reader implements. A Source
// owns at most one store connection at a time and assumes a single caller
// per instance; distinct instances are independent and may be used
// concurrently.
type Source interface {
	Connect() error
	Disconnect() error
	FetchMessages(ctx context.Context, since time.Time) ([]models.Message, error)
	FetchThreads(ctx context.Context, since time.Time) ([]models.MessageThread, error)
}

// schema is the closed per-platform variant: the query, the conversion of
// the caller's absolute bound into the store's native time domain, and
// the row-to-canonical mapping.
type schema struct {
	platform models.Platform
	query    string
	sinceArg func(since time.Time) any
	scan     func(rows *sql.Rows) (models.Message, error)
}

// Reader reads one platform's store at a fixed path. Construct with
// NewIMessage, NewSignal or NewWhatsApp.
type Reader struct {
	path   string
	schema schema
	db     *sql.DB
}

var _ Source = (*Reader)(nil)

// Platform returns the platform this reader produces messages for.
func (r *Reader) Platform() models.Platform { return r.schema.platform }

// Connect opens a read-only handle to the store. The stores are live
// files owned by their applications, so the connection must never take a
// write lock; mode=ro plus a busy timeout keeps reads tolerant of the
// owning writer.
func (r *Reader) Connect() error {
	if r.db != nil {
		return nil
	}
	path, err := ExpandPath(r.path)
	if err != nil {
		return &DatabaseNotFoundError{Path: r.path}
	}
	if _, err := os.Stat(path); err != nil {
		return &DatabaseNotFoundError{Path: path}
	}
	dsn := "file:" + path + "?mode=ro&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return &ConnectionFailedError{Platform: r.schema.platform, Err: err}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return &ConnectionFailedError{Platform: r.schema.platform, Err: err}
	}
	r.db = db
	logger.Debug("store_connected", "platform", string(r.schema.platform), "path", path)
	return nil
}

// Disconnect releases the store handle. Safe to call when not connected.
func (r *Reader) Disconnect() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	logger.Debug("store_disconnected", "platform", string(r.schema.platform))
	return err
}

// FetchMessages returns all messages strictly newer than since, most
// recent first. Rows that cannot be scanned into the canonical model are
// skipped and logged rather than failing the fetch; NULLable value
// columns map to the defaults documented on each variant.
func (r *Reader) FetchMessages(ctx context.Context, since time.Time) ([]models.Message, error) {
	pf := string(r.schema.platform)
	if r.db == nil {
		return nil, ErrNotConnected
	}
	rows, err := r.db.QueryContext(ctx, r.schema.query, r.schema.sinceArg(since))
	if err != nil {
		telemetry.FetchErrors.WithLabelValues(pf).Inc()
		return nil, &QueryFailedError{Platform: r.schema.platform, Err: err}
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		msg, err := r.schema.scan(rows)
		if err != nil {
			telemetry.RowsSkipped.WithLabelValues(pf).Inc()
			logger.Warn("row_skipped", "platform", pf,
				"error", (&InvalidDataError{Platform: r.schema.platform, Err: err}).Error())
			continue
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		telemetry.FetchErrors.WithLabelValues(pf).Inc()
		return nil, &QueryFailedError{Platform: r.schema.platform, Err: err}
	}
	telemetry.MessagesFetched.WithLabelValues(pf).Add(float64(len(out)))
	logger.Debug("messages_fetched", "platform", pf, "count", len(out))
	return out, nil
}

// FetchThreads fetches messages newer than since and groups them into
// conversation threads, most recently active first.
func (r *Reader) FetchThreads(ctx context.Context, since time.Time) ([]models.MessageThread, error) {
	msgs, err := r.FetchMessages(ctx, since)
	if err != nil {
		return nil, err
	}
	return threads.Group(r.schema.platform, msgs), nil
}

// endpoints returns the sender/recipient pair for a contact identifier
// given the message direction.
func endpoints(dir models.Direction, contact string) (sender, recipient string) {
	if dir == models.DirectionOutgoing {
		return models.Self, contact
	}
	return contact, models.Self
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}
