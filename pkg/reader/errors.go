package reader

import (
	"errors"
	"fmt"

	"chatsource/pkg/models"
)

// ErrNotConnected is returned by fetch calls on a reader that was never
// connected or has been disconnected.
var ErrNotConnected = errors.New("reader not connected")

// DatabaseNotFoundError reports that the resolved store path does not
// exist at connect time.
type DatabaseNotFoundError struct {
	Path string
}

func (e *DatabaseNotFoundError) Error() string {
	return fmt.Sprintf("message store not found: %s", e.Path)
}

// ConnectionFailedError reports that the store exists but could not be
// opened (locked, corrupt, wrong format).
type ConnectionFailedError struct {
	Platform models.Platform
	Err      error
}

func (e *ConnectionFailedError) Error() string {
	return fmt.Sprintf("%s: failed to open message store: %v", e.Platform, e.Err)
}

func (e *ConnectionFailedError) Unwrap() error { return e.Err }

// QueryFailedError reports that the underlying query could not be
// prepared or executed.
type QueryFailedError struct {
	Platform models.Platform
	Err      error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Platform, e.Err)
}

func (e *QueryFailedError) Unwrap() error { return e.Err }

// InvalidDataError reports a source row that could not be mapped to the
// canonical model. Fetches never fail with it; the offending row is
// skipped and the error logged (see Reader).
type InvalidDataError struct {
	Platform models.Platform
	Err      error
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("%s: unmappable row: %v", e.Platform, e.Err)
}

func (e *InvalidDataError) Unwrap() error { return e.Err }
