package reader

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// createFixture builds a throwaway SQLite store from literal statements
// and returns its path.
func createFixture(t *testing.T, name string, stmts []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer db.Close()
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("fixture statement failed: %v\n%s", err, s)
		}
	}
	return path
}

// connected returns a connected reader and registers its disconnect.
func connected(t *testing.T, r *Reader) *Reader {
	t.Helper()
	if err := r.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = r.Disconnect() })
	return r
}
