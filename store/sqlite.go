package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"daytrack/model"
)

// SQLiteStore keeps the serialized state blob in a one-row SQLite table.
// The schema stays a key-value blob on purpose: the store contract is an
// opaque load/save collaborator, not a relational mapping.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS app_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	blob TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads the single state row. No row or an undecodable blob yields
// ok=false with no error, matching the file store's forgiving policy.
func (s *SQLiteStore) Load() (model.AppState, bool, error) {
	var blob string
	err := s.db.QueryRow(`SELECT blob FROM app_state WHERE id = 1;`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AppState{}, false, nil
	}
	if err != nil {
		return model.AppState{}, false, err
	}
	state, err := decodeState([]byte(blob))
	if err != nil {
		return model.AppState{}, false, nil
	}
	return state, true, nil
}

// Save upserts the state row.
func (s *SQLiteStore) Save(state model.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO app_state (id, blob, updated_at) VALUES (1, ?, datetime('now'))
ON CONFLICT (id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at;`,
		string(data))
	return err
}

// Reset deletes the state row.
func (s *SQLiteStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM app_state WHERE id = 1;`)
	return err
}

// sqliteDSN builds a file: DSN for modernc.org/sqlite; mode=rwc creates the
// database file if it doesn't exist.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
