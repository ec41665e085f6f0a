package probe

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SendLog records probe deliveries in a local SQLite database, so repeated
// runs show what was sent and how the server answered.
type SendLog struct {
	db *sql.DB
}

// OpenSendLog opens (or creates) the SQLite send log at dir/probe.db.
func OpenSendLog(dir string) (*SendLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating probe state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "probe.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening send log: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sends (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id  TEXT NOT NULL,
		mode     TEXT NOT NULL,
		metrics  INTEGER NOT NULL,
		status   INTEGER NOT NULL,
		sent_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sends table: %w", err)
	}

	return &SendLog{db: db}, nil
}

// Record logs one delivery attempt.
func (s *SendLog) Record(userID, mode string, metrics, status int) error {
	_, err := s.db.Exec(
		`INSERT INTO sends (user_id, mode, metrics, status) VALUES (?, ?, ?, ?)`,
		userID, mode, metrics, status,
	)
	return err
}

// LastSend returns when the most recent delivery was logged, or the zero
// time when none exists.
func (s *SendLog) LastSend() (time.Time, error) {
	var ts sql.NullString
	err := s.db.QueryRow(`SELECT MAX(sent_at) FROM sends`).Scan(&ts)
	if err != nil {
		return time.Time{}, err
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", ts.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing sent_at %q: %w", ts.String, err)
	}
	return t, nil
}

// Close closes the send log database.
func (s *SendLog) Close() error {
	return s.db.Close()
}
