package sqliterepo

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-mail-badge/sessions"
	_ "modernc.org/sqlite"
)

// Keys of the session table. They mirror the fields of sessions.Session.
const (
	keyAccessToken  = "accessToken"
	keyIDToken      = "idToken"
	keyUser         = "user"
	keyCurrentNonce = "currentNonce"
	keyIsAuthorized = "isAuthorized"
)

var _ sessions.Repo = (*Repo)(nil)

// Repo stores the session as JSON values in a SQLite key/value table.
type Repo struct {
	db *sql.DB
}

// Open creates or opens the session database and runs migrations.
func Open(path string) (*Repo, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &Repo{db: db}, nil
}

// Close closes the database connection.
func (r *Repo) Close() error {
	return r.db.Close()
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Load reads the stored session. Missing keys keep their defaults.
func (r *Repo) Load() (*sessions.Session, error) {
	rows, err := r.db.Query(`SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	defer rows.Close()

	s := sessions.New()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		var dst any
		switch key {
		case keyAccessToken:
			dst = &s.AccessToken
		case keyIDToken:
			dst = &s.IDToken
		case keyUser:
			dst = &s.User
		case keyCurrentNonce:
			dst = &s.CurrentNonce
		case keyIsAuthorized:
			dst = &s.IsAuthorized
		default:
			continue
		}
		if err := json.Unmarshal([]byte(value), dst); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	return s, nil
}

// Save writes every session field in one transaction.
func (r *Repo) Save(s *sessions.Session) error {
	if s == nil {
		return fmt.Errorf("session cannot be nil")
	}

	values := map[string]any{
		keyAccessToken:  s.AccessToken,
		keyIDToken:      s.IDToken,
		keyUser:         s.User,
		keyCurrentNonce: s.CurrentNonce,
		keyIsAuthorized: s.IsAuthorized,
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range values {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		if _, err := tx.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, key, string(encoded)); err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
	}
	return tx.Commit()
}
