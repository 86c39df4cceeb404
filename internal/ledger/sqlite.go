package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS interactions (
	account_id TEXT NOT NULL,
	target     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	success    INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	scope      TEXT NOT NULL DEFAULT '',
	at         TEXT NOT NULL,
	PRIMARY KEY (account_id, target, kind)
);
CREATE INDEX IF NOT EXISTS idx_interactions_scope
	ON interactions (account_id, scope, kind);

CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	account_id  TEXT NOT NULL,
	workflow    TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	ended_at    TEXT,
	end_reason  TEXT
);
`

// Store is the SQLite-backed Ledger.
type Store struct {
	db    *sql.DB
	clock core.Clock
}

// Open opens (or creates) the ledger database in dataDir. Pass
// ":memory:" for an in-memory database (used by tests).
func Open(dataDir string, clock core.Clock) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "ledger.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if clock == nil {
		clock = core.RealClock{}
	}
	return &Store{db: db, clock: clock}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) HasRecentInteraction(account, target string, kind Kind, window time.Duration) (bool, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	cutoff := s.clock.Now().Add(-window).UTC().Format(time.RFC3339)

	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM interactions
		WHERE account_id = ? AND target = ? AND kind = ? AND success = 1 AND at >= ?`,
		account, target, string(kind), cutoff,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying recent interaction: %w", err)
	}
	return n > 0, nil
}

func (s *Store) RecordInteraction(rec Record) error {
	at := rec.At
	if at.IsZero() {
		at = s.clock.Now()
	}
	success := 0
	if rec.Success {
		success = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO interactions (account_id, target, kind, success, session_id, scope, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, target, kind) DO UPDATE SET
			success = excluded.success,
			session_id = excluded.session_id,
			scope = excluded.scope,
			at = excluded.at`,
		rec.AccountID, rec.Target, string(rec.Kind), success,
		rec.SessionID, rec.Scope, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording interaction: %w", err)
	}
	return nil
}

func (s *Store) CountForScope(account, scope string, kind Kind) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM interactions
		WHERE account_id = ? AND scope = ? AND kind = ? AND success = 1`,
		account, scope, string(kind),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting scope interactions: %w", err)
	}
	return n, nil
}

// CreateSession inserts a session row and returns its generated id.
func (s *Store) CreateSession(accountID, workflow string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, account_id, workflow, started_at)
		VALUES (?, ?, ?, ?)`,
		id, accountID, workflow, s.clock.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// EndSession stamps the end time and reason on a session row.
func (s *Store) EndSession(id, reason string) error {
	res, err := s.db.Exec(`
		UPDATE sessions SET ended_at = ?, end_reason = ? WHERE id = ?`,
		s.clock.Now().UTC().Format(time.RFC3339), reason, id,
	)
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SessionSummary describes a finished or running session row.
type SessionSummary struct {
	ID        string
	AccountID string
	Workflow  string
	StartedAt time.Time
	EndedAt   time.Time
	EndReason string
}

// RecentSessions lists the newest sessions, most recent first.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, account_id, workflow, started_at, ended_at, end_reason
		FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var started string
		var ended, reason sql.NullString
		if err := rows.Scan(&sum.ID, &sum.AccountID, &sum.Workflow, &started, &ended, &reason); err != nil {
			return nil, err
		}
		if sum.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if ended.Valid && ended.String != "" {
			if sum.EndedAt, err = time.Parse(time.RFC3339, ended.String); err != nil {
				return nil, fmt.Errorf("parsing ended_at: %w", err)
			}
		}
		sum.EndReason = reason.String
		results = append(results, sum)
	}
	return results, rows.Err()
}
