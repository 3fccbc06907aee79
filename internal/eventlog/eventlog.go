// Package eventlog records searches and chat messages to SQLite on a
// best-effort basis. A nil *Log is a valid no-op sink, and recording
// never returns an error to callers; a broken log must not break the
// request that triggered it.
package eventlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS trial_searches (
	id            TEXT PRIMARY KEY,
	search_query  TEXT NOT NULL DEFAULT '',
	filters       TEXT NOT NULL DEFAULT '{}',
	results_count INTEGER NOT NULL DEFAULT 0,
	search_type   TEXT NOT NULL DEFAULT 'api',
	ip_address    TEXT NOT NULL DEFAULT '',
	user_agent    TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
	id              TEXT PRIMARY KEY,
	session_id      TEXT NOT NULL DEFAULT '',
	message_type    TEXT NOT NULL,
	content         TEXT NOT NULL DEFAULT '',
	intent          TEXT NOT NULL DEFAULT '',
	trials_returned INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);
`

type Log struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// SearchEvent describes one trial search for the audit trail.
type SearchEvent struct {
	Query        string
	Filters      map[string]string
	ResultsCount int
	SearchType   string
	IPAddress    string
	UserAgent    string
}

// ChatEvent describes one message in a chat session, either direction.
type ChatEvent struct {
	SessionID      string
	MessageType    string
	Content        string
	Intent         string
	TrialsReturned int
}

func Open(path string, log zerolog.Logger) (*Log, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Log{db: db, log: log}, nil
}

func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

// RecordSearch writes a search event. Failures are logged and swallowed.
func (l *Log) RecordSearch(ev SearchEvent) {
	if l == nil {
		return
	}
	filters, err := json.Marshal(ev.Filters)
	if err != nil {
		filters = []byte("{}")
	}
	if ev.SearchType == "" {
		ev.SearchType = "api"
	}
	_, err = l.db.Exec(
		`INSERT INTO trial_searches (id, search_query, filters, results_count, search_type, ip_address, user_agent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ev.Query, string(filters), ev.ResultsCount, ev.SearchType, ev.IPAddress, ev.UserAgent,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		l.log.Warn().Err(err).Msg("record search event failed")
	}
}

// RecordChat writes a chat event. Failures are logged and swallowed.
func (l *Log) RecordChat(ev ChatEvent) {
	if l == nil {
		return
	}
	_, err := l.db.Exec(
		`INSERT INTO chat_messages (id, session_id, message_type, content, intent, trials_returned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ev.SessionID, ev.MessageType, ev.Content, ev.Intent, ev.TrialsReturned,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		l.log.Warn().Err(err).Msg("record chat event failed")
	}
}

// SearchCount reports the number of recorded searches, for diagnostics.
func (l *Log) SearchCount() (int, error) {
	if l == nil {
		return 0, nil
	}
	var n int
	err := l.db.Get(&n, "SELECT COUNT(*) FROM trial_searches")
	return n, err
}

// ChatCount reports the number of recorded chat messages.
func (l *Log) ChatCount() (int, error) {
	if l == nil {
		return 0, nil
	}
	var n int
	err := l.db.Get(&n, "SELECT COUNT(*) FROM chat_messages")
	return n, err
}
