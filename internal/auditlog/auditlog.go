package auditlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath keeps the log in process memory
const MemoryPath = ":memory:"

// ErrEmpty is returned by Head when nothing has been logged
var ErrEmpty = errors.New("auditlog: no tickets logged")

// Entry is one logged ticket
type Entry struct {
	Seq       uint64
	Data      string
	Timestamp string
}

// Log is the sequential ticket log. It is written to and never read back by
// the selection logic.
type Log struct {
	db   *sql.DB
	path string
}

// Open creates or opens the ticket log at path and initializes the schema
func Open(path string) (*Log, error) {
	dsn := path + "?_busy_timeout=5000"
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create audit directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection: SQLite has one writer, and an in-memory database exists
	// only on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Log{db: db, path: path}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticket (
			uid INTEGER PRIMARY KEY,
			data TEXT,
			ts TIMESTAMP DEFAULT(STRFTIME('%Y-%m-%d %H:%M:%f', 'NOW')) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ticket_ts_idx ON ticket (ts)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the location the log was opened with
func (l *Log) Path() string {
	return l.path
}

// Append records a minted ticket
func (l *Log) Append(ctx context.Context, seq uint64, data string) error {
	_, err := l.db.ExecContext(ctx, `INSERT INTO ticket (uid, data) VALUES (?, ?)`, int64(seq), data)
	if err != nil {
		return fmt.Errorf("append ticket %d: %w", seq, err)
	}
	return nil
}

// Head returns the most recently logged ticket
func (l *Log) Head(ctx context.Context) (Entry, error) {
	var (
		e    Entry
		seq  int64
		data sql.NullString
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT uid, data, ts FROM ticket ORDER BY ts DESC, uid DESC LIMIT 1`,
	).Scan(&seq, &data, &e.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrEmpty
	}
	if err != nil {
		return Entry{}, fmt.Errorf("query head ticket: %w", err)
	}
	e.Seq = uint64(seq)
	e.Data = data.String
	return e, nil
}

// Count returns the number of logged tickets
func (l *Log) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticket`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return n, nil
}

// NextSeq returns the sequence number after the highest one logged, so a new
// run against an existing file keeps uids unique
func (l *Log) NextSeq(ctx context.Context) (uint64, error) {
	var next int64
	err := l.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(uid) + 1, 0) FROM ticket`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("query next seq: %w", err)
	}
	return uint64(next), nil
}

// Close closes the underlying database
func (l *Log) Close() error {
	return l.db.Close()
}
