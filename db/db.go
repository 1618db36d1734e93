// Package db is the SQLite persistence layer: a small key/value table that
// backs the frecency store, and a journal of submitted commands keyed by
// idempotency key.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cmdpalette/frecency"
	"cmdpalette/model"
	"cmdpalette/runner"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type DB struct {
	conn *sql.DB
	log  *zap.Logger
	now  func() time.Time
}

// DefaultPath is ~/.cmdpalette/palette.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdpalette", "palette.db"), nil
}

// New opens (creating if needed) the database at path. An empty path uses
// DefaultPath.
func New(path string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	db := &DB{conn: conn, log: log, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	log.Debug("database ready", zap.String("path", path))
	return db, nil
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME
		);
		CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			idempotency_key TEXT NOT NULL UNIQUE,
			command TEXT NOT NULL,
			raw TEXT DEFAULT '',
			attempts INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			last_used_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_submissions_command ON submissions(command);
	`)
	return err
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Load returns the blob stored under key, or frecency.ErrNotFound.
func (d *DB) Load(key string) ([]byte, error) {
	var blob []byte
	err := d.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, frecency.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return blob, nil
}

// Save replaces the blob stored under key.
func (d *DB) Save(key string, blob []byte) error {
	_, err := d.conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, d.now(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Journal records a submission. When the idempotency key was already
// journaled it bumps the attempt count and reports a duplicate if the
// previous submission was less than window ago.
func (d *DB) Journal(sub model.Submission, window time.Duration) (duplicate bool, err error) {
	key := strings.TrimSpace(sub.Key)
	if key == "" {
		return false, errors.New("journal: empty idempotency key")
	}

	now := d.now()
	result, err := d.conn.Exec(`
		INSERT INTO submissions (idempotency_key, command, raw, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(idempotency_key) DO NOTHING`,
		key, sub.Command, sub.Raw, now,
	)
	if err != nil {
		return false, fmt.Errorf("journal %s: %w", sub.Command, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return false, nil
	}

	var created time.Time
	var lastUsed sql.NullTime
	err = d.conn.QueryRow(
		`SELECT created_at, last_used_at FROM submissions WHERE idempotency_key = ?`, key,
	).Scan(&created, &lastUsed)
	if err != nil {
		return false, fmt.Errorf("journal %s: %w", sub.Command, err)
	}
	previous := created
	if lastUsed.Valid {
		previous = lastUsed.Time
	}
	duplicate = now.Sub(previous) < window

	d.log.Debug("repeated submission",
		zap.String("command", sub.Command),
		zap.String("key", key),
		zap.Bool("duplicate", duplicate))
	return duplicate, d.touch(key, now)
}

// touch bumps the attempt count and timestamp of a submission.
func (d *DB) touch(key string, at time.Time) error {
	_, err := d.conn.Exec(
		`UPDATE submissions SET attempts = attempts + 1, last_used_at = ? WHERE idempotency_key = ?`,
		at, key,
	)
	return err
}

// Forget removes a submission so the same command can be submitted again.
func (d *DB) Forget(key string) error {
	_, err := d.conn.Exec(`DELETE FROM submissions WHERE idempotency_key = ?`, key)
	return err
}

// Submissions lists journaled submissions, most recently used first. A
// non-positive limit returns everything.
func (d *DB) Submissions(limit int) ([]model.Submission, error) {
	query := `
		SELECT idempotency_key, command, raw, attempts, created_at, last_used_at
		FROM submissions
		ORDER BY COALESCE(last_used_at, created_at) DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		var lastUsed sql.NullTime
		if err := rows.Scan(&s.Key, &s.Command, &s.Raw, &s.Attempts, &s.CreatedAt, &lastUsed); err != nil {
			return nil, err
		}
		if lastUsed.Valid {
			s.LastUsedAt = &lastUsed.Time
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

var (
	_ frecency.Storage = (*DB)(nil)
	_ runner.Journal   = (*DB)(nil)
)
