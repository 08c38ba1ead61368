// Package store persists translation history and user settings in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	original_text TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// timestampLayout is SQLite's CURRENT_TIMESTAMP format.
const timestampLayout = "2006-01-02 15:04:05"

// Store wraps the SQL database holding history and settings.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and ensures the schema. Parent directories are created unless path is MemoryPath.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty database path")
	}
	if path != MemoryPath {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("store: resolve %s: %w", path, err)
		}
		path = abs
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logger.Error().Err(err).Str("directory", filepath.Dir(path)).Msg("failed to create database directory")
			return nil, fmt.Errorf("store: create directory for %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// SQLite allows one writer, and each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger, now: time.Now}
	if err := s.init(ctx, path); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info().Str("db_path", path).Msg("database ready")
	return s, nil
}

func (s *Store) init(ctx context.Context, path string) error {
	if path != MemoryPath {
		if _, err := s.db.ExecContext(ctx, `PRAGMA journal_mode = WAL`); err != nil {
			return fmt.Errorf("store: enable WAL: %w", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		s.logger.Error().Err(err).Msg("failed to initialize schema")
		return fmt.Errorf("store: init schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05-07:00", "2006-01-02 15:04:05.999999999 -0700 MST"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("store: unrecognized timestamp %q", v)
}

// likePattern builds a LIKE pattern matching keyword anywhere, with LIKE wildcards in keyword matched literally (use with ESCAPE '\').
func likePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(keyword) + "%"
}
