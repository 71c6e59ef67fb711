// Package store provides the SQLite execution backend for SQL-dialect
// queries. Search-dialect queries target an external index and are not
// executable here.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a SQLite database opened in WAL mode. SQLite supports one
// writer at a time, so the connection pool is capped at one.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open creates or opens a SQLite database at the given path, applies the
// required pragmas and creates missing tables. Idempotent.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Debugw("store opened", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// AddCatalog inserts a catalog row. Used by tests and seed tooling.
func (s *Store) AddCatalog(ctx context.Context, guid, code, name string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tcatalog (guid, code, name) VALUES (?, ?, ?)", guid, code, name)
	return err
}

// AddSetting inserts a settings row and returns its uidpk.
func (s *Store) AddSetting(ctx context.Context, guid, namespace, settingCtx, value string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tsettings (guid, namespace, context, value) VALUES (?, ?, ?, ?)",
		guid, namespace, settingCtx, value)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AddMetadata attaches a metadata key-value pair to a setting.
func (s *Store) AddMetadata(ctx context.Context, settingUID int64, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tmetadata (setting_uid, mkey, value) VALUES (?, ?, ?)",
		settingUID, key, value)
	return err
}
