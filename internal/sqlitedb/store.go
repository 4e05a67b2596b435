// Package sqlitedb stores generic annotation tables in SQLite files and
// registers them as the "generic-seq-db" format.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/simonhull/annotkit/internal/generic"
	"github.com/simonhull/annotkit/internal/types"
)

// tableName is the table holding the generic rows.
const tableName = "generic_seq"

const schema = `
	CREATE TABLE IF NOT EXISTS generic_seq (
		id INTEGER PRIMARY KEY,
		onset_s REAL NULL,
		offset_s REAL NULL,
		onset_sample INTEGER NULL,
		offset_sample INTEGER NULL,
		label TEXT NOT NULL,
		annot_path TEXT NOT NULL,
		notated_path TEXT NULL,
		annot INTEGER NOT NULL,
		seq INTEGER NOT NULL
	)`

// Store reads and writes a generic table in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the table exists.
func Open(path string) (*Store, error) {
	db, err := open(path, false)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing database without modifying it.
// It fails with a *types.SchemaError when the database has no generic table.
func OpenReadOnly(path string) (*Store, error) {
	db, err := open(path, true)
	if err != nil {
		return nil, err
	}
	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, tableName).Scan(&n)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, &types.SchemaError{Path: path, Group: -1, Reason: fmt.Sprintf("missing table %q", tableName)}
	}
	return &Store{db: db}, nil
}

func open(path string, readOnly bool) (*sql.DB, error) {
	dsn, err := dataSource(path, readOnly)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// dataSource builds a SQLite URI for path. The path is made absolute and
// percent-escaped so '?', '#' and '%' stay part of the file name.
func dataSource(path string, readOnly bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}
	query := "_pragma=busy_timeout(5000)"
	if readOnly {
		query = "mode=ro&" + query
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: query}
	return u.String(), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored table with t in a single transaction.
func (s *Store) Save(ctx context.Context, t generic.Table) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM generic_seq`); err != nil {
		return fmt.Errorf("clear table: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO generic_seq
			(id, onset_s, offset_s, onset_sample, offset_sample, label, annot_path, notated_path, annot, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range t {
		notated := sql.NullString{String: r.NotatedPath, Valid: r.NotatedPath != ""}
		if _, err = stmt.ExecContext(ctx, i+1, r.OnsetS, r.OffsetS, r.OnsetSample, r.OffsetSample,
			r.Label, r.AnnotPath, notated, r.Annot, r.Seq); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load returns the stored table in insertion order.
func (s *Store) Load(ctx context.Context) (generic.Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT onset_s, offset_s, onset_sample, offset_sample, label, annot_path, notated_path, annot, seq
		FROM generic_seq
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var t generic.Table
	for rows.Next() {
		var r generic.Row
		var notated sql.NullString
		if err := rows.Scan(&r.OnsetS, &r.OffsetS, &r.OnsetSample, &r.OffsetSample,
			&r.Label, &r.AnnotPath, &notated, &r.Annot, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.NotatedPath = notated.String
		t = append(t, r)
	}
	return t, rows.Err()
}
