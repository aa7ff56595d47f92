package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/model"
)

// SQLiteStore implements Store using an in-memory SQLite database. The pool
// is pinned to one connection because every :memory: connection opens its
// own database; the data lives as long as the process.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens an empty in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLiteStore{db: db, now: time.Now}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS strings (
		value                   TEXT PRIMARY KEY,
		id                      TEXT NOT NULL,
		length                  INTEGER NOT NULL,
		is_palindrome           INTEGER NOT NULL,
		unique_characters       INTEGER NOT NULL,
		word_count              INTEGER NOT NULL,
		character_frequency_map TEXT NOT NULL,
		created_at              TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_strings_length ON strings(length);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, value string) (*model.StringRecord, error) {
	if err := checkValue(value); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM strings WHERE value = ?`, value).Scan(&exists)
	switch {
	case err == nil:
		return nil, alreadyExists(value)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, errors.Wrap(err, "lookup string")
	}

	rec := newRecord(value, s.now())
	freqJSON, err := json.Marshal(rec.Properties.CharacterFrequencyMap)
	if err != nil {
		return nil, errors.Wrap(err, "encode frequency map")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO strings (value, id, length, is_palindrome, unique_characters, word_count, character_frequency_map, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Value, rec.ID, rec.Properties.Length, rec.Properties.IsPalindrome,
		rec.Properties.UniqueCharacters, rec.Properties.WordCount,
		string(freqJSON), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, errors.Wrap(err, "insert string")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &rec, nil
}

const selectColumns = `SELECT value, id, length, is_palindrome, unique_characters, word_count, character_frequency_map, created_at FROM strings`

func (s *SQLiteStore) Get(ctx context.Context, value string) (*model.StringRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE value = ?`, value)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(value)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, value string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM strings WHERE value = ?`, value)
	if err != nil {
		return errors.Wrap(err, "delete string")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(value)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]model.StringRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.StringRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strings`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (model.StringRecord, error) {
	var rec model.StringRecord
	var freqJSON, createdAt string

	err := row.Scan(
		&rec.Value, &rec.ID, &rec.Properties.Length, &rec.Properties.IsPalindrome,
		&rec.Properties.UniqueCharacters, &rec.Properties.WordCount,
		&freqJSON, &createdAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Properties.SHA256Hash = rec.ID
	if err := json.Unmarshal([]byte(freqJSON), &rec.Properties.CharacterFrequencyMap); err != nil {
		return rec, errors.Wrap(err, "decode frequency map")
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return rec, errors.Wrap(err, "parse created_at")
	}

	return rec, nil
}
