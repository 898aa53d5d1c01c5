package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore is a Store over a single SQLite file. Several processes may
// open the same file; each instance writes under its own origin so the
// others can tell foreign writes from their own.
type SQLiteStore struct {
	db     *sql.DB
	origin string
	now    func() time.Time
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("kv: nil db")
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db, origin: uuid.NewString(), now: time.Now}, nil
}

// OpenSQLite opens path, applies migrations and returns a ready store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Origin() string {
	return s.origin
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv: get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE kv_revision SET value = value + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("kv: bump revision: %w", err)
	}
	var revision int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM kv_revision WHERE id = 1`).Scan(&revision); err != nil {
		return fmt.Errorf("kv: read revision: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, origin, revision, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			origin = excluded.origin,
			revision = excluded.revision,
			updated_at = excluded.updated_at`,
		key, value, s.origin, revision, s.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv: delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("kv: keys: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var key string
		if scanErr := rows.Scan(&key); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Changes(ctx context.Context, since int64) ([]Change, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value, origin, revision
		FROM kv WHERE revision > ? AND origin <> ?
		ORDER BY revision ASC`, since, s.origin)
	if err != nil {
		return nil, fmt.Errorf("kv: changes: %w", err)
	}
	defer rows.Close()

	out := make([]Change, 0)
	for rows.Next() {
		var c Change
		if scanErr := rows.Scan(&c.Key, &c.Value, &c.Origin, &c.Revision); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Revision(ctx context.Context) (int64, error) {
	var revision int64
	if err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_revision WHERE id = 1`).Scan(&revision); err != nil {
		return 0, fmt.Errorf("kv: revision: %w", err)
	}
	return revision, nil
}
