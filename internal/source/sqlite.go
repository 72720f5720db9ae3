package source

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// SQLite pages records out of a SQLite table in id order. The cursor is
// the last id handed out, so rows inserted later are picked up by later
// pages.
type SQLite struct {
	db     *sql.DB
	cursor int64
	seq    int64
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := ConnectSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// ConnectSQLite opens the database and runs migrations.
func ConnectSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite source requires a path")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if _, err = db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return db, nil
}

// LoadMore implements scroller.Loader.
func (s *SQLite) LoadMore(ctx context.Context, count int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body, created_at FROM records WHERE id > ? ORDER BY id LIMIT ?`,
		s.cursor, count,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, count)
	for rows.Next() {
		var (
			id        int64
			body      string
			createdAt int64
		)
		if err := rows.Scan(&id, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, Record{
			Seq:       s.seq,
			Body:      body,
			CreatedAt: time.Unix(createdAt, 0),
		})
		s.cursor = id
		s.seq++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// SQLiteSeeder appends records to a database that stays open across
// batches.
type SQLiteSeeder struct {
	db    *sql.DB
	count int64
}

// OpenSQLiteSeeder connects once, applying migrations, and counts the
// records already stored.
func OpenSQLiteSeeder(ctx context.Context, path string) (*SQLiteSeeder, error) {
	db, err := ConnectSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		db.Close()
		return nil, fmt.Errorf("count records: %w", err)
	}
	return &SQLiteSeeder{db: db, count: count}, nil
}

// Count returns the number of stored records.
func (s *SQLiteSeeder) Count() int64 { return s.count }

// Append inserts bodies in one transaction.
func (s *SQLiteSeeder) Append(ctx context.Context, bodies []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (body, created_at) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, body := range bodies {
		if _, err := stmt.ExecContext(ctx, body, now); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.count += int64(len(bodies))
	return nil
}

func (s *SQLiteSeeder) Close() error {
	return s.db.Close()
}
