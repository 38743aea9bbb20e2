// Package sqlite provides a SQLite-backed player store. Each player is one
// row holding the same JSON document the file store writes.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clovermud/internal/game"
	"clovermud/internal/roster"
	"clovermud/internal/storage"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `CREATE TABLE IF NOT EXISTS players (
	name_key   TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	data       TEXT NOT NULL,
	in_roster  INTEGER NOT NULL DEFAULT 0,
	roster_pos INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL
);`

// Store persists players in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Load(ctx context.Context, name string) (*game.PlayerState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidName(name); err != nil {
		return nil, err
	}
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM players WHERE name_key = ?`, roster.Key(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return decode(name, data)
}

func (s *Store) Save(ctx context.Context, p *game.PlayerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return upsert(ctx, s.sqlDB, p)
}

// LoadAll returns the roster written by the last SaveAll, in its order.
func (s *Store) LoadAll(ctx context.Context) ([]*game.PlayerState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, data FROM players WHERE in_roster = 1 ORDER BY roster_pos`)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	defer rows.Close()

	var players []*game.PlayerState
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("scan roster: %w", err)
		}
		p, err := decode(name, data)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return players, nil
}

// SaveAll writes every player and makes exactly this set the roster.
func (s *Store) SaveAll(ctx context.Context, players []*game.PlayerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE players SET in_roster = 0`); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	for i, p := range players {
		if err := upsert(ctx, tx, p); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE players SET in_roster = 1, roster_pos = ? WHERE name_key = ?`,
			i, roster.Key(p.Name),
		); err != nil {
			return fmt.Errorf("mark %s in roster: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster save: %w", err)
	}
	return nil
}

// Delete removes the player's record. A missing record is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM players WHERE name_key = ?`, roster.Key(name)); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, p *game.PlayerState) error {
	if err := storage.ValidName(p.Name); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.Name, err)
	}
	_, err = db.ExecContext(
		ctx,
		`INSERT INTO players (name_key, name, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name_key) DO UPDATE SET
		   name = excluded.name,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		roster.Key(p.Name),
		p.Name,
		string(data),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", p.Name, err)
	}
	return nil
}

func decode(name, data string) (*game.PlayerState, error) {
	var p game.PlayerState
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &p, nil
}
