// Package jsonfile stores players as JSON files in a data directory: one
// <name>_save.json per explicit save and players_data.json for the roster.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"clovermud/internal/game"
	"clovermud/internal/storage"
)

const rosterFile = "players_data.json"

// Store persists players under Dir.
type Store struct {
	Dir string
}

var _ storage.Store = (*Store)(nil)

// Open creates dir if needed.
func Open(dir string) (*Store, error) {
	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{Dir: cleanDir}, nil
}

// SavePath is where Save writes the player's record.
func (s *Store) SavePath(name string) string {
	return filepath.Join(s.Dir, name+"_save.json")
}

func (s *Store) Load(ctx context.Context, name string) (*game.PlayerState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidName(name); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.SavePath(name)) //nolint:gosec // name validated above
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save for %s: %w", name, err)
	}
	var p game.PlayerState
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode save for %s: %w", name, err)
	}
	return &p, nil
}

func (s *Store) Save(ctx context.Context, p *game.PlayerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidName(p.Name); err != nil {
		return err
	}
	return writeJSON(s.SavePath(p.Name), p)
}

// LoadAll returns nil when no roster has been written yet.
func (s *Store) LoadAll(ctx context.Context) ([]*game.PlayerState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(s.Dir, rosterFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var players []*game.PlayerState
	if err := json.Unmarshal(b, &players); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("decode roster: entry %d is null", i)
		}
	}
	return players, nil
}

func (s *Store) SaveAll(ctx context.Context, players []*game.PlayerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if players == nil {
		players = []*game.PlayerState{}
	}
	return writeJSON(filepath.Join(s.Dir, rosterFile), players)
}

// Delete removes the player's save file. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidName(name); err != nil {
		return err
	}
	err := os.Remove(s.SavePath(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save for %s: %w", name, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// writeJSON replaces path atomically so a crash never leaves half a save.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
