// Package storage defines how player records are persisted between sessions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"clovermud/internal/game"
)

// ErrNotFound is returned by Load when no saved game exists for a name.
var ErrNotFound = errors.New("no saved game")

// Store persists individual saves and the aggregate roster written on exit.
type Store interface {
	Load(ctx context.Context, name string) (*game.PlayerState, error)
	Save(ctx context.Context, p *game.PlayerState) error
	LoadAll(ctx context.Context) ([]*game.PlayerState, error)
	SaveAll(ctx context.Context, players []*game.PlayerState) error
	Delete(ctx context.Context, name string) error
	Close() error
}

// ValidName rejects names that cannot be used as a record key or file name.
func ValidName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("player name %q is not allowed", name)
	}
	return nil
}
