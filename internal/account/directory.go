// Package account manages player registration, login and the leaderboard
// over the session roster.
package account

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"clovermud/internal/game"
	"clovermud/internal/roster"
	"clovermud/internal/storage"
)

var (
	ErrDuplicateName   = errors.New("username already taken")
	ErrInvalidAffinity = errors.New("invalid magic type")
	ErrInvalidName     = errors.New("invalid player name")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrWrongPassword   = errors.New("incorrect password")
)

// Directory owns the players known to this session.
type Directory struct {
	Players roster.Store[*game.PlayerState]
}

// NewDirectory returns a directory backed by an in-memory roster.
func NewDirectory() *Directory {
	return &Directory{Players: roster.NewMemoryStore[*game.PlayerState]()}
}

// Create registers a new level 1 player. Nothing is added on error.
func (d *Directory) Create(ctx context.Context, name, affinity, secret string) (*game.PlayerState, error) {
	name = strings.TrimSpace(name)
	if err := storage.ValidName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	_, exists, err := d.Players.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	a, ok := game.ParseAffinity(affinity)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAffinity, affinity)
	}
	p := game.NewPlayer(name, a, secret)
	if err := d.Players.Put(ctx, name, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Login returns the player when name matches (ignoring case) and secret is equal.
func (d *Directory) Login(ctx context.Context, name, secret string) (*game.PlayerState, error) {
	p, ok, err := d.Players.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if !p.CheckPassword(secret) {
		return nil, ErrWrongPassword
	}
	return p, nil
}

// Lookup returns the loaded player with this name, if any.
func (d *Directory) Lookup(ctx context.Context, name string) (*game.PlayerState, bool, error) {
	return d.Players.Get(ctx, strings.TrimSpace(name))
}

// Adopt adds a player read from storage, replacing any loaded player with the same name.
func (d *Directory) Adopt(ctx context.Context, p *game.PlayerState) error {
	if p == nil {
		return errors.New("adopt: nil player")
	}
	return d.Players.Put(ctx, p.Name, p)
}

// Replace swaps the whole roster for players, keeping their order. The
// roster is left as it was when players holds a nil entry.
func (d *Directory) Replace(ctx context.Context, players []*game.PlayerState) error {
	for i, p := range players {
		if p == nil {
			return fmt.Errorf("replace roster: entry %d is nil", i)
		}
	}
	current, err := d.Players.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range current {
		if _, err := d.Players.Delete(ctx, p.Name); err != nil {
			return err
		}
	}
	for _, p := range players {
		if err := d.Adopt(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// All lists players in the order they joined the session.
func (d *Directory) All(ctx context.Context) ([]*game.PlayerState, error) {
	return d.Players.List(ctx)
}

// Remove drops a player from the session. It reports whether one was loaded.
func (d *Directory) Remove(ctx context.Context, name string) (bool, error) {
	return d.Players.Delete(ctx, strings.TrimSpace(name))
}

// Leaderboard ranks players by swords earned, then level. Ties keep roster order.
func (d *Directory) Leaderboard(ctx context.Context) ([]*game.PlayerState, error) {
	players, err := d.Players.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if len(a.SwordAwards) != len(b.SwordAwards) {
			return len(a.SwordAwards) > len(b.SwordAwards)
		}
		return a.Level > b.Level
	})
	return players, nil
}
