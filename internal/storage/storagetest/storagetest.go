// Package storagetest is a conformance suite shared by the storage backends.
package storagetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"clovermud/internal/game"
	"clovermud/internal/storage"
)

// Run exercises a fresh, empty store returned by open.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Run("LoadMissing", func(t *testing.T) {
		s := open(t)
		if _, err := s.Load(context.Background(), "Nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveLoad", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		p := game.NewPlayer("Asta", game.Fire, "pw")
		p.Level = 3
		p.Kingdom = game.Clover
		p.KingdomsWon = []game.Kingdom{game.Clover}
		p.SwordAwards = []game.Sword{game.DemonSlayer}
		p.Inventory[game.HealthPotion] = 0

		if err := s.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := s.Load(ctx, "Asta")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !reflect.DeepEqual(got, p) {
			t.Errorf("Loaded player differs:\n got %+v\nwant %+v", *got, *p)
		}

		p.Level = 4
		if err := s.Save(ctx, p); err != nil {
			t.Fatalf("Save again: %v", err)
		}
		got, _ = s.Load(ctx, "Asta")
		if got.Level != 4 {
			t.Errorf("Expected overwrite to level 4, got %d", got.Level)
		}
	})

	t.Run("RosterRoundTrip", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		players, err := s.LoadAll(ctx)
		if err != nil {
			t.Fatalf("LoadAll on empty store: %v", err)
		}
		if len(players) != 0 {
			t.Errorf("Expected empty roster, got %d", len(players))
		}

		want := []*game.PlayerState{
			game.NewPlayer("Yuno", game.Wind, "a"),
			game.NewPlayer("Noelle", game.Water, "b"),
			game.NewPlayer("Asta", game.Fire, "c"),
		}
		if err := s.SaveAll(ctx, want); err != nil {
			t.Fatalf("SaveAll: %v", err)
		}
		got, err := s.LoadAll(ctx)
		if err != nil {
			t.Fatalf("LoadAll: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Roster differs: got %d players, want %d", len(got), len(want))
		}

		if err := s.SaveAll(ctx, want[:1]); err != nil {
			t.Fatalf("SaveAll shrink: %v", err)
		}
		got, _ = s.LoadAll(ctx)
		if len(got) != 1 || got[0].Name != "Yuno" {
			t.Errorf("Expected roster of Yuno only, got %v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		if err := s.Save(ctx, game.NewPlayer("Luck", game.Lightning, "pw")); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := s.Delete(ctx, "Luck"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Load(ctx, "Luck"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := s.Delete(ctx, "Luck"); err != nil {
			t.Errorf("Expected deleting a missing save to succeed, got %v", err)
		}
	})

	t.Run("RejectsPathNames", func(t *testing.T) {
		s := open(t)
		if err := s.Save(context.Background(), game.NewPlayer("../evil", game.Fire, "pw")); err == nil {
			t.Error("Expected error for a name with a path")
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		s := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := s.Save(ctx, game.NewPlayer("Asta", game.Fire, "pw")); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}
