package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"clovermud/internal/game"
	"clovermud/internal/storage"
	"clovermud/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		s, err := Open(filepath.Join(t.TempDir(), "LoadData"))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return s
	})
}

func TestSaveFileLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Save(context.Background(), game.NewPlayer("Asta", game.Fire, "pw")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Asta_save.json")); err != nil {
		t.Errorf("Expected Asta_save.json: %v", err)
	}
	if err := s.SaveAll(context.Background(), nil); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "players_data.json"))
	if err != nil {
		t.Fatalf("Expected players_data.json: %v", err)
	}
	if string(b) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", b)
	}
}

func TestLoadLegacySave(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"name": "Yuno", "magic_type": "Wind", "password": "x", "level": 2, "experience": 50,
		"spells": [], "kingdoms_won": ["Clover"], "sword_awards": ["Demon Slayer"]}`
	if err := os.WriteFile(filepath.Join(dir, "Yuno_save.json"), []byte(legacy), 0o600); err != nil {
		t.Fatalf("Failed to write save: %v", err)
	}
	s, _ := Open(dir)

	p, err := s.Load(context.Background(), "Yuno")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Level != 2 || p.Kingdom != "" || p.Magic != 10 || p.MaxHP != 100 || p.MaxMana != 50 {
		t.Errorf("Expected defaults for missing fields, got %+v", p)
	}
	if p.Inventory[game.HealthPotion] != 2 || p.Inventory[game.ManaPotion] != 1 {
		t.Errorf("Expected default inventory, got %v", p.Inventory)
	}
}

func TestLoadCorruptSave(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Bad_save.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatalf("Failed to write save: %v", err)
	}
	s, _ := Open(dir)
	if _, err := s.Load(context.Background(), "Bad"); err == nil {
		t.Error("Expected decode error")
	}
}

func TestLoadAll_NullEntry(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "players_data.json"), []byte(`[null]`), 0o600); err != nil {
		t.Fatalf("Failed to write roster: %v", err)
	}
	s, _ := Open(dir)
	players, err := s.LoadAll(context.Background())
	if err == nil {
		t.Fatalf("Expected error for null roster entry, got %v", players)
	}
}
