package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"clovermud/internal/account"
	"clovermud/internal/console"
	"clovermud/internal/game"
	"clovermud/internal/mapgen"
	"clovermud/internal/storage"
)

func (a *App) handleCreate(ctx context.Context) error {
	p, err := a.createPlayer(ctx)
	if err != nil {
		return err
	}
	if p != nil {
		a.active = p
	}
	return nil
}

// createPlayer prompts for a new character. It returns nil without an error
// when the directory rejects the details.
func (a *App) createPlayer(ctx context.Context) (*game.PlayerState, error) {
	name, err := a.prompt("Enter your name: ")
	if err != nil {
		return nil, err
	}
	affinity, err := a.prompt("Choose your magic type (" + affinityList() + "): ")
	if err != nil {
		return nil, err
	}
	secret, err := a.prompt("Enter your password: ")
	if err != nil {
		return nil, err
	}

	p, err := a.Players.Create(ctx, name, affinity, secret)
	switch {
	case errors.Is(err, account.ErrDuplicateName):
		a.Console.Show("Username already taken. Please choose a different name.")
		return nil, nil
	case errors.Is(err, account.ErrInvalidAffinity):
		a.Console.Show("Invalid magic type. Please choose from: " + affinityList())
		return nil, nil
	case errors.Is(err, account.ErrInvalidName):
		a.Console.Show("Invalid name. Names must not be empty or contain path characters.")
		return nil, nil
	case err != nil:
		return nil, err
	}
	a.Console.Show(fmt.Sprintf("Welcome to the %s MUD, %s! You are a %s mage.", a.Engine.Campaign.Title, p.Name, p.Affinity))
	return p, nil
}

func (a *App) handleLogin(ctx context.Context) error {
	for {
		name, err := a.prompt("Enter your name (or type 'back' to return): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(name, "back") {
			return nil
		}
		secret, err := a.prompt("Enter your password: ")
		if err != nil {
			return err
		}

		p, err := a.Players.Login(ctx, name, secret)
		switch {
		case err == nil:
			a.Console.Show(fmt.Sprintf("Welcome back, %s!", p.Name))
			a.active = p
			return nil
		case errors.Is(err, account.ErrWrongPassword):
			a.Console.Show("Incorrect password. Please try again.")
		case errors.Is(err, account.ErrPlayerNotFound):
			a.Console.Show("Player not found.")
		default:
			return err
		}

		retry, err := a.prompt("Would you like to try again (T) or create a new character (N)? ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(retry, "n") {
			continue
		}
		p, err = a.createPlayer(ctx)
		if err != nil {
			return err
		}
		if p != nil {
			a.active = p
			return nil
		}
	}
}

func (a *App) handleKingdom(ctx context.Context) error {
	p := a.active
	if p == nil {
		a.Console.Show(noActivePlayer)
		return nil
	}
	a.Console.Show("\nChoose the kingdom you want to battle in:")
	kingdoms := game.AvailableKingdoms(p)
	if len(kingdoms) == 0 {
		a.Console.Show("You have already won all kingdoms. There are no more battles.")
		return nil
	}
	for i, k := range kingdoms {
		a.Console.Show(fmt.Sprintf("%d. %s", i+1, k))
	}
	in, err := a.prompt(fmt.Sprintf("Enter your choice (1-%d): ", len(kingdoms)))
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(in)
	if err != nil || n < 1 || n > len(kingdoms) {
		a.Console.Show("Invalid kingdom choice.")
		return nil
	}
	p.Kingdom = kingdoms[n-1]
	a.Console.Show(fmt.Sprintf("%s, you have chosen the %s kingdom for battle!", p.Name, p.Kingdom))
	_, err = a.Engine.Battle(ctx, p)
	return err
}

func (a *App) handleList(ctx context.Context) error {
	players, err := a.Players.All(ctx)
	if err != nil {
		return err
	}
	a.Console.Show("Current Players:")
	for _, p := range players {
		a.Console.Show(fmt.Sprintf("- %s, %s mage", p.Name, p.Affinity))
	}
	return nil
}

func (a *App) handleLeaderboard(ctx context.Context) error {
	players, err := a.Players.Leaderboard(ctx)
	if err != nil {
		return err
	}
	a.Console.Show("\nLeaderboard:")
	for i, p := range players {
		swords := make([]string, len(p.SwordAwards))
		for j, s := range p.SwordAwards {
			swords[j] = string(s)
		}
		kingdoms := make([]string, len(p.KingdomsWon))
		for j, k := range p.KingdomsWon {
			kingdoms[j] = string(k)
		}
		a.Console.Show(fmt.Sprintf("%d. %s - Level: %d, Swords: %s, Kingdoms Conquered: %s",
			i+1, p.Name, p.Level, joinOrNone(swords), joinOrNone(kingdoms)))
	}
	return nil
}

func (a *App) handleSave(ctx context.Context) error {
	if a.active == nil {
		a.Console.Show(noActivePlayer)
		return nil
	}
	if err := a.Store.Save(ctx, a.active); err != nil {
		return fmt.Errorf("save %s: %w", a.active.Name, err)
	}
	a.Console.Showf(console.Bold+console.Green, "Game saved successfully.")
	return nil
}

func (a *App) handleLoad(ctx context.Context) error {
	name, err := a.prompt("Enter your name to load the game: ")
	if err != nil {
		return err
	}
	if p, ok, err := a.Players.Lookup(ctx, name); err != nil {
		return err
	} else if ok {
		a.Console.Show(fmt.Sprintf("Player %s is already loaded.", name))
		a.active = p
		return nil
	}

	p, err := a.Store.Load(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		a.Console.Show(fmt.Sprintf("No saved game found for %s.", name))
		return nil
	}
	if err != nil {
		return err
	}
	if err := a.Players.Adopt(ctx, p); err != nil {
		return err
	}
	a.Console.Show(fmt.Sprintf("Game loaded successfully for %s.", name))
	a.active = p
	return nil
}

func (a *App) handleDelete(ctx context.Context) error {
	name, err := a.prompt("Enter the name of the player to delete: ")
	if err != nil {
		return err
	}
	p, ok, err := a.Players.Lookup(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		a.Console.Show(fmt.Sprintf("No player found with the name %s.", name))
		return nil
	}
	if err := a.Store.Delete(ctx, p.Name); err != nil {
		return fmt.Errorf("delete %s: %w", p.Name, err)
	}
	if _, err := a.Players.Remove(ctx, p.Name); err != nil {
		return err
	}
	if a.active == p {
		a.active = nil
	}
	a.Console.Show(fmt.Sprintf("Player data for %s deleted successfully.", name))
	return nil
}

func (a *App) handleQuest(ctx context.Context) error {
	if a.active == nil {
		a.Console.Show(noActivePlayer)
		return nil
	}
	_, err := a.Engine.Quest(ctx, a.active)
	return err
}

func (a *App) handleMap(context.Context) error {
	p := a.active
	if p == nil {
		a.Console.Show(noActivePlayer)
		return nil
	}
	if err := storage.ValidName(p.Name); err != nil {
		return err
	}
	b, err := mapgen.Generate(p, a.Engine.Campaign.Title)
	if err != nil {
		return fmt.Errorf("map for %s: %w", p.Name, err)
	}
	path := filepath.Join(a.DataDir, p.Name+"_map.pdf")
	if err := os.MkdirAll(a.DataDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	a.Console.Show("Conquest map written to " + path)
	return nil
}

func (a *App) handleExit(ctx context.Context) error {
	players, err := a.Players.All(ctx)
	if err != nil {
		return err
	}
	if err := a.Store.SaveAll(ctx, players); err != nil {
		a.Console.Showf(console.Red, "Could not save players' data: %v", err)
		return fmt.Errorf("save roster: %w", err)
	}
	a.Console.Show("Players' data saved successfully.")
	a.Console.Show("Thanks for playing! Goodbye.")
	return errExit
}

func affinityList() string {
	names := make([]string, len(game.Affinities))
	for i, af := range game.Affinities {
		names[i] = string(af)
	}
	return strings.Join(names, ", ")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
