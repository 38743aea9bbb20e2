// Package cli is the main menu: it routes menu choices to the account
// directory, the battle engine and the save store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"clovermud/internal/account"
	"clovermud/internal/console"
	"clovermud/internal/game"
	"clovermud/internal/storage"
)

const banner = `
__________.__                 __            .__
\______   \  | _____    ____ |  | __   ____ |  |   _______  __ ___________
 |    |  _/  | \__  \ _/ ___\|  |/ / _/ ___\|  |  /  _ \  \/ // __ \_  __ \
 |    |   \  |__/ __ \\  \___|    <  \  \___|  |_(  <_> )   /\  ___/|  | \/
 |______  /____(____  /\___  >__|_ \  \___  >____/\____/ \_/  \___  >__|
        \/          \/     \/     \/      \/                      \/
`

const noActivePlayer = "No active player. Please create or log in first."

// App is one interactive session.
type App struct {
	Engine      *game.Engine
	Players     *account.Directory
	Store       storage.Store
	Console     *console.Console
	DataDir     string
	WelcomeFile string

	active *game.PlayerState
}

type route struct {
	key     string
	label   string
	style   string
	handler func(ctx context.Context) error
}

// errExit ends the menu loop after the roster has been saved.
var errExit = errors.New("exit")

func (a *App) routes() []route {
	return []route{
		{"1", "Create a new player", console.Blue, a.handleCreate},
		{"2", "Log in", console.Blue, a.handleLogin},
		{"3", "Choose Kingdom (for active player)", console.Blue, a.handleKingdom},
		{"4", "List players", console.Blue, a.handleList},
		{"5", "Leaderboard", console.Blue, a.handleLeaderboard},
		{"6", "Save Game (active player)", console.Blue, a.handleSave},
		{"7", "Load Game", console.Blue, a.handleLoad},
		{"8", "Delete Player Data", console.Blue, a.handleDelete},
		{"9", "Embark on a Quest", console.Blue, a.handleQuest},
		{"10", "Export Conquest Map (active player)", console.Blue, a.handleMap},
		{"11", "Exit", console.Red, a.handleExit},
	}
}

// Active returns the player the menu currently acts for.
func (a *App) Active() *game.PlayerState { return a.active }

// Run loads the saved roster, shows the intro and serves the menu until the
// player exits or input ends. Either way the roster is saved before returning.
func (a *App) Run(ctx context.Context) error {
	a.loadRoster(ctx)
	a.intro()

	routes := a.routes()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.showMenu(routes)
		choice, err := a.prompt("Enter your choice: ")
		if err != nil {
			return a.endOfInput(ctx, err)
		}

		var handler func(context.Context) error
		for _, r := range routes {
			if r.key == choice {
				handler = r.handler
				break
			}
		}
		if handler == nil {
			a.Console.Showf(console.Red, "Invalid choice. Please try again.")
			continue
		}

		err = handler(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			return nil
		case errors.Is(err, io.EOF):
			return a.endOfInput(ctx, err)
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			log.Printf("menu %s: %v", choice, err)
			a.Console.Showf(console.Red, "Error: %v", err)
		}
	}
}

func (a *App) endOfInput(ctx context.Context, err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	if exitErr := a.handleExit(ctx); !errors.Is(exitErr, errExit) {
		return exitErr
	}
	return nil
}

func (a *App) loadRoster(ctx context.Context) {
	players, err := a.Store.LoadAll(ctx)
	if err != nil {
		log.Printf("load roster: %v", err)
		a.Console.Show(fmt.Sprintf("An error occurred while loading players' data: %v", err))
		return
	}
	if err := a.Players.Replace(ctx, players); err != nil {
		log.Printf("load roster: %v", err)
		a.Console.Show(fmt.Sprintf("An error occurred while loading players' data: %v", err))
		return
	}
	log.Printf("roster loaded: %d players", len(players))
}

func (a *App) intro() {
	a.Console.Show(banner)
	if story := strings.TrimSpace(a.Engine.Campaign.Story); story != "" {
		a.Console.Showf(console.Bold+console.Green, "\n%s\n", story)
	}
	if a.WelcomeFile == "" {
		return
	}
	b, err := os.ReadFile(filepath.Clean(a.WelcomeFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		log.Printf("welcome file: %v", err)
	default:
		a.Console.Showf(console.Bold+console.Green, "%s", string(b))
	}
}

func (a *App) showMenu(routes []route) {
	a.Console.Show("\n" + a.Console.Style(console.Bold, "MAIN MENU"))
	for _, r := range routes {
		a.Console.Show(r.key + ". " + a.Console.Style(r.style, r.label))
	}
}

func (a *App) prompt(text string) (string, error) {
	s, err := a.Console.Prompt(text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
