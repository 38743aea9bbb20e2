package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"clovermud/internal/account"
	"clovermud/internal/cli"
	"clovermud/internal/config"
	"clovermud/internal/console"
	"clovermud/internal/game"
	"clovermud/internal/storage"
	"clovermud/internal/storage/jsonfile"
	"clovermud/internal/storage/sqlite"
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

// run owns every deferred Close so they complete before main exits.
func run() int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if cErr := logFile.Close(); cErr != nil {
			fmt.Fprintf(os.Stderr, "close log: %v\n", cErr)
		}
	}()
	log.SetOutput(logFile)
	log.SetPrefix("clovermud ")

	store, err := openStore(cfg)
	if err != nil {
		log.Printf("open storage: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if cErr := store.Close(); cErr != nil {
			log.Printf("close storage: %v", cErr)
		}
	}()

	campaign := game.DefaultCampaign()
	if cfg.CampaignFile != "" {
		if campaign, err = game.LoadCampaign(cfg.CampaignFile); err != nil {
			log.Printf("load campaign: %v", err)
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	con := console.New(os.Stdin, os.Stdout, !cfg.NoColor)
	app := &cli.App{
		Engine:      game.NewEngine(campaign, con),
		Players:     account.NewDirectory(),
		Store:       store,
		Console:     con,
		DataDir:     cfg.DataDir,
		WelcomeFile: cfg.WelcomeFile,
	}

	log.Printf("session start: storage=%s data=%s", cfg.Storage, cfg.DataDir)
	if err := app.Run(context.Background()); err != nil {
		log.Printf("session ended: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Println("session end")
	return 0
}

func openLog(path string) (*os.File, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from local config
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return sqlite.Open(cfg.DBPath)
	default:
		return jsonfile.Open(cfg.DataDir)
	}
}
