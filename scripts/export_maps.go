// export_maps reads the saved roster from a data directory and writes one
// conquest map PDF per player to <data-dir>/maps/.
// Usage: go run scripts/export_maps.go <data-dir>
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clovermud/internal/game"
	"clovermud/internal/mapgen"
	"clovermud/internal/storage"
	"clovermud/internal/storage/jsonfile"
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/export_maps.go <data-dir>\n")
		return 1
	}
	dataDir := filepath.Clean(os.Args[1])
	if strings.Contains(dataDir, "..") {
		fmt.Fprintf(os.Stderr, "path must not escape current directory\n")
		return 1
	}
	store, err := jsonfile.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", dataDir, err)
		return 1
	}
	players, err := store.LoadAll(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load roster: %v\n", err)
		return 1
	}
	if len(players) == 0 {
		fmt.Fprintf(os.Stderr, "no players in %s\n", dataDir)
		return 1
	}

	outDir := filepath.Join(dataDir, "maps")
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		return 1
	}
	title := game.DefaultCampaign().Title
	for _, p := range players {
		if err := storage.ValidName(p.Name); err != nil {
			fmt.Fprintf(os.Stderr, "skip %q: %v\n", p.Name, err)
			continue
		}
		outPath := filepath.Join(outDir, p.Name+"_map.pdf")
		if err := writeMap(p, title, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
			return 1
		}
		fmt.Println(outPath)
	}
	return 0
}

func writeMap(p *game.PlayerState, title, path string) error {
	b, err := mapgen.Generate(p, title)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
