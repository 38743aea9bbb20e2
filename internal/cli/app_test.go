package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clovermud/internal/account"
	"clovermud/internal/console"
	"clovermud/internal/game"
	"clovermud/internal/storage"
	"clovermud/internal/storage/jsonfile"
)

// fixedRand always draws the same values.
type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) Intn(n int) int   { return r.n % n }
func (r fixedRand) Float64() float64 { return r.f }

func testApp(t *testing.T, dir string, r game.Rand, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	store, err := jsonfile.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var out bytes.Buffer
	con := console.New(strings.NewReader(strings.Join(input, "\n")+"\n"), &out, false)
	eng := game.NewEngine(nil, con)
	eng.Rand = r
	return &App{
		Engine:  eng,
		Players: account.NewDirectory(),
		Store:   store,
		Console: con,
		DataDir: dir,
	}, &out
}

func run(t *testing.T, app *App) {
	t.Helper()
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_CreateAndExitSavesRoster(t *testing.T) {
	dir := t.TempDir()
	app, out := testApp(t, dir, fixedRand{}, "1", "Asta", "fire", "pw", "11")
	run(t, app)

	if !strings.Contains(out.String(), "Welcome to the Black Clover MUD, Asta! You are a Fire mage.") {
		t.Errorf("missing welcome line in:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Thanks for playing! Goodbye.") {
		t.Error("missing goodbye")
	}
	if app.Active() == nil || app.Active().Name != "Asta" {
		t.Errorf("active = %+v, want Asta", app.Active())
	}
	b, err := os.ReadFile(filepath.Join(dir, "players_data.json"))
	if err != nil {
		t.Fatalf("roster not written: %v", err)
	}
	if !strings.Contains(string(b), `"Asta"`) {
		t.Errorf("roster = %s", b)
	}
}

func TestRun_EndOfInputExits(t *testing.T) {
	dir := t.TempDir()
	app, out := testApp(t, dir, fixedRand{}, "1", "Yuno", "Wind", "pw")
	run(t, app)
	if !strings.Contains(out.String(), "Players' data saved successfully.") {
		t.Error("roster not saved on end of input")
	}
	if _, err := os.Stat(filepath.Join(dir, "players_data.json")); err != nil {
		t.Errorf("roster file: %v", err)
	}
}

func TestRun_InvalidChoice(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "42", "11")
	run(t, app)
	if !strings.Contains(out.String(), "Invalid choice. Please try again.") {
		t.Error("expected invalid choice message")
	}
}

func TestRun_CreateRejections(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{},
		"1", "Asta", "fire", "pw",
		"1", "asta", "water", "pw",
		"1", "Noelle", "Shadow", "pw",
		"11")
	run(t, app)
	s := out.String()
	if !strings.Contains(s, "Username already taken") {
		t.Error("expected duplicate name message")
	}
	if !strings.Contains(s, "Invalid magic type. Please choose from: Fire, Water, Wind, Earth, Lightning") {
		t.Error("expected invalid magic type message")
	}
	players, _ := app.Players.All(context.Background())
	if len(players) != 1 {
		t.Errorf("players = %d, want 1", len(players))
	}
}

func TestRun_NoActivePlayer(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "3", "6", "9", "10", "11")
	run(t, app)
	if n := strings.Count(out.String(), noActivePlayer); n != 4 {
		t.Errorf("no-active messages = %d, want 4", n)
	}
}

func TestRun_LoginRetryThenBack(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{},
		"1", "Asta", "Fire", "pw",
		"2", "Asta", "wrong", "T", "Nobody", "x", "T", "back",
		"11")
	run(t, app)
	s := out.String()
	if !strings.Contains(s, "Incorrect password. Please try again.") {
		t.Error("expected wrong password message")
	}
	if !strings.Contains(s, "Player not found.") {
		t.Error("expected not found message")
	}
}

func TestRun_LoginFallsBackToCreate(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{},
		"2", "Finral", "pw", "N", "Finral", "Earth", "pw",
		"11")
	run(t, app)
	if !strings.Contains(out.String(), "Welcome to the Black Clover MUD, Finral!") {
		t.Error("expected created character")
	}
	if app.Active() == nil || app.Active().Affinity != game.Earth {
		t.Errorf("active = %+v", app.Active())
	}
}

func TestRun_LoginSucceeds(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{},
		"1", "Asta", "Fire", "pw",
		"1", "Yuno", "Wind", "pw2",
		"2", "ASTA", "pw",
		"11")
	run(t, app)
	if !strings.Contains(out.String(), "Welcome back, Asta!") {
		t.Error("expected welcome back")
	}
	if app.Active().Name != "Asta" {
		t.Errorf("active = %s, want Asta", app.Active().Name)
	}
}

func TestRun_SaveLoadAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	first, out := testApp(t, dir, fixedRand{}, "1", "Asta", "Fire", "pw", "6", "7", "Asta", "11")
	run(t, first)
	if !strings.Contains(out.String(), "Game saved successfully.") {
		t.Error("expected save message")
	}
	if !strings.Contains(out.String(), "Player Asta is already loaded.") {
		t.Error("expected already loaded message")
	}

	// Drop the roster so the next session has to read the save file.
	if err := os.Remove(filepath.Join(dir, "players_data.json")); err != nil {
		t.Fatal(err)
	}
	second, out2 := testApp(t, dir, fixedRand{}, "7", "Asta", "7", "Nobody", "11")
	run(t, second)
	if !strings.Contains(out2.String(), "Game loaded successfully for Asta.") {
		t.Errorf("expected load message in:\n%s", out2.String())
	}
	if !strings.Contains(out2.String(), "No saved game found for Nobody.") {
		t.Error("expected missing save message")
	}
	if second.Active() == nil || second.Active().Name != "Asta" {
		t.Errorf("active = %+v", second.Active())
	}
}

func TestRun_RosterRestoredOnStart(t *testing.T) {
	dir := t.TempDir()
	run(t, mustApp(t, dir, "1", "Asta", "Fire", "pw", "11"))

	app, out := testApp(t, dir, fixedRand{}, "4", "11")
	run(t, app)
	if !strings.Contains(out.String(), "- Asta, Fire mage") {
		t.Errorf("list missing Asta:\n%s", out.String())
	}
}

func mustApp(t *testing.T, dir string, input ...string) *App {
	t.Helper()
	app, _ := testApp(t, dir, fixedRand{}, input...)
	return app
}

func TestRun_Delete(t *testing.T) {
	dir := t.TempDir()
	app, out := testApp(t, dir, fixedRand{},
		"1", "Asta", "Fire", "pw", "6",
		"8", "asta",
		"8", "Asta",
		"11")
	run(t, app)
	s := out.String()
	if !strings.Contains(s, "Player data for asta deleted successfully.") {
		t.Error("expected delete message")
	}
	if !strings.Contains(s, "No player found with the name Asta.") {
		t.Error("expected second delete to miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "Asta_save.json")); !os.IsNotExist(err) {
		t.Errorf("save file still present: %v", err)
	}
	if app.Active() != nil {
		t.Error("deleted player is still active")
	}
}

func TestRun_Leaderboard(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "5", "11")
	ctx := context.Background()
	noelle := game.NewPlayer("Noelle", game.Water, "pw")
	noelle.SwordAwards = []game.Sword{game.DemonSlayer}
	noelle.KingdomsWon = []game.Kingdom{game.Clover}
	roster := []*game.PlayerState{
		game.NewPlayer("Asta", game.Fire, "pw"),
		game.NewPlayer("Yuno", game.Wind, "pw"),
		noelle,
	}
	if err := app.Store.SaveAll(ctx, roster); err != nil {
		t.Fatal(err)
	}
	run(t, app)

	s := out.String()
	want := "1. Noelle - Level: 1, Swords: Demon Slayer, Kingdoms Conquered: Clover"
	if !strings.Contains(s, want) {
		t.Errorf("leaderboard missing %q in:\n%s", want, s)
	}
	if !strings.Contains(s, "2. Asta - Level: 1, Swords: None, Kingdoms Conquered: None") {
		t.Error("expected roster order for tied players")
	}
}

func TestRun_QuestSuccess(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{f: 0}, "1", "Asta", "Fire", "pw", "9", "yes", "11")
	run(t, app)
	if !strings.Contains(out.String(), "Quest successful!") {
		t.Error("expected quest success")
	}
	if app.Active().Experience != 50 {
		t.Errorf("experience = %d, want 50", app.Active().Experience)
	}
}

func TestRun_BattleFlee(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{f: 0}, "1", "Asta", "Fire", "pw", "3", "2", "5", "11")
	run(t, app)
	s := out.String()
	if !strings.Contains(s, "Asta, you have chosen the Diamond kingdom for battle!") {
		t.Errorf("kingdom choice missing:\n%s", s)
	}
	if !strings.Contains(s, "You managed to flee from the battle!") {
		t.Error("expected flee")
	}
	if app.Active().Kingdom != game.Diamond {
		t.Errorf("kingdom = %s", app.Active().Kingdom)
	}
}

func TestRun_InvalidKingdom(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "1", "Asta", "Fire", "pw", "3", "9", "11")
	run(t, app)
	if !strings.Contains(out.String(), "Invalid kingdom choice.") {
		t.Error("expected invalid kingdom message")
	}
}

func TestRun_AllKingdomsWon(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "2", "Asta", "pw", "3", "11")
	ctx := context.Background()
	p, err := app.Players.Create(ctx, "Asta", "Fire", "pw")
	if err != nil {
		t.Fatal(err)
	}
	p.KingdomsWon = append([]game.Kingdom(nil), game.Kingdoms...)
	// Run replaces the directory with the (empty) stored roster, so save it first.
	if err := app.Store.SaveAll(ctx, []*game.PlayerState{p}); err != nil {
		t.Fatal(err)
	}
	run(t, app)
	if !strings.Contains(out.String(), "You have already won all kingdoms.") {
		t.Errorf("expected no more battles:\n%s", out.String())
	}
}

func TestRun_ExportMap(t *testing.T) {
	dir := t.TempDir()
	app, out := testApp(t, dir, fixedRand{}, "1", "Asta", "Fire", "pw", "10", "11")
	run(t, app)
	path := filepath.Join(dir, "Asta_map.pdf")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("map not written: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("map is not a PDF")
	}
	if !strings.Contains(out.String(), "Conquest map written to") {
		t.Error("expected export message")
	}
}

func TestRun_WelcomeFile(t *testing.T) {
	dir := t.TempDir()
	welcome := filepath.Join(dir, "welcome.txt")
	if err := os.WriteFile(welcome, []byte("Hello, Magic Knight!"), 0o600); err != nil {
		t.Fatal(err)
	}
	app, out := testApp(t, dir, fixedRand{}, "11")
	app.WelcomeFile = welcome
	run(t, app)
	s := out.String()
	if !strings.Contains(s, "Hello, Magic Knight!") {
		t.Error("welcome file not shown")
	}
	if !strings.Contains(s, "aspiring to become the Wizard King") {
		t.Error("story not shown")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	app, _ := testApp(t, t.TempDir(), fixedRand{}, "11")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestRun_NullRosterEntryShowsMessage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "players_data.json"), []byte(`[null]`), 0o600); err != nil {
		t.Fatal(err)
	}
	app, out := testApp(t, dir, fixedRand{}, "4", "11")
	run(t, app)
	if !strings.Contains(out.String(), "An error occurred while loading players' data") {
		t.Errorf("expected load error message in:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Thanks for playing! Goodbye.") {
		t.Error("session did not continue after a bad roster")
	}
}

// failingDelete is a store whose Delete always fails.
type failingDelete struct {
	storage.Store
}

func (failingDelete) Delete(context.Context, string) error {
	return errors.New("disk unavailable")
}

func TestRun_DeleteFailureKeepsPlayer(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "1", "Asta", "Fire", "pw", "8", "Asta", "11")
	app.Store = failingDelete{Store: app.Store}
	run(t, app)

	if !strings.Contains(out.String(), "disk unavailable") {
		t.Errorf("expected delete error in:\n%s", out.String())
	}
	if strings.Contains(out.String(), "deleted successfully") {
		t.Error("delete reported success")
	}
	if _, ok, _ := app.Players.Lookup(context.Background(), "Asta"); !ok {
		t.Error("player removed from roster after failed delete")
	}
	if app.Active() == nil || app.Active().Name != "Asta" {
		t.Errorf("active = %+v, want Asta", app.Active())
	}
}

func TestRun_CreateRejectsPathName(t *testing.T) {
	app, out := testApp(t, t.TempDir(), fixedRand{}, "1", "a/b", "Fire", "pw", "11")
	run(t, app)
	if !strings.Contains(out.String(), "Invalid name.") {
		t.Errorf("expected invalid name message in:\n%s", out.String())
	}
	if app.Active() != nil {
		t.Error("rejected player became active")
	}
}
