package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/flow"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// endingGame finishes on its first step with a fixed score.
type endingGame struct {
	score int
	over  bool
}

const endingGameID = "zz-ending"

func init() {
	registry.Register(endingGameID, func(config.Settings) registry.Game {
		return &endingGame{score: 7}
	})
}

func (g *endingGame) ID() string               { return endingGameID }
func (g *endingGame) Title() string            { return "Ending" }
func (g *endingGame) Reset(core.RuntimeConfig) { g.over = false }
func (g *endingGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "ending") }
func (g *endingGame) Pause() bool              { return false }
func (g *endingGame) Resume() bool             { return false }
func (g *endingGame) State() core.GameState    { return core.GameState{Score: g.score, GameOver: g.over} }

func (g *endingGame) Step(core.InputFrame) core.StepResult {
	g.over = true
	return core.StepResult{State: g.State(), Next: 10 * time.Millisecond}
}

func (g *endingGame) Summary(q core.Qualifier) core.Summary {
	return core.Summary{
		Mode:           string(config.ModeClassic),
		Difficulty:     string(config.DifficultyMedium),
		Score:          g.score,
		Eaten:          g.score,
		Duration:       time.Second,
		Reason:         string(snake.ReasonWall),
		NameSlotNeeded: q.Qualifies(g.score),
	}
}

type testEnv struct {
	scores  *highscore.FileStore
	history *storage.Store
	config  string
}

func newTestApp(t *testing.T, mutate func(*Options)) (App, testEnv) {
	t.Helper()
	dir := t.TempDir()

	history, err := storage.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { history.Close() })

	env := testEnv{
		scores:  highscore.NewFileStore(filepath.Join(dir, "scores.json")),
		history: history,
		config:  filepath.Join(dir, "snake.yaml"),
	}

	settings := config.Default()
	settings.PowerUpsEnabled = false
	opts := Options{
		Settings:   settings,
		ConfigPath: env.config,
		Scores:     env.scores,
		History:    env.history,
		Seed:       42,
		Width:      80,
		Height:     30,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return NewApp(opts), env
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		a, _ = update(t, a, keyMsg(k))
	}
	return a
}

func tick(t *testing.T, a App) App {
	t.Helper()
	a, _ = update(t, a, TickMsg{Gen: a.gen, Time: time.Now()})
	return a
}

func chooseMenu(t *testing.T, a App, choice MenuChoice, gameID string) App {
	t.Helper()
	for i, it := range a.menu.items {
		if it.Choice == choice && it.GameID == gameID {
			a.menu.cursor = i
			return press(t, a, "enter")
		}
	}
	t.Fatalf("menu has no entry %v %q", choice, gameID)
	return a
}

func snapshot(t *testing.T, a App) snake.Snapshot {
	t.Helper()
	g, ok := a.Game().(*snake.Game)
	if !ok {
		t.Fatalf("game is %T, want *snake.Game", a.Game())
	}
	return g.Snapshot()
}

func TestAppStartsOnMenu(t *testing.T) {
	a, _ := newTestApp(t, nil)

	if a.State() != flow.Menu {
		t.Fatalf("State = %v, want menu", a.State())
	}
	view := a.View()
	for _, want := range []string{"S N A K E", "Play Classic", "Play Time Attack", "High Scores", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestMenuStartsPreferredMode(t *testing.T) {
	a, _ := newTestApp(t, nil)

	a, cmd := update(t, a, keyMsg("enter"))
	if a.State() != flow.Playing {
		t.Fatalf("State = %v, want playing", a.State())
	}
	if cmd == nil {
		t.Fatal("starting a game should schedule a tick")
	}
	if a.Game().ID() != snake.IDClassic {
		t.Errorf("game = %q, want classic", a.Game().ID())
	}
}

func TestTicksAdvanceTheGame(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoicePlay, snake.IDClassic)

	before := snapshot(t, a)
	a = press(t, a, "w")
	a = tick(t, a)
	after := snapshot(t, a)

	if after.Tick != before.Tick+1 {
		t.Errorf("Tick = %d, want %d", after.Tick, before.Tick+1)
	}
	if after.HeadY != before.HeadY-1 {
		t.Errorf("head y = %d, want %d after steering up", after.HeadY, before.HeadY-1)
	}
}

func TestTimeAttackRunsOnWallClock(t *testing.T) {
	a, _ := newTestApp(t, func(o *Options) { o.StartGame = snake.IDTimeAttack })
	remaining := func() time.Duration {
		return a.Game().(*snake.Game).Controller().Remaining()
	}

	// The tick arrives two seconds after it was due.
	a, _ = update(t, a, TickMsg{Gen: a.gen, Time: a.since.Add(2 * time.Second)})
	if got := remaining(); got != 58*time.Second {
		t.Fatalf("remaining = %v, want 58s", got)
	}

	a = press(t, a, "p")
	a.since = a.since.Add(-time.Hour) // time spent paused
	a = press(t, a, "p")
	if a.State() != flow.Playing {
		t.Fatalf("State = %v, want playing", a.State())
	}
	a, _ = update(t, a, TickMsg{Gen: a.gen, Time: a.since.Add(time.Second)})
	if got := remaining(); got != 57*time.Second {
		t.Fatalf("remaining = %v, paused time must not count", got)
	}

	a, _ = update(t, a, TickMsg{Gen: a.gen, Time: a.since.Add(time.Minute)})
	if a.State() != flow.GameOver {
		t.Fatalf("State = %v, want game_over", a.State())
	}
	if a.Summary().Reason != string(snake.ReasonTimeUp) {
		t.Errorf("reason = %q, want time up", a.Summary().Reason)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoicePlay, snake.IDClassic)
	staleGen := a.gen

	a = press(t, a, "p")
	if a.State() != flow.Paused {
		t.Fatalf("State = %v, want paused", a.State())
	}
	if !a.Game().State().Paused {
		t.Error("game should be paused")
	}

	before := snapshot(t, a)
	a = tick(t, a)
	if snapshot(t, a).Tick != before.Tick {
		t.Error("tick advanced a paused game")
	}

	a, cmd := update(t, a, keyMsg("p"))
	if a.State() != flow.Playing || cmd == nil {
		t.Fatalf("resume: State = %v, cmd nil = %v", a.State(), cmd == nil)
	}

	a, _ = update(t, a, TickMsg{Gen: staleGen})
	if snapshot(t, a).Tick != before.Tick {
		t.Error("a tick scheduled before the pause was applied")
	}
}

func TestBackFromPauseDropsGame(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoicePlay, snake.IDClassic)

	a = press(t, a, "esc")
	if a.State() != flow.Paused {
		t.Fatalf("esc while playing: State = %v, want paused", a.State())
	}
	a = press(t, a, "esc")
	if a.State() != flow.Menu {
		t.Fatalf("esc while paused: State = %v, want menu", a.State())
	}
	if a.Game() != nil {
		t.Error("game should be discarded")
	}
}

func TestCrashIsRecorded(t *testing.T) {
	a, env := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoicePlay, snake.IDClassic)

	for i := 0; i < 200 && a.State() == flow.Playing; i++ {
		a = tick(t, a)
	}
	if a.State() == flow.NameEntry {
		a = press(t, a, "enter")
	}
	if a.State() != flow.GameOver {
		t.Fatalf("State = %v, want game_over", a.State())
	}

	sum := a.Summary()
	if sum.Reason != string(snake.ReasonWall) {
		t.Errorf("Reason = %q, want wall", sum.Reason)
	}
	records, err := env.history.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(records))
	}
	r := records[0]
	if r.Score != sum.Score || r.Mode != string(config.ModeClassic) || r.Origin != "local" {
		t.Errorf("record = %+v, summary = %+v", r, sum)
	}
	if !strings.Contains(a.View(), "GAME OVER") {
		t.Error("game-over view missing title")
	}
}

func TestQualifyingScoreAsksForName(t *testing.T) {
	a, env := newTestApp(t, func(o *Options) { o.StartGame = endingGameID })
	if a.State() != flow.Playing {
		t.Fatalf("State = %v, want playing", a.State())
	}

	a = tick(t, a)
	if a.State() != flow.NameEntry {
		t.Fatalf("State = %v, want name_entry", a.State())
	}

	a = press(t, a, "A", "d", "a", "enter")
	if a.State() != flow.GameOver {
		t.Fatalf("State = %v, want game_over", a.State())
	}

	table, err := env.scores.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table) != 1 || table[0].Name != "Ada" || table[0].Score != 7 {
		t.Errorf("table = %+v, want [Ada 7]", table)
	}

	records, err := env.history.RecentSessions(1)
	if err != nil || len(records) != 1 {
		t.Fatalf("RecentSessions: %v, %d records", err, len(records))
	}
	if records[0].Player != "Ada" {
		t.Errorf("Player = %q, want Ada", records[0].Player)
	}
	if !strings.Contains(a.View(), "#1") {
		t.Error("game-over view should show the new rank")
	}
}

func TestSkippingNameEntry(t *testing.T) {
	a, env := newTestApp(t, func(o *Options) { o.StartGame = endingGameID })
	a = tick(t, a)

	a = press(t, a, "esc")
	if a.State() != flow.GameOver {
		t.Fatalf("State = %v, want game_over", a.State())
	}
	table, _ := env.scores.Load()
	if len(table) != 0 {
		t.Errorf("table = %+v, want empty", table)
	}
}

func TestNonQualifyingScoreSkipsNameEntry(t *testing.T) {
	a, env := newTestApp(t, func(o *Options) { o.StartGame = endingGameID })
	for i := 0; i < highscore.Capacity; i++ {
		if _, _, err := env.scores.Record(highscore.Entry{Name: "pro", Score: 100}); err != nil {
			t.Fatal(err)
		}
	}

	a = tick(t, a)
	if a.State() != flow.GameOver {
		t.Errorf("State = %v, want game_over", a.State())
	}
	if !strings.Contains(a.View(), "Best: 100") {
		t.Error("game-over screen should show the table's best score")
	}
}

func TestPlayAgainFromGameOver(t *testing.T) {
	a, _ := newTestApp(t, func(o *Options) { o.StartGame = endingGameID })
	a = tick(t, a)
	a = press(t, a, "esc")

	gen := a.gen
	a, cmd := update(t, a, keyMsg("r"))
	if a.State() != flow.Playing || cmd == nil {
		t.Fatalf("State = %v, want playing with a tick", a.State())
	}
	if a.gen == gen {
		t.Error("a new game must invalidate old ticks")
	}

	a = tick(t, a)
	a = press(t, a, "esc", "esc")
	if a.State() != flow.Menu {
		t.Errorf("State = %v, want menu", a.State())
	}
}

func TestHighScoreIsAnnounced(t *testing.T) {
	reg := session.NewRegistry(0)
	me := session.NewHandle("ada", "ssh", "", 4)
	other := session.NewHandle("bob", "ssh", "", 4)
	for _, h := range []*session.Handle{me, other} {
		if err := reg.Register(h); err != nil {
			t.Fatal(err)
		}
	}

	a, _ := newTestApp(t, func(o *Options) {
		o.StartGame = endingGameID
		o.Sessions = reg
		o.Handle = me
	})
	a = tick(t, a)
	if got := a.name.Name(); got != "ada" {
		t.Errorf("name prefilled with %q, want the login name", got)
	}
	press(t, a, "enter")

	select {
	case n := <-other.Notices():
		if !strings.Contains(n.Text, "ada") || !strings.Contains(n.Text, "7") {
			t.Errorf("notice = %q", n.Text)
		}
	default:
		t.Fatal("other session got no notice")
	}
	select {
	case n := <-me.Notices():
		t.Errorf("sender got its own notice %q", n.Text)
	default:
	}
}

func TestNoticeShowsOnStatusLine(t *testing.T) {
	h := session.NewHandle("ada", "ssh", "", 4)
	a, _ := newTestApp(t, func(o *Options) { o.Handle = h })

	a, cmd := update(t, a, noticeMsg{Text: "bob set a high score"})
	if a.Status() != "bob set a high score" {
		t.Errorf("Status = %q", a.Status())
	}
	if cmd == nil {
		t.Error("the app should keep listening for notices")
	}
	if !strings.Contains(a.View(), "bob set a high score") {
		t.Error("status line not rendered")
	}
}

func TestOptionsAreSaved(t *testing.T) {
	a, env := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoiceOptions, "")
	if a.State() != flow.Options {
		t.Fatalf("State = %v, want options", a.State())
	}

	// Difficulty medium -> hard, then power-ups back on.
	a = press(t, a, "right", "down", "down", "down", "enter", "esc")
	if a.State() != flow.Menu {
		t.Fatalf("State = %v, want menu", a.State())
	}
	if a.Settings().Difficulty != config.DifficultyHard || !a.Settings().PowerUpsEnabled {
		t.Errorf("settings = %+v", a.Settings())
	}
	if a.Status() != "Settings saved" {
		t.Errorf("Status = %q", a.Status())
	}

	saved, path, err := config.Load(env.config)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != env.config || saved.Difficulty != config.DifficultyHard {
		t.Errorf("saved %+v at %q", saved, path)
	}
}

func TestOptionsWithoutConfigPath(t *testing.T) {
	a, env := newTestApp(t, func(o *Options) { o.ConfigPath = "" })
	a = chooseMenu(t, a, ChoiceOptions, "")
	a = press(t, a, "right", "esc")

	if a.Settings().Difficulty != config.DifficultyHard {
		t.Errorf("Difficulty = %v, want hard", a.Settings().Difficulty)
	}
	if _, _, err := config.Load(env.config); err == nil {
		t.Error("nothing should be written without a config path")
	}
}

func TestRebindControls(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoiceOptions, "")
	a.options.cursor = optControls
	a = press(t, a, "enter")
	if a.State() != flow.Controls {
		t.Fatalf("State = %v, want controls", a.State())
	}

	// Reserved keys are refused.
	a = press(t, a, "enter", "p")
	if a.controls.Controls().Up != "w" {
		t.Fatalf("p was bound to up")
	}
	// Keys bound elsewhere are refused.
	a = press(t, a, "enter", "s")
	if a.controls.Controls().Up != "w" {
		t.Fatalf("s was bound to up")
	}

	a = press(t, a, "enter", "i", "esc")
	if a.State() != flow.Options {
		t.Fatalf("State = %v, want options", a.State())
	}
	a = press(t, a, "esc")
	if got := a.Settings().Controls.Up; got != "i" {
		t.Fatalf("Controls.Up = %q, want i", got)
	}

	a = chooseMenu(t, a, ChoicePlay, snake.IDClassic)
	before := snapshot(t, a)
	a = press(t, a, "i")
	a = tick(t, a)
	if snapshot(t, a).HeadY != before.HeadY-1 {
		t.Error("rebound key did not steer up")
	}
}

func TestHighScoresScreen(t *testing.T) {
	a, env := newTestApp(t, nil)
	if _, _, err := env.scores.Record(highscore.Entry{Name: "ada", Score: 12}); err != nil {
		t.Fatal(err)
	}

	a = chooseMenu(t, a, ChoiceHighScores, "")
	if a.State() != flow.HighScores {
		t.Fatalf("State = %v, want high_scores", a.State())
	}
	if rows := a.scores.Rows(); len(rows) != 1 || rows[0][1] != "ada" {
		t.Errorf("rows = %v", rows)
	}
	if !strings.Contains(a.View(), "HIGH SCORES") {
		t.Error("view missing title")
	}

	a = press(t, a, "tab")
	if a.scores.tabs[a.scores.tabCursor].mode != config.ModeClassic {
		t.Error("tab should switch to the classic history")
	}

	a = press(t, a, "esc")
	if a.State() != flow.Menu {
		t.Errorf("State = %v, want menu", a.State())
	}
}

func TestInstructionsScreen(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoiceInstructions, "")
	if a.State() != flow.Instructions {
		t.Fatalf("State = %v, want instructions", a.State())
	}

	view := a.View()
	for _, glyph := range []string{"*", "▲", "■", "●"} {
		if !strings.Contains(view, glyph) {
			t.Errorf("instructions missing %q", glyph)
		}
	}

	a = press(t, a, "esc")
	if a.State() != flow.Menu {
		t.Errorf("State = %v, want menu", a.State())
	}
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t, nil)

	a, cmd := update(t, a, keyMsg("q"))
	if a.State() != flow.Quit {
		t.Errorf("State = %v, want quit", a.State())
	}
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should stop the program")
	}
	if a.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestResizeReachesGame(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a = chooseMenu(t, a, ChoicePlay, snake.IDClassic)

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(a.View(), "Window too small") {
		t.Error("small window should show the resize hint")
	}
}
