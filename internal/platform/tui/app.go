package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/flow"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options configures an App.
type Options struct {
	Settings config.Settings

	// ConfigPath is where Options-screen edits are saved. Empty keeps
	// them for this run only.
	ConfigPath string

	Scores   *highscore.FileStore
	History  *storage.Store    // optional
	Sessions *session.Registry // optional; told about new high scores
	Handle   *session.Handle   // optional; this player's connection
	Logger   *log.Logger       // optional

	// Seed fixes the first game's RNG seed; later games use Seed+n.
	// Zero seeds every game from the clock.
	Seed int64

	// StartGame is a registry ID to start right away instead of
	// showing the menu.
	StartGame string

	FPS           int
	Width, Height int
}

// noticeMsg carries a notice from another session.
type noticeMsg session.Notice

// App is the top-level model: it owns the screen flow and composes the
// menu, the running game and the other screens.
type App struct {
	opts     Options
	settings config.Settings
	logger   *log.Logger
	fsm      *flow.Machine
	keys     *KeyMapper
	theme    Theme
	width    int
	height   int

	menu     MenuModel
	scores   ScoreboardModel
	options  OptionsModel
	controls ControlsModel
	name     NameEntryModel
	over     GameOverModel

	game     registry.Game
	gameID   string
	screen   *core.Screen
	frame    core.InputFrame
	gen      int           // bumped whenever pending ticks must be dropped
	next     time.Duration // interval the game asked for
	since    time.Time     // when the running clock last started or ticked
	played   int
	summary  core.Summary
	recordID string

	initCmd  tea.Cmd
	status   string
	quitting bool
}

// NewApp creates the app on the main menu, or directly in a game when
// opts.StartGame is set.
func NewApp(opts Options) App {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}
	if opts.FPS <= 0 {
		opts.FPS = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	a := App{
		opts:     opts,
		settings: opts.Settings,
		logger:   logger,
		fsm:      flow.New(),
		keys:     NewKeyMapper(opts.Settings.Controls),
		theme:    ThemeFor(opts.Settings.ColorScheme),
		width:    opts.Width,
		height:   opts.Height,
		screen:   core.NewScreen(opts.Width, opts.Height),
		frame:    core.NewInputFrame(),
	}
	a.menu = NewMenuModel(a.settings, a.width, a.height)

	if opts.StartGame != "" {
		a.initCmd = a.begin(opts.StartGame)
	}
	return a
}

// Init starts the first game, if any, and listens for notices.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.initCmd, waitForNotice(a.opts.Handle))
}

// waitForNotice returns a command that waits for the next notice sent to h.
func waitForNotice(h *session.Handle) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case n := <-h.Notices():
			return noticeMsg(n)
		case <-h.Done():
			return nil
		}
	}
}

// Update handles messages and routes keys to the current screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case TickMsg:
		return a.handleTick(msg)

	case noticeMsg:
		a.status = msg.Text
		return a, waitForNotice(a.opts.Handle)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.fsm.State() == flow.NameEntry {
		var cmd tea.Cmd
		a.name, cmd = a.name.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width, a.height = msg.Width, msg.Height
	a.screen.Resize(msg.Width, msg.Height)

	a.menu, _ = a.menu.Update(msg)
	a.scores, _ = a.scores.Update(msg)
	a.options, _ = a.options.Update(msg)
	a.controls, _ = a.controls.Update(msg)
	a.name, _ = a.name.Update(msg)
	a.over, _ = a.over.Update(msg)
	return a, nil
}

func (a App) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != a.gen || a.fsm.State() != flow.Playing || a.game == nil {
		return a, nil
	}

	if !msg.Time.IsZero() {
		if !a.since.IsZero() && msg.Time.After(a.since) {
			a.frame.Elapsed = msg.Time.Sub(a.since)
		}
		a.since = msg.Time
	}

	res := a.game.Step(a.frame)
	a.frame.Clear()
	a.next = res.Next

	if res.State.GameOver {
		return a.finish()
	}
	return a, tickCmd(a.next, a.gen)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.fsm.State() {
	case flow.Playing:
		return a.keyPlaying(msg)
	case flow.Paused:
		return a.keyPaused(msg)
	case flow.Menu:
		return a.keyMenu(msg)
	case flow.GameOver:
		return a.keyGameOver(msg)
	case flow.NameEntry:
		return a.keyNameEntry(msg)
	case flow.HighScores:
		return a.keyScores(msg)
	case flow.Instructions:
		switch a.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			return a.quit()
		case MenuActionBack, MenuActionSelect:
			a.fire(flow.EventBack)
		}
	case flow.Options:
		return a.keyOptions(msg)
	case flow.Controls:
		return a.keyControls(msg)
	}
	return a, nil
}

func (a App) keyPlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := a.keys.MapKey(msg)
	if isQuit {
		return a.quit()
	}
	switch action {
	case core.ActionPause, core.ActionBack:
		return a.pause()
	}
	if action.IsMove() {
		a.frame.Set(action)
	}
	return a, nil
}

func (a App) keyPaused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := a.keys.MapKey(msg)
	if isQuit {
		return a.quit()
	}
	switch action {
	case core.ActionPause, core.ActionConfirm:
		return a.resume()
	case core.ActionBack:
		// The unfinished game is dropped.
		a.fire(flow.EventBack)
		a.game = nil
		a.gen++
	}
	return a, nil
}

func (a App) keyMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.menu, _ = a.menu.Update(msg)
	sel := a.menu.Selected()
	if sel == nil {
		return a, nil
	}
	a.menu.clearSelection()

	switch sel.Choice {
	case ChoicePlay:
		cmd := a.begin(sel.GameID)
		return a, cmd
	case ChoiceHighScores:
		a.openScores()
	case ChoiceInstructions:
		a.fire(flow.EventShowInstructions)
	case ChoiceOptions:
		a.options = NewOptionsModel(a.settings, a.width, a.height)
		a.fire(flow.EventShowOptions)
	case ChoiceQuit:
		return a.quit()
	}
	return a, nil
}

func (a App) keyGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.over, _ = a.over.Update(msg)
	choice := a.over.Choice()
	a.over.clearChoice()

	switch choice {
	case GameOverPlayAgain:
		cmd := a.begin(a.gameID)
		return a, cmd
	case GameOverScores:
		a.openScores()
	case GameOverMenu:
		a.fire(flow.EventBack)
	case GameOverQuit:
		return a.quit()
	}
	return a, nil
}

func (a App) keyNameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.name, cmd = a.name.Update(msg)

	switch {
	case a.name.IsSubmitted():
		a.submitName(a.name.Name())
		a.fire(flow.EventSubmitName)
		return a, nil
	case a.name.IsSkipped():
		a.fire(flow.EventBack)
		return a, nil
	}
	return a, cmd
}

func (a App) keyScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.scores, cmd = a.scores.Update(msg)

	switch {
	case a.scores.IsQuitting():
		return a.quit()
	case a.scores.IsGoingBack():
		a.fire(flow.EventBack)
		return a, nil
	}
	return a, cmd
}

func (a App) keyOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.options, _ = a.options.Update(msg)

	switch {
	case a.options.IsQuitting():
		a.apply(a.options.Settings(), a.options.Changed())
		return a.quit()
	case a.options.WantsControls():
		a.controls = NewControlsModel(a.options.Settings().Controls, a.theme, a.width, a.height)
		a.fire(flow.EventShowControls)
	case a.options.IsDone():
		a.apply(a.options.Settings(), a.options.Changed())
		a.fire(flow.EventBack)
	}
	return a, nil
}

func (a App) keyControls(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.controls, _ = a.controls.Update(msg)
	if a.controls.IsDone() {
		a.options.SetControls(a.controls.Controls())
		a.fire(flow.EventBack)
	}
	return a, nil
}

// begin creates and starts a game of the given registry ID.
func (a *App) begin(gameID string) tea.Cmd {
	game, err := registry.Create(gameID, a.settings)
	if err != nil {
		a.warn("cannot start game", err)
		return nil
	}
	if !a.fire(flow.EventStart) {
		return nil
	}

	seed := a.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(a.played)
	}
	a.played++

	game.Reset(core.RuntimeConfig{
		ScreenW:  a.width,
		ScreenH:  a.height,
		TickRate: a.opts.FPS,
		Seed:     seed,
	})
	a.game = game
	a.gameID = gameID
	a.frame.Clear()
	a.next = a.settings.Speed.Interval(a.settings.Difficulty)
	a.since = time.Now()
	a.gen++
	a.status = ""
	a.recordID = ""

	a.logger.Debug("game started", "mode", gameID, "seed", seed)
	return tickCmd(a.next, a.gen)
}

func (a App) pause() (tea.Model, tea.Cmd) {
	a.game.Pause()
	a.fire(flow.EventPause)
	a.gen++
	return a, nil
}

func (a App) resume() (tea.Model, tea.Cmd) {
	a.game.Resume()
	a.fire(flow.EventResume)
	a.since = time.Now()
	a.gen++
	return a, tickCmd(a.next, a.gen)
}

// finish runs when the game reports game over: it records the session
// and routes to name entry or the game-over screen.
func (a App) finish() (tea.Model, tea.Cmd) {
	table := a.loadScores()
	a.summary = a.game.Summary(table)
	a.recordID = a.record(a.summary)
	a.over = NewGameOverModel(a.summary, a.theme, a.width, a.height)
	a.over.SetBest(table.Best())

	a.logger.Info("game over",
		"mode", a.summary.Mode,
		"score", a.summary.Score,
		"reason", a.summary.Reason,
		"high_score", a.summary.NameSlotNeeded,
	)

	if a.summary.NameSlotNeeded {
		a.fire(flow.EventNewHighScore)
		a.name = NewNameEntryModel(a.summary, a.playerName(), a.theme, a.width, a.height)
		return a, a.name.Init()
	}
	a.fire(flow.EventGameOver)
	return a, nil
}

// loadScores reads the high-score table. Any failure yields an empty
// table so play goes on.
func (a *App) loadScores() highscore.Table {
	if a.opts.Scores == nil {
		return nil
	}
	t, err := a.opts.Scores.Load()
	if err != nil {
		a.warn("high-score file unreadable", err)
	}
	return t
}

func (a *App) record(s core.Summary) string {
	if a.opts.History == nil {
		return ""
	}
	id, err := a.opts.History.SaveSession(storage.Record{
		Mode:       s.Mode,
		Difficulty: s.Difficulty,
		Origin:     a.origin(),
		Score:      s.Score,
		Eaten:      s.Eaten,
		Ticks:      int64(s.Ticks),
		Duration:   s.Duration,
		EndReason:  s.Reason,
	})
	if err != nil {
		a.warn("could not record session", err)
		return ""
	}
	return id
}

func (a *App) submitName(name string) {
	s := a.summary
	if a.opts.Scores != nil {
		_, rank, err := a.opts.Scores.Record(highscore.Entry{
			Name:  name,
			Score: s.Score,
			Mode:  s.Mode,
			When:  time.Now().UTC(),
		})
		switch {
		case err != nil:
			a.warn("could not save high score", err)
		case rank >= 0:
			a.over.SetRank(name, rank)
			a.announce(fmt.Sprintf("%s set a high score: %d in %s (#%d)",
				name, s.Score, config.Mode(s.Mode).Title(), rank+1))
		}
	}

	if a.recordID != "" {
		if err := a.opts.History.SetPlayer(a.recordID, name); err != nil {
			a.warn("could not name session", err)
		}
	}
}

// announce tells the other connected players.
func (a *App) announce(text string) {
	if a.opts.Sessions == nil || a.opts.Handle == nil {
		return
	}
	n := a.opts.Sessions.Broadcast(session.Notice{From: a.opts.Handle.ID(), Text: text})
	a.logger.Debug("notice sent", "text", text, "receivers", n)
}

func (a *App) openScores() {
	a.scores = NewScoreboardModel(a.opts.Scores, a.opts.History, a.theme, a.width, a.height)
	a.fire(flow.EventShowScores)
}

// apply adopts edited settings and saves them when a config path is set.
func (a *App) apply(s config.Settings, changed bool) {
	if !changed {
		return
	}
	if err := s.Validate(); err != nil {
		a.warn("settings rejected", err)
		return
	}

	a.settings = s
	a.keys = NewKeyMapper(s.Controls)
	a.theme = ThemeFor(s.ColorScheme)
	a.menu.SetSettings(s)

	if a.opts.ConfigPath == "" {
		a.status = "Settings apply to this session"
		return
	}
	if err := config.Save(a.opts.ConfigPath, s); err != nil {
		a.warn("could not save settings", err)
		return
	}
	a.status = "Settings saved"
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.fire(flow.EventQuit)
	a.quitting = true
	return a, tea.Quit
}

// fire moves the flow machine. An illegal move is a bug; it is logged
// and the screen stays put.
func (a *App) fire(e flow.Event) bool {
	to, err := a.fsm.Fire(e)
	if err != nil {
		a.logger.Error("screen transition rejected", "from", to, "event", e, "error", err)
		return false
	}
	a.logger.Debug("screen", "from", a.fsm.Previous(), "to", to, "event", e)
	return true
}

// warn logs a persistence problem and shows it on the status line.
func (a *App) warn(msg string, err error) {
	a.logger.Warn(msg, "error", err)
	a.status = fmt.Sprintf("%s: %v", msg, err)
}

func (a App) origin() string {
	if a.opts.Handle != nil && a.opts.Handle.Origin() != "" {
		return a.opts.Handle.Origin()
	}
	return "local"
}

func (a App) playerName() string {
	if a.opts.Handle != nil {
		return a.opts.Handle.User()
	}
	return ""
}

// View renders the current screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	var body string
	switch a.fsm.State() {
	case flow.Playing, flow.Paused:
		return a.viewGame()
	case flow.GameOver:
		body = a.over.View()
	case flow.NameEntry:
		body = a.name.View()
	case flow.HighScores:
		body = a.scores.View()
	case flow.Instructions:
		body = instructionsView(a.settings, a.theme, a.width)
	case flow.Options:
		body = a.options.View()
	case flow.Controls:
		body = a.controls.View()
	default:
		body = a.menu.View()
	}

	if a.status != "" {
		body += "\n" + centerText(a.theme.Status.Render(a.status), a.width)
	}
	return body
}

func (a App) viewGame() string {
	if a.game == nil {
		return ""
	}
	a.game.Render(a.screen)
	if a.status != "" && a.height > 0 {
		a.screen.DrawTextColored(1, a.height-1, a.status, core.ColorGray)
	}
	return RenderScreen(a.screen)
}

// State returns the current screen.
func (a App) State() flow.State { return a.fsm.State() }

// Settings returns the settings in effect.
func (a App) Settings() config.Settings { return a.settings }

// Status returns the status line.
func (a App) Status() string { return a.status }

// Summary returns the result of the last finished game.
func (a App) Summary() core.Summary { return a.summary }

// Game returns the running game, if any.
func (a App) Game() registry.Game { return a.game }

// Run starts the app on the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
