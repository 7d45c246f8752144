package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a game directly",
	Long: `Start a game without going through the menu. The mode defaults to the
one in the settings file.

Controls:
  W/A/S/D, arrows  - Steer (rebindable in Options > Controls)
  P/Space/Esc      - Pause
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play timeattack --time-limit 90
  snake play classic --difficulty easy --no-powerups
  snake play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode := ""
		if len(args) == 1 {
			mode = args[0]
		}
		runPlay(mode)
	},
}

func runPlay(arg string) {
	gameID := arg
	if gameID == "" || !registry.Exists(gameID) {
		m, err := config.ParseMode(arg)
		if err != nil {
			fail("unknown mode %q (run 'snake modes' to list them)", arg)
		}
		if arg == "" {
			settings, _ := loadSettings()
			m = settings.Mode
		}
		gameID = snake.IDForMode(m)
	}
	runApp(gameID)
}

// runApp runs the TUI locally, on the menu or straight in a game.
func runApp(startGame string) {
	settings, configPath := loadSettings()

	// Logs must not draw over the alternate screen.
	logger, closeLog := newLogger("snake", io.Discard)
	defer closeLog()

	history, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without history
		history = nil
	}

	width, height := terminalSize()
	user := os.Getenv("USER")
	handle := session.NewHandle(user, "local", "", 1)
	defer handle.Close()

	runErr := tui.Run(tui.Options{
		Settings:   settings,
		ConfigPath: configPath,
		Scores:     highscore.NewFileStore(flagScoresPath),
		History:    history,
		Handle:     handle,
		Logger:     logger,
		Seed:       flagSeed,
		StartGame:  startGame,
		FPS:        flagFPS,
		Width:      width,
		Height:     height,
	})

	if history != nil {
		history.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
