// snake is the classic snake game for the terminal, playable locally or
// over SSH.
//
// Usage:
//
//	snake                    - Start the menu
//	snake play [mode]        - Play classic or timeattack directly
//	snake modes              - List game modes
//	snake scores             - Show the top 5 high scores
//	snake history            - Show recorded games (--csv to export)
//	snake config             - Print the effective settings
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - UI refresh rate (default: 60)
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - History database (default: ~/.snake/history.db)
//	--scores <path>     - High-score file (default: ~/.snake/highscores.json)
//	--config <path>     - Settings file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"

	// Register the game modes
	_ "github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagScoresPath string
	flagConfig     string
	flagLogLevel   string
	flagLogFile    string

	// Settings overrides
	flagDifficulty string
	flagMode       string
	flagNoPowerUps bool
	flagTimeLimit  int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic arcade game for the terminal.

Steer the snake to the food, grow longer and avoid the walls and your
own tail. Play Classic until you crash, or Time Attack against the clock.

Available commands:
  play     - Start a game directly
  modes    - Show all game modes
  scores   - View the top 5 high scores
  history  - View or export every recorded game
  config   - Print or write the settings file
  serve    - Start SSH server for remote play

Examples:
  snake
  snake play timeattack --difficulty hard
  snake history --csv > games.csv
  snake serve --ssh :2222`,
	Run: func(cmd *cobra.Command, args []string) {
		runApp("")
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "UI refresh rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the game history database")
	pf.StringVar(&flagScoresPath, "scores", highscore.DefaultPath(), "Path to the high-score file")
	pf.StringVar(&flagConfig, "config", "", "Path to the settings YAML (default ~/.snake/config.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	pf.StringVar(&flagMode, "mode", "", "Default mode: classic, time_attack")
	pf.BoolVar(&flagNoPowerUps, "no-powerups", false, "Disable power-ups")
	pf.IntVar(&flagTimeLimit, "time-limit", 0, "Time Attack duration in seconds")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadSettings reads the settings file and applies command-line overrides.
// It returns the settings and the path Options-screen edits are saved to.
func loadSettings() (config.Settings, string) {
	settings, path, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagConfig == "" && path != config.UserConfigPath() {
		// Edits never go to the bundled configs/snake.yaml.
		path = config.UserConfigPath()
	}

	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		settings.Difficulty = d
	}
	if flagMode != "" {
		m, err := config.ParseMode(flagMode)
		if err != nil {
			fail("%v", err)
		}
		settings.Mode = m
	}
	if flagNoPowerUps {
		settings.PowerUpsEnabled = false
	}
	if flagTimeLimit != 0 {
		settings.TimeAttackSeconds = flagTimeLimit
	}
	if err := settings.Validate(); err != nil {
		fail("%v", err)
	}
	return settings, path
}

// newLogger builds the logger from --log-level and --log-file. Without a
// log file it writes to fallback. The returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("%v", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}

// terminalSize returns the size of stdout, or the defaults.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return def.ScreenW, def.ScreenH
}
