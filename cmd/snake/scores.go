package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/highscore"
)

var flagResetScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top 5 high scores",
	Long: `Display the high-score table kept in the high-score file.

Examples:
  snake scores
  snake scores --scores ./shared.json
  snake scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset", false, "Remove all high scores")
}

func runScores(cmd *cobra.Command, args []string) {
	store := highscore.NewFileStore(flagScoresPath)

	if flagResetScores {
		if err := store.Reset(); err != nil {
			fail("resetting high scores: %v", err)
		}
		fmt.Printf("High scores in %s cleared.\n", store.Path())
		return
	}

	table, err := store.Load()
	if errors.Is(err, highscore.ErrCorrupt) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if err != nil {
		fail("reading high scores: %v", err)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(table) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %-11s  %s\n", "Rank", highscore.MaxNameLen, "Name", "Score", "Mode", "Date")
	fmt.Printf("  %-4s  %-*s  %-6s  %-11s  %s\n", "----", highscore.MaxNameLen, "----", "-----", "----", "----")
	for i, e := range table {
		mode, date := "-", "-"
		if e.Mode != "" {
			mode = config.Mode(e.Mode).Title()
		}
		if !e.When.IsZero() {
			date = e.When.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-4d  %-*s  %-6d  %-11s  %s\n", i+1, highscore.MaxNameLen, e.Name, e.Score, mode, date)
	}
}
