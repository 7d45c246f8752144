package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagHistoryMode  string
	flagHistoryLimit int
	flagHistoryTop   bool
	flagHistoryCSV   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or export recorded games",
	Long: `Every finished game is recorded in the history database, not only
the ones that reach the high-score table.

Examples:
  snake history
  snake history --filter time_attack --top
  snake history --csv --limit 1000 > games.csv
  snake history --clear --filter classic`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&flagHistoryMode, "filter", "", "Only games of this mode (classic, time_attack)")
	f.IntVar(&flagHistoryLimit, "limit", 20, "Number of games to show")
	f.BoolVar(&flagHistoryTop, "top", false, "Order by score instead of date")
	f.BoolVar(&flagHistoryCSV, "csv", false, "Write CSV to stdout")
	f.BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded games")
}

func runHistory(cmd *cobra.Command, args []string) {
	mode := ""
	if flagHistoryMode != "" {
		m, err := config.ParseMode(flagHistoryMode)
		if err != nil {
			fail("%v", err)
		}
		mode = string(m)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearSessions(mode); err != nil {
			fail("clearing history: %v", err)
		}
		fmt.Println("History cleared.")
		return
	}

	var records []storage.Record
	if flagHistoryTop || mode != "" {
		records, err = store.TopSessions(mode, flagHistoryLimit)
	} else {
		records, err = store.RecentSessions(flagHistoryLimit)
	}
	if err != nil {
		fail("reading history: %v", err)
	}

	if flagHistoryCSV {
		if err := storage.ExportCSV(os.Stdout, records); err != nil {
			fail("writing CSV: %v", err)
		}
		return
	}

	if len(records) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-11s  %-6s  %-12s  %5s  %8s  %-10s  %s\n",
		"Date", "Mode", "Level", "Player", "Score", "Time", "End", "Origin")
	for _, r := range records {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-16s  %-11s  %-6s  %-12s  %5d  %8s  %-10s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			config.Mode(r.Mode).Title(),
			config.Difficulty(r.Difficulty).Title(),
			player,
			r.Score,
			r.Duration.Round(time.Second),
			r.EndReason,
			r.Origin,
		)
	}

	st, err := store.Stats(mode)
	if err != nil {
		fail("reading stats: %v", err)
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Total score: %d  Food eaten: %d  Time played: %s\n",
		st.Games, st.Best, st.TotalScore, st.TotalEaten, st.PlayTime.Round(time.Second))
}
