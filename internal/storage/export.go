package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// csvRecord is the CSV shape of a Record.
type csvRecord struct {
	ID         string  `csv:"id"`
	CreatedAt  string  `csv:"created_at"`
	Mode       string  `csv:"mode"`
	Difficulty string  `csv:"difficulty"`
	Player     string  `csv:"player"`
	Origin     string  `csv:"origin"`
	Score      int     `csv:"score"`
	Eaten      int     `csv:"eaten"`
	Ticks      int64   `csv:"ticks"`
	Seconds    float64 `csv:"duration_sec"`
	EndReason  string  `csv:"end_reason"`
}

// ExportCSV writes records as CSV with a header row.
func ExportCSV(w io.Writer, records []Record) error {
	rows := make([]csvRecord, len(records))
	for i, r := range records {
		rows[i] = csvRecord{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
			Mode:       r.Mode,
			Difficulty: r.Difficulty,
			Player:     r.Player,
			Origin:     r.Origin,
			Score:      r.Score,
			Eaten:      r.Eaten,
			Ticks:      r.Ticks,
			Seconds:    r.Duration.Seconds(),
			EndReason:  r.EndReason,
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("storage: cannot write CSV: %w", err)
	}
	return nil
}
