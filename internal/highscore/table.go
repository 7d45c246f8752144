// Package highscore keeps the top-five table and persists it as JSON.
//
// The table is plain data owned by whoever loaded it; nothing here is
// global. Callers load at the start of a session boundary, insert, and
// save.
package highscore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Capacity is the number of entries kept.
const Capacity = 5

// MaxNameLen bounds player names.
const MaxNameLen = 16

// Entry is one row of the table.
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Mode  string    `json:"mode,omitempty"`
	When  time.Time `json:"when,omitzero"`
}

// UnmarshalJSON accepts both the object form and the legacy
// ["name", score] pair.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var pair []json.RawMessage
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("highscore: legacy entry has %d fields", len(pair))
		}
		var name string
		var score int
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return fmt.Errorf("highscore: legacy entry name: %w", err)
		}
		if err := json.Unmarshal(pair[1], &score); err != nil {
			return fmt.Errorf("highscore: legacy entry score: %w", err)
		}
		*e = Entry{Name: name, Score: score}
		return nil
	}

	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Table is the ordered top-five list, highest score first.
type Table []Entry

// Normalize sorts the table, drops invalid rows and trims it to Capacity.
func (t Table) Normalize() Table {
	out := make(Table, 0, len(t))
	for _, e := range t {
		if e.Score < 0 {
			continue
		}
		e.Name = CleanName(e.Name)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > Capacity {
		out = out[:Capacity]
	}
	return out
}

// Qualifies reports whether score earns a place: it must be positive and
// either the table has room or the score is at least the fifth-place score.
func (t Table) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	if len(t) < Capacity {
		return true
	}
	return score >= t[Capacity-1].Score
}

// Insert returns a new table with e added, and e's 0-based rank, or -1 if
// it did not make the cut. A new entry goes ahead of equal scores.
func (t Table) Insert(e Entry) (Table, int) {
	if !t.Qualifies(e.Score) {
		return t, -1
	}
	e.Name = CleanName(e.Name)

	rank := len(t)
	for i, existing := range t {
		if e.Score >= existing.Score {
			rank = i
			break
		}
	}

	out := make(Table, 0, len(t)+1)
	out = append(out, t[:rank]...)
	out = append(out, e)
	out = append(out, t[rank:]...)
	if len(out) > Capacity {
		out = out[:Capacity]
	}
	return out, rank
}

// Best returns the top score, or zero for an empty table.
func (t Table) Best() int {
	if len(t) == 0 {
		return 0
	}
	return t[0].Score
}

// CleanName trims a player name, bounds its length and substitutes a
// placeholder for empty names.
func CleanName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	if name == "" {
		return "Anonymous"
	}
	return name
}
