package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRetrieveSession(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(Record{
		Mode:       "classic",
		Difficulty: "hard",
		Score:      12,
		Eaten:      12,
		Ticks:      340,
		Duration:   34 * time.Second,
		EndReason:  "wall",
	})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID, got %q", id)
	}

	r, err := store.Session(id)
	if err != nil || r == nil {
		t.Fatalf("Session() = %v, %v", r, err)
	}
	if r.Mode != "classic" || r.Difficulty != "hard" || r.Score != 12 || r.Ticks != 340 {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Duration != 34*time.Second {
		t.Errorf("duration = %v, expected 34s", r.Duration)
	}
	if r.Origin != "local" {
		t.Errorf("origin = %q, expected local default", r.Origin)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at was not set")
	}

	missing, err := store.Session("nope")
	if err != nil || missing != nil {
		t.Errorf("missing session = %v, %v", missing, err)
	}
}

func TestSetPlayer(t *testing.T) {
	store := openTestStore(t)

	id, _ := store.SaveSession(Record{Mode: "classic", Difficulty: "medium", Score: 5})
	if err := store.SetPlayer(id, "Robin"); err != nil {
		t.Fatalf("SetPlayer() failed: %v", err)
	}
	r, _ := store.Session(id)
	if r.Player != "Robin" {
		t.Errorf("player = %q", r.Player)
	}

	if err := store.SetPlayer("unknown", "x"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestTopSessions(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []int{100, 50, 200, 50} {
		_, err := store.SaveSession(Record{
			ID:         "",
			Mode:       "classic",
			Difficulty: "medium",
			Player:     string(rune('a' + i)),
			Score:      score,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	store.SaveSession(Record{Mode: "time_attack", Difficulty: "easy", Score: 500}) //nolint:errcheck

	top, err := store.TopSessions("classic", 3)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(top))
	}
	want := []struct {
		score  int
		player string
	}{{200, "c"}, {100, "a"}, {50, "b"}}
	for i, w := range want {
		if top[i].Score != w.score || top[i].Player != w.player {
			t.Errorf("top[%d] = %d/%s, expected %d/%s", i, top[i].Score, top[i].Player, w.score, w.player)
		}
	}

	all, _ := store.TopSessions("", 1)
	if len(all) != 1 || all[0].Score != 500 {
		t.Errorf("top across modes = %+v", all)
	}
}

func TestRecentSessions(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-time.Hour)
	store.SaveSession(Record{Mode: "classic", Difficulty: "medium", Score: 1, CreatedAt: old}) //nolint:errcheck
	store.SaveSession(Record{Mode: "classic", Difficulty: "medium", Score: 2})                 //nolint:errcheck

	recent, err := store.RecentSessions(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Score != 2 {
		t.Errorf("expected newest first, got %+v", recent)
	}
}

func TestStatsAndClear(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats() on empty db failed: %v", err)
	}
	if empty.Games != 0 || empty.Best != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveSession(Record{Mode: "classic", Difficulty: "medium", Score: 10, Eaten: 10, Duration: time.Second})     //nolint:errcheck
	store.SaveSession(Record{Mode: "classic", Difficulty: "medium", Score: 30, Eaten: 15, Duration: 2 * time.Second}) //nolint:errcheck
	store.SaveSession(Record{Mode: "time_attack", Difficulty: "medium", Score: 7})                                    //nolint:errcheck

	st, err := store.Stats("classic")
	if err != nil {
		t.Fatal(err)
	}
	if st.Games != 2 || st.Best != 30 || st.TotalScore != 40 || st.TotalEaten != 25 || st.PlayTime != 3*time.Second {
		t.Errorf("classic stats = %+v", st)
	}

	if err := store.ClearSessions("classic"); err != nil {
		t.Fatal(err)
	}
	all, _ := store.Stats("")
	if all.Games != 1 || all.Best != 7 {
		t.Errorf("after clearing classic: %+v", all)
	}
}

func TestExportCSV(t *testing.T) {
	records := []Record{
		{ID: "id-1", Mode: "classic", Difficulty: "easy", Player: "Sam", Score: 9, Duration: 1500 * time.Millisecond,
			EndReason: "self", CreatedAt: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, records); err != nil {
		t.Fatalf("ExportCSV() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,created_at,mode,difficulty,player") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"id-1", "2025-03-04T05:06:07Z", "classic", "Sam", "1.5", "self"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}
