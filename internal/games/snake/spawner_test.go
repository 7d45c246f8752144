package snake

import "testing"

func TestSpawnAvoidsOccupied(t *testing.T) {
	grid := NewGrid(6, 6)
	s := NewSpawner(7)
	occupied := []Cell{{0, 0}, {1, 0}, {2, 0}, {3, 3}, {5, 5}}

	for range 500 {
		c, ok := s.Spawn(grid, occupied)
		if !ok {
			t.Fatal("Spawn failed with free cells available")
		}
		if !grid.Contains(c) {
			t.Fatalf("spawned outside the grid at %v", c)
		}
		for _, o := range occupied {
			if c == o {
				t.Fatalf("spawned on occupied cell %v", c)
			}
		}
	}
}

func TestSpawnFindsLastFreeCell(t *testing.T) {
	grid := NewGrid(3, 3)
	var occupied []Cell
	for y := range 3 {
		for x := range 3 {
			if x != 2 || y != 1 {
				occupied = append(occupied, Cell{x, y})
			}
		}
	}

	c, ok := NewSpawner(1).Spawn(grid, occupied)
	if !ok || c != (Cell{2, 1}) {
		t.Errorf("Spawn = %v, %v; expected (2,1), true", c, ok)
	}
}

func TestSpawnFullBoard(t *testing.T) {
	grid := NewGrid(2, 2)
	occupied := []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if _, ok := NewSpawner(1).Spawn(grid, occupied); ok {
		t.Error("Spawn should fail on a full board")
	}
}

func TestSpawnCoversAllFreeCells(t *testing.T) {
	grid := NewGrid(4, 4)
	s := NewSpawner(99)
	seen := make(map[Cell]bool)
	for range 2000 {
		c, _ := s.Spawn(grid, nil)
		seen[c] = true
	}
	if len(seen) != grid.Area() {
		t.Errorf("only %d of %d cells were ever chosen", len(seen), grid.Area())
	}
}

func TestSpawnerDeterminism(t *testing.T) {
	grid := NewGrid(20, 20)
	a, b := NewSpawner(1234), NewSpawner(1234)
	for range 50 {
		ca, _ := a.Spawn(grid, nil)
		cb, _ := b.Spawn(grid, nil)
		if ca != cb {
			t.Fatalf("same seed diverged: %v vs %v", ca, cb)
		}
		if a.PowerUpKind() != b.PowerUpKind() {
			t.Fatal("power-up kinds diverged")
		}
	}
}

func TestRollAndKinds(t *testing.T) {
	s := NewSpawner(5)
	for range 100 {
		if s.Roll(0) {
			t.Fatal("Roll(0) returned true")
		}
		if !s.Roll(1) {
			t.Fatal("Roll(1) returned false")
		}
		if k := s.PowerUpKind(); k == KindFood {
			t.Fatal("PowerUpKind returned food")
		}
	}
}
