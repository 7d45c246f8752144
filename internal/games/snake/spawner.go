package snake

import "math/rand"

// Spawner places food and power-up tokens. It owns the session's RNG so a
// seed fully determines where things appear.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner seeded with seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn picks a uniformly random cell of grid that is not in occupied.
// It returns false when every cell is taken.
func (s *Spawner) Spawn(grid Grid, occupied []Cell) (Cell, bool) {
	taken := make(map[Cell]bool, len(occupied))
	for _, c := range occupied {
		if grid.Contains(c) {
			taken[c] = true
		}
	}

	free := grid.Area() - len(taken)
	if free <= 0 {
		return Cell{}, false
	}

	// Pick the n-th free cell in row-major order.
	n := s.rng.Intn(free)
	for y := range grid.Height {
		for x := range grid.Width {
			c := Cell{X: x, Y: y}
			if taken[c] {
				continue
			}
			if n == 0 {
				return c, true
			}
			n--
		}
	}
	return Cell{}, false
}

// Roll returns true with probability p.
func (s *Spawner) Roll(p float64) bool {
	if p <= 0 {
		return false
	}
	return s.rng.Float64() < p
}

// PowerUpKind picks one of the power-up kinds uniformly.
func (s *Spawner) PowerUpKind() Kind {
	kinds := PowerUpKinds()
	return kinds[s.rng.Intn(len(kinds))]
}
