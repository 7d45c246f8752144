package snake

// Body is the snake itself: an ordered run of cells with the head first,
// a heading and a pending-growth counter.
type Body struct {
	cells   []Cell
	dir     Direction // heading used by the next Advance
	heading Direction // heading of the last Advance
	pending int
}

// NewBody creates a straight snake of the given length with its head at
// head, facing dir. The tail trails behind in the opposite direction.
func NewBody(head Cell, dir Direction, length int) *Body {
	if !dir.Valid() {
		dir = DirRight
	}
	length = max(length, 1)

	cells := make([]Cell, length)
	cells[0] = head
	back := dir.Opposite()
	for i := 1; i < length; i++ {
		cells[i] = cells[i-1].Add(back)
	}

	return &Body{cells: cells, dir: dir, heading: dir}
}

// Turn changes the heading for the next Advance. The exact reverse of
// the current heading and invalid directions are ignored.
//
// The reverse check is made against the heading the snake last moved in,
// so two quick turns within one tick can never fold the head back onto
// the neck.
func (b *Body) Turn(d Direction) {
	if !d.Valid() || d == b.heading.Opposite() {
		return
	}
	b.dir = d
}

// Next returns the cell the head will move to on the next Advance.
func (b *Body) Next() Cell {
	return b.cells[0].Add(b.dir)
}

// Advance moves the snake one cell and returns the new head. With growth
// pending the tail stays put and the counter drops by one.
// Collision detection is left to the caller.
func (b *Body) Advance() Cell {
	head := b.Next()
	b.heading = b.dir

	if b.pending > 0 {
		b.pending--
		b.cells = append(b.cells, Cell{})
	}
	copy(b.cells[1:], b.cells[:len(b.cells)-1])
	b.cells[0] = head

	return head
}

// Grow schedules n cells of growth.
func (b *Body) Grow(n int) {
	if n > 0 {
		b.pending += n
	}
}

// Pending returns the outstanding growth.
func (b *Body) Pending() int {
	return b.pending
}

// Head returns the head cell.
func (b *Body) Head() Cell {
	return b.cells[0]
}

// Direction returns the heading that the next Advance will use.
func (b *Body) Direction() Direction {
	return b.dir
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the segments, head first.
func (b *Body) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Contains reports whether any segment occupies c.
func (b *Body) Contains(c Cell) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head overlaps another segment.
func (b *Body) HitsSelf() bool {
	head := b.cells[0]
	for _, seg := range b.cells[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// moveHead relocates the head after a wrap-around.
func (b *Body) moveHead(c Cell) {
	b.cells[0] = c
}
