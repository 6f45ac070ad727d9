package engine

import "sort"

// Board maps grid points to the characters standing on them. Every
// character is owned by exactly one cell; removing it from the cell
// drops it from the game.
type Board struct {
	height, width int
	cells         map[GridPoint]Character
}

// NewBoard creates an empty board
func NewBoard(height, width int) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrIllegalArgument
	}
	return &Board{
		height: height,
		width:  width,
		cells:  make(map[GridPoint]Character),
	}, nil
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) Width() int {
	return b.width
}

// InBounds reports whether p lies inside the board rectangle
func (b *Board) InBounds(p GridPoint) bool {
	return p.Row >= 0 && p.Row < b.height && p.Col >= 0 && p.Col < b.width
}

// At returns the character at p, if any
func (b *Board) At(p GridPoint) (Character, bool) {
	c, ok := b.cells[p]
	return c, ok
}

// Insert places c at p. The cell must be inside the board and empty.
func (b *Board) Insert(p GridPoint, c Character) error {
	if !b.InBounds(p) {
		return ErrIllegalCell
	}
	if _, ok := b.cells[p]; ok {
		return ErrCellOccupied
	}
	if c == nil {
		return ErrIllegalArgument
	}
	b.cells[p] = c
	return nil
}

// Remove drops whatever stands at p
func (b *Board) Remove(p GridPoint) {
	delete(b.cells, p)
}

// Len returns the number of occupied cells
func (b *Board) Len() int {
	return len(b.cells)
}

// Points returns the occupied cells in row-major order
func (b *Board) Points() []GridPoint {
	points := make([]GridPoint, 0, len(b.cells))
	for p := range b.cells {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Less(points[j])
	})
	return points
}

// Each calls fn for every occupied cell in row-major order. fn must not
// add or remove characters.
func (b *Board) Each(fn func(p GridPoint, c Character)) {
	for _, p := range b.Points() {
		fn(p, b.cells[p])
	}
}

// Clone returns a board with deep copies of every character
func (b *Board) Clone() *Board {
	clone := &Board{
		height: b.height,
		width:  b.width,
		cells:  make(map[GridPoint]Character, len(b.cells)),
	}
	for p, c := range b.cells {
		clone.cells[p] = c.Clone()
	}
	return clone
}

// relocate moves the character at src to the empty cell dst, keeping its identity
func (b *Board) relocate(src, dst GridPoint) {
	c := b.cells[src]
	delete(b.cells, src)
	b.cells[dst] = c
}
