package terrain

import "fmt"

// NewGrid creates a size×size grid with every cell set to Sea.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	g := &Grid{
		size:   size,
		states: make([]State, size*size),
		colors: make([]Color, size*size),
	}
	for i := range g.colors {
		g.colors[i] = SeaColor
	}
	return g, nil
}

// FromCells builds a grid from row-major state and colour slices, e.g. a snapshot
// received over the network. The slices are copied.
func FromCells(size int, states []State, colors []Color) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if len(states) != size*size || len(colors) != size*size {
		return nil, fmt.Errorf("expected %d cells, got %d states and %d colors: %w",
			size*size, len(states), len(colors), ErrBadPicture)
	}
	for i, s := range states {
		if !s.Valid() {
			return nil, fmt.Errorf("cell %d: %w", i, ErrInvalidState)
		}
	}
	g := &Grid{
		size:   size,
		states: make([]State, len(states)),
		colors: make([]Color, len(colors)),
	}
	copy(g.states, states)
	copy(g.colors, colors)
	return g, nil
}

// Size returns the side length N.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether (row, col) lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Get returns the state at (row, col).
func (g *Grid) Get(row, col int) (State, error) {
	i, err := g.index(row, col)
	if err != nil {
		return Sea, err
	}
	return g.states[i], nil
}

// Set changes the state at (row, col).
func (g *Grid) Set(row, col int, s State) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	if !s.Valid() {
		return fmt.Errorf("set (%d,%d) to %d: %w", row, col, int(s), ErrInvalidState)
	}
	g.states[i] = s
	return nil
}

// Color returns the colour at (row, col).
func (g *Grid) Color(row, col int) (Color, error) {
	i, err := g.index(row, col)
	if err != nil {
		return "", err
	}
	return g.colors[i], nil
}

// SetColor changes the colour at (row, col).
func (g *Grid) SetColor(row, col int, c Color) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.colors[i] = c
	return nil
}

// States returns a row-major copy of all cell states.
func (g *Grid) States() []State {
	out := make([]State, len(g.states))
	copy(out, g.states)
	return out
}

// Colors returns a row-major copy of all cell colours.
func (g *Grid) Colors() []Color {
	out := make([]Color, len(g.colors))
	copy(out, g.colors)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:   g.size,
		states: g.States(),
		colors: g.Colors(),
	}
}

// Count returns how many cells are in state s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, v := range g.states {
		if v == s {
			n++
		}
	}
	return n
}

// index maps (row, col) to a row-major index.
func (g *Grid) index(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, fmt.Errorf("(%d,%d) on %dx%d grid: %w", row, col, g.size, g.size, ErrOutOfBounds)
	}
	return row*g.size + col, nil
}

// Restore overwrites g with the contents of src, which must have the same size.
func (g *Grid) Restore(src *Grid) error {
	if src.size != g.size {
		return fmt.Errorf("restore %dx%d grid from %dx%d: %w", g.size, g.size, src.size, src.size, ErrInvalidSize)
	}
	copy(g.states, src.states)
	copy(g.colors, src.colors)
	return nil
}
