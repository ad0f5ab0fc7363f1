package islands

import (
	"fmt"

	"island-discovery/pkg/terrain"
)

// Labeler discovers and recolours islands.
type Labeler struct {
	colors ColorAllocator
}

// NewLabeler creates a labeler that takes island colours from colors.
func NewLabeler(colors ColorAllocator) *Labeler {
	return &Labeler{colors: colors}
}

// DiscoverAll gives every land island on the grid its own colour and moves its
// cells to terrain.Discovered. Cells are scanned in row-major order; each Land
// cell found is the seed of a new island. Returns the number of islands found.
//
// If the allocator runs out of colours the grid is restored to its state before
// the call and the error is returned.
func (l *Labeler) DiscoverAll(grid *terrain.Grid) (int, error) {
	snapshot := grid.Clone()
	palette := NewPalette()
	count := 0
	size := grid.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if mustGet(grid, row, col) != terrain.Land {
				continue
			}
			c, err := l.colors.AllocateUnique(palette)
			if err != nil {
				if rerr := grid.Restore(snapshot); rerr != nil {
					panic(fmt.Sprintf("islands: rollback: %v", rerr))
				}
				return 0, fmt.Errorf("island %d at (%d,%d): %w", count+1, row, col, err)
			}
			palette.Put(c)
			count++
			floodToggle(grid, row, col, c, terrain.Discovered, terrain.Land)
		}
	}
	return count, nil
}

// Recolor paints the island containing (row, col) with c and leaves it in
// terrain.Discovered, whether it was Land or Discovered before. A Sea seed is
// a no-op.
//
// The same flood fill that DiscoverAll uses is run twice on purpose. The first
// pass turns a Discovered island back into Land; the second turns Land into
// Discovered. Because the flood only touches cells in its source state, exactly
// one of the two passes does the repainting for a Land island, and a
// Discovered island is walked by both, ending painted and Discovered. The
// caller never needs to know which state the island is in, and no third
// "visited" state is required.
func (l *Labeler) Recolor(grid *terrain.Grid, row, col int, c terrain.Color) error {
	if _, err := grid.Get(row, col); err != nil {
		return err
	}
	floodToggle(grid, row, col, c, terrain.Land, terrain.Discovered)
	floodToggle(grid, row, col, c, terrain.Discovered, terrain.Land)
	return nil
}

// IslandAt returns the row-major indices of the island containing (row, col),
// or nil for a sea cell. The grid is left unchanged.
func IslandAt(grid *terrain.Grid, row, col int) ([]int, error) {
	s, err := grid.Get(row, col)
	if err != nil {
		return nil, err
	}
	if s == terrain.Sea {
		return nil, nil
	}

	size := grid.Size()
	seen := make([]bool, size*size)
	seen[row*size+col] = true
	queue := []int{row*size + col}

	for qi := 0; qi < len(queue); qi++ {
		r, k := queue[qi]/size, queue[qi]%size
		for _, d := range neighborOffsets {
			nr, nk := r+d[0], k+d[1]
			if !grid.InBounds(nr, nk) || seen[nr*size+nk] || mustGet(grid, nr, nk) != s {
				continue
			}
			seen[nr*size+nk] = true
			queue = append(queue, nr*size+nk)
		}
	}
	return queue, nil
}
