package islands

import (
	"fmt"

	"island-discovery/pkg/terrain"
)

// neighborOffsets lists the eight (row, col) steps of 8-directional adjacency.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// floodToggle moves the component of from-state cells containing (row, col)
// into the target state and paints it with c. It does nothing if (row, col) is
// not in state from. The from state doubles as the visited marker: a cell is
// switched to target when it is pushed, so it can never be pushed twice.
// Returns the number of cells changed. Callers must pass an in-bounds seed.
func floodToggle(grid *terrain.Grid, row, col int, c terrain.Color, target, from terrain.State) int {
	if target == from {
		panic(fmt.Sprintf("islands: flood from %s to itself", from))
	}
	if mustGet(grid, row, col) != from {
		return 0
	}

	paint(grid, row, col, c, target)
	stack := [][2]int{{row, col}}
	changed := 0

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		changed++

		for _, d := range neighborOffsets {
			r, k := cell[0]+d[0], cell[1]+d[1]
			if !grid.InBounds(r, k) || mustGet(grid, r, k) != from {
				continue
			}
			paint(grid, r, k, c, target)
			stack = append(stack, [2]int{r, k})
		}
	}
	return changed
}

// mustGet reads an in-bounds cell. Any failure is a broken invariant.
func mustGet(grid *terrain.Grid, row, col int) terrain.State {
	s, err := grid.Get(row, col)
	if err != nil {
		panic(fmt.Sprintf("islands: read (%d,%d): %v", row, col, err))
	}
	if !s.Valid() {
		panic(fmt.Sprintf("islands: cell (%d,%d) has invalid state %d", row, col, int(s)))
	}
	return s
}

func paint(grid *terrain.Grid, row, col int, c terrain.Color, s terrain.State) {
	if err := grid.SetColor(row, col, c); err != nil {
		panic(fmt.Sprintf("islands: paint (%d,%d): %v", row, col, err))
	}
	if err := grid.Set(row, col, s); err != nil {
		panic(fmt.Sprintf("islands: set (%d,%d): %v", row, col, err))
	}
}
