package islands_test

import (
	"fmt"

	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"
)

// ExampleLabeler_DiscoverAll counts the islands of a small picture. Diagonal
// neighbours belong to the same island.
func ExampleLabeler_DiscoverAll() {
	grid, _ := terrain.Parse(`
		##...
		.#..#
		...#.
		.....
		#....
	`)
	l := islands.NewLabeler(islands.NewRandomAllocator(1))

	n, _ := l.DiscoverAll(grid)
	fmt.Println("islands:", n)
	fmt.Print(grid.Picture())

	// Output:
	// islands: 3
	// @@...
	// .@..@
	// ...@.
	// .....
	// @....
}

// ExampleLabeler_Recolor repaints the island under a clicked cell.
func ExampleLabeler_Recolor() {
	grid, _ := terrain.Parse(`
		#..
		.#.
		...
	`)
	l := islands.NewLabeler(islands.NewRandomAllocator(1))
	_, _ = l.DiscoverAll(grid)

	_ = l.Recolor(grid, 1, 1, "#00FF00")
	c, _ := grid.Color(0, 0)
	fmt.Println(c)

	// Output:
	// #00FF00
}
