// Package islands discovers and recolours islands on a terrain.Grid.
//
// What:
//
//   - An island is a maximal group of land cells connected through any of the
//     eight neighbouring directions (N, NE, E, SE, S, SW, W, NW).
//   - DiscoverAll scans the grid row by row, gives every island its own colour
//     and moves its cells from terrain.Land to terrain.Discovered.
//   - Recolor repaints the island under one cell, whatever state it is in.
//
// How:
//
//   - Both operations are built on one flood fill that moves cells from one
//     state to another and writes a colour as it goes. The state itself is the
//     visited marker: a cell leaves the source state before its neighbours are
//     looked at, so no cell is visited twice and no extra bookkeeping is kept.
//   - The flood fill uses an explicit stack, so island size is bounded only by
//     memory, not by goroutine stack depth.
//   - Colours come from a ColorAllocator, which draws random "#RRGGBB" values
//     and rejects anything already in the Palette of the current pass.
//
// Complexity:
//
//   - DiscoverAll: O(N²·8) time, O(N²) memory for the work stack in the worst case.
//   - Recolor:     O(k·8) for an island of k cells.
//
// Errors:
//
//   - terrain.ErrOutOfBounds: seed coordinate outside the grid. Nothing is changed.
//   - ErrColorSpaceExhausted: every "#RRGGBB" value is already in the palette.
//     DiscoverAll rolls the grid back before returning it.
//
// The package is not safe for concurrent use on the same grid; callers that
// share a grid between goroutines must serialise access.
package islands
