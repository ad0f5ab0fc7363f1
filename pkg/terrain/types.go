// Package terrain holds the square sea/land grid and its generator.
package terrain

// DefaultSize is the side length of a grid when none is given.
const DefaultSize = 50

// DefaultLandRatio is the generator threshold used when none is given.
const DefaultLandRatio = 40

// State is the per-cell state of a grid.
type State int

const (
	Sea State = iota
	Land
	Discovered
)

// String returns a human readable name for the state.
func (s State) String() string {
	switch s {
	case Sea:
		return "sea"
	case Land:
		return "land"
	case Discovered:
		return "discovered"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the three known states.
func (s State) Valid() bool {
	return s >= Sea && s <= Discovered
}

// Color is an opaque display colour, stored as "#RRGGBB".
type Color string

// Initial colours assigned by the generator.
const (
	SeaColor  Color = "#cbe1ff"
	LandColor Color = "#bbbbbb"
)

// InitialColor returns the colour a freshly generated cell of the given state gets.
// Discovered cells share the land colour until an island colour is written.
func InitialColor(s State) Color {
	if s == Sea {
		return SeaColor
	}
	return LandColor
}

// Grid is an N×N terrain grid. Cells are stored row-major in two parallel slices.
// All access goes through the bounds-checked accessors.
type Grid struct {
	size   int
	states []State
	colors []Color
}
