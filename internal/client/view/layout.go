// Package view maps between screen pixels and grid cells for the viewer.
// It has no graphics dependency so it can be tested headless.
package view

import (
	"fmt"
	"image/color"
	"math"

	"island-discovery/pkg/terrain"
)

// Layout places a square grid of Size×Size cells in a Width×Height pixel area
// whose top-left corner is (X, Y).
type Layout struct {
	X, Y          int
	Width, Height int
	Size          int
}

// ScreenToGrid converts a pixel position to a (row, col) cell.
// ok is false when the position is outside the grid area.
func (l Layout) ScreenToGrid(sx, sy int) (row, col int, ok bool) {
	if l.Size <= 0 || l.Width <= 0 || l.Height <= 0 {
		return -1, -1, false
	}
	x, y := sx-l.X, sy-l.Y
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return -1, -1, false
	}
	col = int(math.Floor(float64(l.Size) / float64(l.Width) * float64(x)))
	row = int(math.Floor(float64(l.Size) / float64(l.Height) * float64(y)))
	if row >= l.Size || col >= l.Size {
		return -1, -1, false
	}
	return row, col, true
}

// CellRect returns the pixel rectangle of (row, col). Cells are laid out with
// fractional sizes so the grid always fills the area exactly.
func (l Layout) CellRect(row, col int) (x, y, w, h float32) {
	cw := float32(l.Width) / float32(l.Size)
	ch := float32(l.Height) / float32(l.Size)
	return float32(l.X) + float32(col)*cw, float32(l.Y) + float32(row)*ch, cw, ch
}

// Fallback is drawn for colours that are not "#RRGGBB".
var Fallback = color.RGBA{255, 0, 255, 255}

// RGBA converts a grid colour to an image colour.
func RGBA(c terrain.Color) color.RGBA {
	r, g, b, ok := c.RGB()
	if !ok {
		return Fallback
	}
	return color.RGBA{r, g, b, 255}
}

// Status is what the HUD shows under the grid.
type Status struct {
	Seed            int64
	Size            int
	LandRatio       int
	IslandCount     int
	DiscoveryMillis float64
	Brush           terrain.Color
	Online          bool
	Message         string
	HoverCells      int // Size of the island under the cursor, 0 for none
}

// Lines formats the status as HUD text lines.
func (s Status) Lines() []string {
	mode := "offline"
	if s.Online {
		mode = "online"
	}
	first := fmt.Sprintf("Islands: %d   Discovery: %.2f ms   Grid: %dx%d   Ratio: %d   Seed: %d   [%s]",
		s.IslandCount, s.DiscoveryMillis, s.Size, s.Size, s.LandRatio, s.Seed, mode)
	if s.HoverCells > 0 {
		first += fmt.Sprintf("   Hover: %d cells", s.HoverCells)
	}
	lines := []string{
		first,
		fmt.Sprintf("Brush: %s   Click: recolor island   R: regenerate   V: paste color   C: copy color   H: history",
			s.Brush),
	}
	if s.Message != "" {
		lines = append(lines, s.Message)
	}
	return lines
}
