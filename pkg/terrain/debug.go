package terrain

import (
	"fmt"
	"strings"
)

// Picture symbols used by Debug and Parse.
const (
	SeaRune        = '.'
	LandRune       = '#'
	DiscoveredRune = '@'
)

// Debug returns a string visualization of the grid.
func (g *Grid) Debug() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %dx%d\n", g.size, g.size))
	sb.WriteString(fmt.Sprintf("Land: %d  Discovered: %d  Sea: %d\n\n",
		g.Count(Land), g.Count(Discovered), g.Count(Sea)))
	sb.WriteString(g.Picture())
	return sb.String()
}

// Picture returns one line per row using SeaRune, LandRune and DiscoveredRune.
func (g *Grid) Picture() string {
	var sb strings.Builder
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			switch g.states[row*g.size+col] {
			case Land:
				sb.WriteRune(LandRune)
			case Discovered:
				sb.WriteRune(DiscoveredRune)
			default:
				sb.WriteRune(SeaRune)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Parse builds a grid from a picture such as the one returned by Picture.
// Blank lines and surrounding whitespace are ignored; the picture must be square.
// Cells get their initial colours.
func Parse(picture string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(picture, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	size := len(rows)
	grid, err := NewGrid(size)
	if err != nil {
		return nil, fmt.Errorf("empty picture: %w", ErrBadPicture)
	}

	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", row, len(runes), size, ErrBadPicture)
		}
		for col, r := range runes {
			var s State
			switch r {
			case SeaRune:
				s = Sea
			case LandRune:
				s = Land
			case DiscoveredRune:
				s = Discovered
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q: %w", row, col, r, ErrBadPicture)
			}
			i := row*size + col
			grid.states[i] = s
			grid.colors[i] = InitialColor(s)
		}
	}
	return grid, nil
}
