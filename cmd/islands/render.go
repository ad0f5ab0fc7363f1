package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"island-discovery/internal/protocol"
	"island-discovery/pkg/terrain"
)

// cellWidth is the number of terminal columns per grid cell, which keeps
// cells roughly square.
const cellWidth = 2

// renderColor draws one background-coloured block per cell. Colours that are
// not "#RRGGBB" fall back to the terrain rune so nothing is lost.
func renderColor(grid *terrain.Grid) string {
	styles := make(map[terrain.Color]lipgloss.Style)
	blank := strings.Repeat(" ", cellWidth)
	size := grid.Size()
	colors := grid.Colors()
	states := grid.States()

	var sb strings.Builder
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			i := row*size + col
			c := colors[i]
			if _, _, _, ok := c.RGB(); !ok {
				sb.WriteString(strings.Repeat(string(stateRune(states[i])), cellWidth))
				continue
			}
			st, ok := styles[c]
			if !ok {
				st = lipgloss.NewStyle().Background(lipgloss.Color(string(c)))
				styles[c] = st
			}
			sb.WriteString(st.Render(blank))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func stateRune(s terrain.State) rune {
	switch s {
	case terrain.Land:
		return terrain.LandRune
	case terrain.Discovered:
		return terrain.DiscoveredRune
	default:
		return terrain.SeaRune
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printSummary writes the one-line result of a discovery pass.
func printSummary(w io.Writer, d *discovery, runID string) {
	line := fmt.Sprintf("Islands: %d   Discovery: %.2f ms   Grid: %dx%d   Seed: %d",
		d.count, protocol.Millis(d.elapsed), d.grid.Size(), d.grid.Size(), d.seed)
	fmt.Fprintln(w, headerStyle.Render(line))
	if runID != "" {
		fmt.Fprintln(w, mutedStyle.Render("Run: "+runID))
	}
}

func printGrid(w io.Writer, grid *terrain.Grid, ascii bool) {
	if ascii {
		fmt.Fprint(w, grid.Picture())
		return
	}
	fmt.Fprint(w, renderColor(grid))
}
