package protocol

import (
	"math"
	"time"

	"island-discovery/pkg/terrain"
)

// WelcomePayload is sent when a client connects.
type WelcomePayload struct {
	ServerVersion string `json:"server_version"`
	SessionID     string `json:"session_id"`
}

// GeneratePayload asks the server for a fresh, fully discovered grid.
type GeneratePayload struct {
	Size      int   `json:"size"`
	LandRatio int   `json:"land_ratio"`
	Seed      int64 `json:"seed,omitempty"` // 0 lets the server pick
}

// RecolorPayload asks the server to repaint the island at (Row, Col).
type RecolorPayload struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Color string `json:"color"`
}

// GridStatePayload is the full grid as seen after the last operation.
type GridStatePayload struct {
	SessionID       string   `json:"session_id"`
	RunID           string   `json:"run_id"`
	Seed            int64    `json:"seed"`
	Size            int      `json:"size"`
	LandRatio       int      `json:"land_ratio"`
	States          []int    `json:"states"` // Row-major terrain.State values
	Colors          []string `json:"colors"` // Row-major "#RRGGBB"
	IslandCount     int      `json:"island_count"`
	DiscoveryMillis float64  `json:"discovery_ms"`
}

// NewGridStatePayload flattens a grid into a payload.
func NewGridStatePayload(grid *terrain.Grid) GridStatePayload {
	states := grid.States()
	colors := grid.Colors()
	p := GridStatePayload{
		Size:   grid.Size(),
		States: make([]int, len(states)),
		Colors: make([]string, len(colors)),
	}
	for i, s := range states {
		p.States[i] = int(s)
	}
	for i, c := range colors {
		p.Colors[i] = string(c)
	}
	return p
}

// Grid rebuilds the grid carried by the payload.
func (p GridStatePayload) Grid() (*terrain.Grid, error) {
	states := make([]terrain.State, len(p.States))
	for i, s := range p.States {
		states[i] = terrain.State(s)
	}
	colors := make([]terrain.Color, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = terrain.Color(c)
	}
	return terrain.FromCells(p.Size, states, colors)
}

// Millis converts a duration to milliseconds rounded to two decimals.
func Millis(d time.Duration) float64 {
	return math.Floor(float64(d)/float64(time.Millisecond)*100) / 100
}

// ListRunsPayload asks for the most recent discovery runs.
type ListRunsPayload struct {
	Limit int `json:"limit"`
}

// RunInfo summarises one stored discovery run.
type RunInfo struct {
	ID              string    `json:"id"`
	Seed            int64     `json:"seed"`
	Size            int       `json:"size"`
	LandRatio       int       `json:"land_ratio"`
	IslandCount     int       `json:"island_count"`
	DiscoveryMillis float64   `json:"discovery_ms"`
	Recolors        int       `json:"recolors"`
	CreatedAt       time.Time `json:"created_at"`
}

// RunListPayload is the response to ListRuns.
type RunListPayload struct {
	Runs []RunInfo `json:"runs"`
}
