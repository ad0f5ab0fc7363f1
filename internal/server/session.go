package server

import (
	"errors"
	"sync"
	"time"

	"island-discovery/internal/protocol"
	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"

	"github.com/google/uuid"
)

// ErrNoGrid is returned when a session is asked about a grid it has not generated.
var ErrNoGrid = errors.New("no grid generated yet")

// Session owns one client's grid. All grid access goes through the session
// mutex, so a client's generate and recolor requests never overlap.
type Session struct {
	ID string

	mu          sync.Mutex
	grid        *terrain.Grid
	labeler     *islands.Labeler
	runID       string
	seed        int64
	landRatio   int
	islandCount int
	discovery   time.Duration
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// Generate replaces the session grid with a fresh one and discovers its islands.
// Island colours are drawn from the same seed as the terrain, so a seed
// reproduces the whole picture.
func (s *Session) Generate(opts terrain.GeneratorOptions) (protocol.GridStatePayload, error) {
	gen := terrain.NewGenerator(opts)
	grid, err := gen.Generate()
	if err != nil {
		return protocol.GridStatePayload{}, err
	}
	labeler := islands.NewLabeler(islands.NewRandomAllocator(gen.Seed()))

	start := time.Now()
	count, err := labeler.DiscoverAll(grid)
	elapsed := time.Since(start)
	if err != nil {
		return protocol.GridStatePayload{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.grid = grid
	s.labeler = labeler
	s.runID = ""
	s.seed = gen.Seed()
	s.landRatio = opts.LandRatio
	s.islandCount = count
	s.discovery = elapsed
	return s.snapshot(), nil
}

// Recolor repaints the island at (row, col).
func (s *Session) Recolor(row, col int, c terrain.Color) (protocol.GridStatePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		return protocol.GridStatePayload{}, ErrNoGrid
	}
	if err := s.labeler.Recolor(s.grid, row, col, c); err != nil {
		return protocol.GridStatePayload{}, err
	}
	return s.snapshot(), nil
}

// State returns the current grid.
func (s *Session) State() (protocol.GridStatePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		return protocol.GridStatePayload{}, ErrNoGrid
	}
	return s.snapshot(), nil
}

// SetRunID links the current grid to its stored history run.
func (s *Session) SetRunID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = id
}

// RunID returns the history run of the current grid, if any.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// snapshot must be called with s.mu held.
func (s *Session) snapshot() protocol.GridStatePayload {
	p := protocol.NewGridStatePayload(s.grid)
	p.SessionID = s.ID
	p.RunID = s.runID
	p.Seed = s.seed
	p.LandRatio = s.landRatio
	p.IslandCount = s.islandCount
	p.DiscoveryMillis = protocol.Millis(s.discovery)
	return p
}
