package client

import (
	"fmt"
	"log"
	"sync"

	"island-discovery/internal/client/backend"
	"island-discovery/internal/client/view"
	"island-discovery/internal/protocol"
	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	GridPixels   = 800
	HUDHeight    = 94
	ScreenWidth  = GridPixels
	ScreenHeight = GridPixels + HUDHeight

	DefaultBrush = "#00FF00"

	historyLimit = 15
)

// Game is the main Ebitengine game struct.
type Game struct {
	config      *Config
	configDirty bool
	backend     backend.Backend
	layout      view.Layout

	// Widgets
	brushInput *ColorInput
	applyBtn   *Button
	regenBtn   *Button

	brush       terrain.Color
	showHistory bool

	// Updated from backend callbacks, possibly on the network goroutine.
	mu      sync.Mutex
	grid    *terrain.Grid
	state   protocol.GridStatePayload
	runs    []protocol.RunInfo
	message string // Last action result, cleared by the next grid
	notice  string // Shown while there is no message, e.g. the offline fallback
	dirty   bool

	// Island under the cursor
	hoverRow, hoverCol int
	hover              []int

	// Pre-rendered grid, redrawn when dirty.
	canvas *ebiten.Image
}

// NewGame creates a viewer. With offline set, or when the server cannot be
// reached, discovery runs in-process.
func NewGame(offline bool, serverAddr string) (*Game, error) {
	config, err := LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
	}

	// Initialize clipboard for paste support
	InitClipboard()

	g := &Game{
		config:   config,
		layout:   view.Layout{Width: GridPixels, Height: GridPixels},
		canvas:   ebiten.NewImage(GridPixels, GridPixels),
		hoverRow: -1,
		hoverCol: -1,
	}

	brush, err := terrain.ParseColor(config.Brush)
	if err != nil {
		brush = DefaultBrush
	}
	g.brush = brush

	g.brushInput = NewColorInput(8, GridPixels+62, 120, 26, brush)
	g.applyBtn = NewButton(136, GridPixels+62, 90, 26, "Set brush", g.applyBrushInput)
	g.regenBtn = NewButton(234, GridPixels+62, 100, 26, "Regenerate", g.regenerate)
	g.regenBtn.Primary = true

	cb := backend.Callbacks{
		OnGrid:  g.handleGrid,
		OnRuns:  g.handleRuns,
		OnError: g.handleError,
	}

	if offline || config.Offline {
		g.backend = backend.NewLocalBackend(cb)
		g.notice = "Offline mode"
	} else {
		if serverAddr == "" {
			serverAddr = config.LastServer
		}
		remote, err := backend.NewRemoteBackend(serverAddr, cb)
		if err != nil {
			log.Printf("Cannot reach %s, running offline: %v", serverAddr, err)
			g.backend = backend.NewLocalBackend(cb)
			g.notice = fmt.Sprintf("Server %s unreachable, running offline", serverAddr)
		} else {
			g.backend = remote
			config.LastServer = serverAddr
			g.configDirty = true
		}
	}

	g.regenerate()
	return g, nil
}

// WindowSize returns the window size remembered from the last session.
func (g *Game) WindowSize() (int, int) {
	return g.config.WindowSize(ScreenWidth, ScreenHeight)
}

// Close releases the backend and saves changed settings.
func (g *Game) Close() {
	g.backend.Close()
	if g.configDirty {
		if err := g.config.Save(); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
}

// Update handles input.
func (g *Game) Update() error {
	g.trackWindowSize(ebiten.WindowSize())

	g.brushInput.Update()
	g.applyBtn.Update()
	g.regenBtn.Update()

	row, col, onGrid := g.cursorCell()
	g.setHover(row, col, onGrid)

	if g.brushInput.Focused() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			g.applyBrushInput()
			g.brushInput.Blur()
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.brushInput.SetValue(g.brush)
			g.brushInput.Blur()
		}
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.regenerate()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteBrush()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyUnderCursor()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.toggleHistory()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.showHistory = false
	}

	if onGrid && !g.showHistory && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.recolor(row, col)
	}
	return nil
}

// Draw renders the grid and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	g.mu.Lock()
	if g.dirty {
		g.renderGrid()
		g.dirty = false
	}
	status := g.statusLocked()
	runs := g.runs
	hover := g.hover
	layout := g.layout
	g.mu.Unlock()

	screen.DrawImage(g.canvas, nil)
	for _, i := range hover {
		x, y, w, h := layout.CellRect(i/layout.Size, i%layout.Size)
		vector.DrawFilledRect(screen, x, y, w, h, ColorHighlight, false)
	}

	for i, line := range status.Lines() {
		ebitenutil.DebugPrintAt(screen, line, 8, GridPixels+6+i*16)
	}

	g.brushInput.Draw(screen)
	g.applyBtn.Draw(screen)
	g.regenBtn.Draw(screen)

	if g.showHistory {
		g.drawHistory(screen, runs)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// renderGrid must be called with g.mu held.
func (g *Game) renderGrid() {
	g.canvas.Fill(ColorBackground)
	if g.grid == nil {
		return
	}
	colors := g.grid.Colors()
	size := g.grid.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			x, y, w, h := g.layout.CellRect(row, col)
			vector.DrawFilledRect(g.canvas, x, y, w, h, view.RGBA(colors[row*size+col]), false)
		}
	}
}

func (g *Game) drawHistory(screen *ebiten.Image, runs []protocol.RunInfo) {
	const x, y, w = 60, 60, 680
	h := 40 + (len(runs)+1)*16
	DrawPanel(screen, x, y, w, h)
	DrawText(screen, "Recent runs (H or Esc to close)", x+10, y+10)
	DrawText(screen, fmt.Sprintf("%-8s  %12s  %5s  %5s  %7s  %9s  %8s", "run", "seed", "size", "ratio", "islands", "ms", "recolors"),
		x+10, y+30)
	for i, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		line := fmt.Sprintf("%-8s  %12d  %5d  %5d  %7d  %9.2f  %8d",
			id, r.Seed, r.Size, r.LandRatio, r.IslandCount, r.DiscoveryMillis, r.Recolors)
		DrawText(screen, line, x+10, y+46+i*16)
	}
}

func (g *Game) cursorCell() (row, col int, ok bool) {
	mx, my := ebiten.CursorPosition()
	g.mu.Lock()
	layout := g.layout
	g.mu.Unlock()
	return layout.ScreenToGrid(mx, my)
}

// setHover records the cell under the cursor and the island it belongs to.
// The island is looked up again only when the cell changes or a new grid
// arrives (handleGrid resets the hover cell).
func (g *Game) setHover(row, col int, ok bool) {
	if !ok {
		row, col = -1, -1
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if row == g.hoverRow && col == g.hoverCol {
		return
	}
	g.hoverRow, g.hoverCol = row, col
	g.hover = nil
	if !ok || g.grid == nil {
		return
	}
	cells, err := islands.IslandAt(g.grid, row, col)
	if err != nil {
		return
	}
	g.hover = cells
}

// trackWindowSize remembers the window size for the next session.
func (g *Game) trackWindowSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if w != g.config.WindowWidth || h != g.config.WindowHeight {
		g.config.WindowWidth, g.config.WindowHeight = w, h
		g.configDirty = true
	}
}

func (g *Game) regenerate() {
	g.showHistory = false
	err := g.backend.Generate(protocol.GeneratePayload{
		Size:      g.config.Size,
		LandRatio: g.config.LandRatio,
	})
	if err != nil {
		g.handleError(err)
	}
}

func (g *Game) recolor(row, col int) {
	err := g.backend.Recolor(protocol.RecolorPayload{Row: row, Col: col, Color: string(g.brush)})
	if err != nil {
		g.handleError(err)
	}
}

func (g *Game) setBrush(c terrain.Color) {
	g.brush = c
	g.brushInput.SetValue(c)
	g.config.Brush = string(c)
	g.configDirty = true
	g.setMessage("Brush set to " + string(c))
}

func (g *Game) applyBrushInput() {
	c, err := g.brushInput.Value()
	if err != nil {
		g.handleError(err)
		return
	}
	g.setBrush(c)
}

func (g *Game) pasteBrush() {
	c, err := PasteColor()
	if err != nil {
		g.handleError(fmt.Errorf("paste: %w", err))
		return
	}
	g.setBrush(c)
}

func (g *Game) copyUnderCursor() {
	row, col, ok := g.cursorCell()
	if !ok {
		return
	}
	g.mu.Lock()
	var c terrain.Color
	var err error
	if g.grid != nil {
		c, err = g.grid.Color(row, col)
	}
	g.mu.Unlock()
	if err != nil || c == "" {
		return
	}
	if err := CopyColor(c); err != nil {
		g.handleError(fmt.Errorf("copy: %w", err))
		return
	}
	g.setMessage("Copied " + string(c))
}

func (g *Game) toggleHistory() {
	if g.showHistory {
		g.showHistory = false
		return
	}
	if err := g.backend.ListRuns(historyLimit); err != nil {
		g.handleError(err)
		return
	}
	g.showHistory = true
}

func (g *Game) handleGrid(p protocol.GridStatePayload) {
	grid, err := p.Grid()
	if err != nil {
		log.Printf("Bad grid from backend: %v", err)
		g.handleError(err)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grid = grid
	g.state = p
	g.layout.Size = grid.Size()
	g.dirty = true
	g.message = ""
	g.hoverRow, g.hoverCol, g.hover = -1, -1, nil
}

func (g *Game) handleRuns(p protocol.RunListPayload) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.runs = p.Runs
}

func (g *Game) handleError(err error) {
	log.Printf("Error: %v", err)
	g.setMessage("Error: " + err.Error())
}

func (g *Game) setMessage(msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.message = msg
}

// statusLocked must be called with g.mu held.
func (g *Game) statusLocked() view.Status {
	msg := g.message
	if msg == "" {
		msg = g.notice
	}
	return view.Status{
		Seed:            g.state.Seed,
		Size:            g.state.Size,
		LandRatio:       g.state.LandRatio,
		IslandCount:     g.state.IslandCount,
		DiscoveryMillis: g.state.DiscoveryMillis,
		Brush:           g.brush,
		Online:          g.backend != nil && g.backend.Online(),
		Message:         msg,
		HoverCells:      len(g.hover),
	}
}
