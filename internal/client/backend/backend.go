// Package backend runs grid operations for the viewer, either in-process or
// on a server over WebSocket.
package backend

import (
	"errors"
	"fmt"
	"log"
	"time"

	"island-discovery/internal/protocol"
	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"
)

var (
	ErrOffline      = errors.New("history needs a server connection")
	ErrNotConnected = errors.New("not connected to server")
	ErrNoGrid       = errors.New("no grid generated yet")
)

// Backend runs grid operations. Results are delivered through the
// callbacks set by the Game, possibly from another goroutine.
type Backend interface {
	Generate(p protocol.GeneratePayload) error
	Recolor(p protocol.RecolorPayload) error
	ListRuns(limit int) error
	Online() bool
	Close()
}

// Callbacks receive backend results.
type Callbacks struct {
	OnGrid  func(protocol.GridStatePayload)
	OnRuns  func(protocol.RunListPayload)
	OnError func(error)
}

// LocalBackend runs discovery in-process.
type LocalBackend struct {
	cb Callbacks

	grid        *terrain.Grid
	labeler     *islands.Labeler
	seed        int64
	landRatio   int
	islandCount int
	discovery   time.Duration
}

// NewLocalBackend creates an offline backend.
func NewLocalBackend(cb Callbacks) *LocalBackend {
	return &LocalBackend{cb: cb}
}

// Generate builds and discovers a new grid.
func (b *LocalBackend) Generate(p protocol.GeneratePayload) error {
	gen := terrain.NewGenerator(terrain.GeneratorOptions{
		Size:      p.Size,
		LandRatio: p.LandRatio,
		Seed:      p.Seed,
	})
	grid, err := gen.Generate()
	if err != nil {
		return err
	}
	labeler := islands.NewLabeler(islands.NewRandomAllocator(gen.Seed()))

	start := time.Now()
	count, err := labeler.DiscoverAll(grid)
	if err != nil {
		return err
	}

	b.grid = grid
	b.labeler = labeler
	b.seed = gen.Seed()
	b.landRatio = p.LandRatio
	b.islandCount = count
	b.discovery = time.Since(start)
	b.publish()
	return nil
}

// Recolor repaints the island under (Row, Col).
func (b *LocalBackend) Recolor(p protocol.RecolorPayload) error {
	if b.grid == nil {
		return ErrNoGrid
	}
	c, err := terrain.ParseColor(p.Color)
	if err != nil {
		return err
	}
	if err := b.labeler.Recolor(b.grid, p.Row, p.Col, c); err != nil {
		return err
	}
	b.publish()
	return nil
}

// ListRuns is not available offline.
func (b *LocalBackend) ListRuns(limit int) error {
	return ErrOffline
}

// Online reports false.
func (b *LocalBackend) Online() bool { return false }

// Close does nothing.
func (b *LocalBackend) Close() {}

func (b *LocalBackend) publish() {
	if b.cb.OnGrid == nil {
		return
	}
	p := protocol.NewGridStatePayload(b.grid)
	p.Seed = b.seed
	p.LandRatio = b.landRatio
	p.IslandCount = b.islandCount
	p.DiscoveryMillis = protocol.Millis(b.discovery)
	b.cb.OnGrid(p)
}

// RemoteBackend forwards operations to a server.
type RemoteBackend struct {
	cb      Callbacks
	network *NetworkClient
}

// NewRemoteBackend connects to serverAddr ("host:port" or a ws:// URL).
func NewRemoteBackend(serverAddr string, cb Callbacks) (*RemoteBackend, error) {
	b := &RemoteBackend{cb: cb, network: NewNetworkClient()}
	b.network.OnMessage = b.handleMessage
	b.network.OnDisconnect = func(err error) {
		log.Printf("Disconnected from server: %v", err)
		if cb.OnError != nil {
			cb.OnError(ErrNotConnected)
		}
	}
	if err := b.network.Connect(serverAddr); err != nil {
		return nil, err
	}
	return b, nil
}

// Generate asks the server for a new grid.
func (b *RemoteBackend) Generate(p protocol.GeneratePayload) error {
	return b.send(protocol.TypeGenerate, p)
}

// Recolor asks the server to repaint an island.
func (b *RemoteBackend) Recolor(p protocol.RecolorPayload) error {
	return b.send(protocol.TypeRecolor, p)
}

// ListRuns asks the server for recent runs.
func (b *RemoteBackend) ListRuns(limit int) error {
	return b.send(protocol.TypeListRuns, protocol.ListRunsPayload{Limit: limit})
}

// Online reports whether the connection is up.
func (b *RemoteBackend) Online() bool {
	return b.network.IsConnected()
}

// Close disconnects.
func (b *RemoteBackend) Close() {
	b.network.Disconnect()
}

func (b *RemoteBackend) send(msgType protocol.MessageType, payload interface{}) error {
	if !b.network.IsConnected() {
		return ErrNotConnected
	}
	return b.network.SendPayload(msgType, payload)
}

func (b *RemoteBackend) handleMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeWelcome:
		var p protocol.WelcomePayload
		if err := msg.ParsePayload(&p); err == nil {
			log.Printf("Connected to server %s, session %s", p.ServerVersion, p.SessionID)
		}

	case protocol.TypeGridState:
		var p protocol.GridStatePayload
		if err := msg.ParsePayload(&p); err != nil {
			log.Printf("Failed to parse grid state: %v", err)
			return
		}
		if b.cb.OnGrid != nil {
			b.cb.OnGrid(p)
		}

	case protocol.TypeRunList:
		var p protocol.RunListPayload
		if err := msg.ParsePayload(&p); err != nil {
			log.Printf("Failed to parse run list: %v", err)
			return
		}
		if b.cb.OnRuns != nil {
			b.cb.OnRuns(p)
		}

	case protocol.TypeError:
		var p protocol.ErrorPayload
		if err := msg.ParsePayload(&p); err != nil {
			log.Printf("Failed to parse error: %v", err)
			return
		}
		log.Printf("Server error: [%s] %s", p.Code, p.Message)
		if b.cb.OnError != nil {
			b.cb.OnError(fmt.Errorf("%s: %s", p.Code, p.Message))
		}

	default:
		log.Printf("Unhandled message type: %s", msg.Type)
	}
}
