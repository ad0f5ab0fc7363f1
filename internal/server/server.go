// Package server implements the island discovery server.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"island-discovery/internal/database"
	"island-discovery/internal/protocol"
	"island-discovery/pkg/terrain"

	"github.com/felixge/fgprof"
	"github.com/gorilla/websocket"
)

// ServerVersion is reported to clients in the welcome message.
const ServerVersion = "0.1.0"

// Server is the main island server.
type Server struct {
	cfg      Config
	db       *database.DB
	hub      *Hub
	upgrader websocket.Upgrader
	server   *http.Server
}

// Config holds server configuration.
type Config struct {
	Addr      string
	DBPath    string
	Size      int // Grid size used when a generate request leaves it at 0
	LandRatio int // Land ratio used when a generate request leaves it at 0
	MaxSize   int // Largest grid a client may ask for
}

// DefaultConfig returns the settings cmd/server starts from.
func DefaultConfig() Config {
	gen := terrain.DefaultGeneratorOptions()
	return Config{
		Addr:      ":30000",
		DBPath:    "data/islands.db",
		Size:      gen.Size,
		LandRatio: gen.LandRatio,
		MaxSize:   400,
	}
}

// New creates a new server.
func New(cfg Config) (*Server, error) {
	def := DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.LandRatio <= 0 {
		cfg.LandRatio = def.LandRatio
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Server{
		cfg: cfg,
		db:  db,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Viewer may be served from anywhere
			},
		},
	}

	s.hub = NewHub(s)

	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Run history
	mux.HandleFunc("/api/runs", s.handleListRuns)

	// Wall-clock profiler
	mux.Handle("/debug/fgprof", fgprof.Handler())

	return mux
}

// Start starts the hub and serves until Stop is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	log.Printf("Island Discovery Server")
	log.Printf("  Address: http://localhost%s", s.cfg.Addr)
	log.Printf("  Database: %s (schema v%d)", s.db.Path(), s.db.Version())
	log.Printf("  WebSocket: ws://localhost%s/ws", s.cfg.Addr)
	log.Printf("")
	log.Printf("Press Ctrl+C to stop")

	go s.hub.Run()

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// handleWebSocket upgrades HTTP connections to WebSocket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s.hub, conn)
	s.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// HealthStatus is the body of /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Clients int    `json:"clients"`
}

// handleHealth reports liveness and the number of connected viewers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthStatus{
		Status:  "ok",
		Version: ServerVersion,
		Clients: s.hub.ClientCount(),
	})
}

// handleListRuns returns the most recent discovery runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.db.ListRuns(limit)
	if err != nil {
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(protocol.RunListPayload{Runs: runInfos(runs)})
}

// runInfos converts stored runs to their wire form.
func runInfos(runs []*database.Run) []protocol.RunInfo {
	out := make([]protocol.RunInfo, len(runs))
	for i, r := range runs {
		out[i] = protocol.RunInfo{
			ID:              r.ID,
			Seed:            r.Seed,
			Size:            r.Size,
			LandRatio:       r.LandRatio,
			IslandCount:     r.IslandCount,
			DiscoveryMillis: r.DiscoveryMillis,
			Recolors:        r.Recolors,
			CreatedAt:       r.CreatedAt,
		}
	}
	return out
}

// Hub maintains the set of active clients.
type Hub struct {
	server *Server

	// Registered clients
	clients map[*Client]bool

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub(server *Server) *Hub {
	return &Hub{
		server:     server,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

			log.Printf("Session %s opened (%d connected)", client.Session.ID, h.ClientCount())
			h.sendWelcome(client)

		case client := <-h.unregister:
			h.handleDisconnect(client)
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Dispatch handles a message from a client on the caller's goroutine.
// Each client's read pump calls it in turn, so one client's requests are
// answered in the order they were sent while other clients proceed in parallel.
func (h *Hub) Dispatch(client *Client, msg *protocol.Message) {
	NewHandlers(h).Handle(client, msg)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// sendWelcome sends a welcome message to a new client.
func (h *Hub) sendWelcome(client *Client) {
	payload := protocol.WelcomePayload{
		ServerVersion: ServerVersion,
		SessionID:     client.Session.ID,
	}
	msg, _ := protocol.NewMessage(protocol.TypeWelcome, payload)
	client.Send(msg)
}

// handleDisconnect handles a client disconnecting.
func (h *Hub) handleDisconnect(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	log.Printf("Session %s closed", client.Session.ID)

	client.close()
}
