package backend

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"island-discovery/internal/protocol"

	"github.com/coder/websocket"
)

// NetworkClient handles WebSocket communication with the server.
type NetworkClient struct {
	conn     *websocket.Conn
	sendChan chan *protocol.Message
	done     chan struct{}
	mu       sync.Mutex

	// Callbacks
	OnMessage    func(*protocol.Message)
	OnConnect    func()
	OnDisconnect func(error)

	connected bool
}

// NewNetworkClient creates a new network client.
func NewNetworkClient() *NetworkClient {
	return &NetworkClient{
		sendChan: make(chan *protocol.Message, 64),
		done:     make(chan struct{}),
	}
}

// wsURL builds the WebSocket URL for a server address.
// Addresses with a wss:// or ws:// scheme are used as given.
func wsURL(serverAddr string) string {
	switch {
	case strings.HasPrefix(serverAddr, "wss://"), strings.HasPrefix(serverAddr, "ws://"):
		return strings.TrimSuffix(serverAddr, "/") + "/ws"
	default:
		return "ws://" + serverAddr + "/ws"
	}
}

// Connect establishes a connection to the server.
func (c *NetworkClient) Connect(serverAddr string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	url := wsURL(serverAddr)
	log.Printf("Connecting to: %s", url)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		log.Printf("WebSocket dial failed: %v", err)
		return err
	}

	log.Printf("WebSocket connection established")
	c.conn = conn
	c.connected = true
	c.done = make(chan struct{})

	go c.readPump(conn)
	go c.writePump(conn)

	if c.OnConnect != nil {
		c.OnConnect()
	}

	return nil
}

// Disconnect closes the connection.
func (c *NetworkClient) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return
	}

	c.connected = false
	close(c.done)

	if c.conn != nil {
		c.conn.Close(websocket.StatusNormalClosure, "")
		c.conn = nil
	}
}

// IsConnected returns true if connected to server.
func (c *NetworkClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Send queues a message to be sent to the server.
func (c *NetworkClient) Send(msg *protocol.Message) {
	select {
	case c.sendChan <- msg:
	default:
		log.Println("Send channel full, dropping message")
	}
}

// SendPayload creates and sends a message with the given type and payload.
func (c *NetworkClient) SendPayload(msgType protocol.MessageType, payload interface{}) error {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	c.Send(msg)
	return nil
}

// readPump reads messages from the WebSocket.
func (c *NetworkClient) readPump(conn *websocket.Conn) {
	var readErr error
	defer func() {
		c.mu.Lock()
		wasConnected := c.connected
		c.connected = false
		c.mu.Unlock()

		if wasConnected && c.OnDisconnect != nil {
			c.OnDisconnect(readErr)
		}
	}()

	// Grid snapshots of large grids exceed the default 32KiB limit.
	conn.SetReadLimit(16 << 20)

	for {
		// Read with no timeout - rely on ping/pong to detect dead connections
		msgType, data, err := conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Printf("WebSocket read error: %v", err)
				readErr = err
			}
			return
		}

		// Only process text messages
		if msgType != websocket.MessageText {
			continue
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			continue
		}

		if c.OnMessage != nil {
			c.OnMessage(&msg)
		}
	}
}

// writePump writes messages to the WebSocket.
func (c *NetworkClient) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	for {
		select {
		case <-done:
			return

		case msg := <-c.sendChan:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Failed to marshal message: %v", err)
				cancel()
				continue
			}

			err = conn.Write(ctx, websocket.MessageText, data)
			cancel()

			if err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := conn.Ping(ctx)
			cancel()

			if err != nil {
				return
			}
		}
	}
}
