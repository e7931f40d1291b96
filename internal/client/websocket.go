package client

import (
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocket is a chat client over a WebSocket connection.
type WebSocket struct {
	url      string
	conn     *websocket.Conn
	messages chan string
	mu       sync.RWMutex
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWebSocket creates a WebSocket client for the given ws:// URL.
func NewWebSocket(url string) *WebSocket {
	return &WebSocket{
		url:      url,
		messages: make(chan string, 16),
		done:     make(chan struct{}),
	}
}

// Connect dials the server and starts receiving.
func (c *WebSocket) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.wg.Add(1)
	go c.receive()

	return nil
}

// Disconnect closes the connection to the server.
func (c *WebSocket) Disconnect() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()
}

// IsConnected returns whether the client is connected.
func (c *WebSocket) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Send writes one line to the server as a text frame.
func (c *WebSocket) Send(line string) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected to server")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Messages returns the channel for receiving server payloads.
func (c *WebSocket) Messages() <-chan string {
	return c.messages
}

// receive continuously reads payloads from the server.
func (c *WebSocket) receive() {
	defer c.wg.Done()

	for {
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading from server: %v", err)
			}
			return
		}

		select {
		case c.messages <- string(data):
		case <-c.done:
			return
		}
	}
}
