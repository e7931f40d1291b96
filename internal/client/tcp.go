package client

import (
	"fmt"
	"io"
	"log"
	"net"
	"sync"
)

// TCP is a chat client over a raw TCP connection. Incoming payloads are
// delivered verbatim on the Messages channel; color escapes stay intact.
type TCP struct {
	address  string
	conn     net.Conn
	messages chan string
	mu       sync.RWMutex
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewTCP creates a TCP client for the given server address.
func NewTCP(address string) *TCP {
	return &TCP{
		address:  address,
		messages: make(chan string, 16),
		done:     make(chan struct{}),
	}
}

// Connect establishes a connection to the server.
func (c *TCP) Connect() error {
	conn, err := net.Dial("tcp", c.address)
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
func (c *TCP) Disconnect() {
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
func (c *TCP) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Send writes one line to the server.
func (c *TCP) Send(line string) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected to server")
	}

	if _, err := conn.Write([]byte(line)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Messages returns the channel for receiving server payloads.
func (c *TCP) Messages() <-chan string {
	return c.messages
}

// receive continuously reads payloads from the server.
func (c *TCP) receive() {
	defer c.wg.Done()

	buf := make([]byte, 4096)
	for {
		select {
		case <-c.done:
			return
		default:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()

			if conn == nil {
				return
			}

			n, err := conn.Read(buf)
			if err != nil {
				if err != io.EOF {
					log.Printf("Error reading from server: %v", err)
				}
				return
			}

			if n > 0 {
				select {
				case c.messages <- string(buf[:n]):
				case <-c.done:
					return
				}
			}
		}
	}
}
