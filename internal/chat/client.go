package chat

import "github.com/google/uuid"

// Client is one connected session endpoint: an opaque identity plus the
// outbound queue the transport's writer goroutine drains.
type Client struct {
	ID       string
	Conn     Conn
	Outgoing chan []byte
}

// NewClient wraps conn with a fresh identity and a buffered outgoing queue.
func NewClient(conn Conn, buffer int) *Client {
	return &Client{
		ID:       uuid.NewString(),
		Conn:     conn,
		Outgoing: make(chan []byte, buffer),
	}
}

// send enqueues data without blocking. Returns false if the queue is full;
// the payload is dropped and the client catches up on its next
// snapshot-producing action.
func (c *Client) send(data []byte) bool {
	select {
	case c.Outgoing <- data:
		return true
	default:
		return false
	}
}
