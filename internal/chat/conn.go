// Package chat provides the core room, board, and broadcast engine shared by
// all transports.
package chat

// Conn is the outbound side of a client connection. The transport owns the
// socket lifecycle; the core only holds a handle for writing and cleanup.
type Conn interface {
	// Write sends raw bytes to the client.
	Write(data []byte) error

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the remote address for logging.
	RemoteAddr() string
}
