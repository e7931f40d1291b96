// Package client provides terminal clients for the ConnectHub server.
package client

// Client defines the interface for chat clients.
// Both TCP and WebSocket implementations satisfy this interface.
type Client interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	Send(line string) error
	Messages() <-chan string
}
