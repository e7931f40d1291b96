package chat_test

import (
	"connecthub/internal/chat"
)

// mockConn is a mock implementation of chat.Conn for testing. Core code
// delivers payloads through Client.Outgoing, so the conn itself only needs
// to exist.
type mockConn struct {
	closed     bool
	remoteAddr string
}

func (m *mockConn) Write(data []byte) error {
	return nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockConn) RemoteAddr() string {
	return m.remoteAddr
}

// Compile-time check that mockConn implements chat.Conn
var _ chat.Conn = (*mockConn)(nil)

func newTestClient() *chat.Client {
	return chat.NewClient(&mockConn{remoteAddr: "127.0.0.1:1234"}, 16)
}

// drain collects every payload currently queued for c, in order.
func drain(c *chat.Client) []string {
	var out []string
	for {
		select {
		case data := <-c.Outgoing:
			out = append(out, string(data))
		default:
			return out
		}
	}
}

// mapSource serves shared file content from memory.
type mapSource map[string][]byte

func (s mapSource) ReadFile(name string) ([]byte, error) {
	content, ok := s[name]
	if !ok {
		return nil, chat.ErrFileNotFound
	}
	return content, nil
}
