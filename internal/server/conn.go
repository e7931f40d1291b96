package server

import (
	"bufio"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// bufferedConn keeps reads going through the bufio.Reader that peeked the
// first bytes, while writes hit the socket directly.
type bufferedConn struct {
	net.Conn
	reader *bufio.Reader
}

func (bc bufferedConn) Read(p []byte) (int, error) {
	return bc.reader.Read(p)
}

// tcpConn adapts a raw TCP connection to chat.Conn.
type tcpConn struct {
	conn net.Conn
}

func (c tcpConn) Write(data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

func (c tcpConn) Close() error {
	return c.conn.Close()
}

func (c tcpConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// wsConn adapts an upgraded WebSocket connection to chat.Conn. Payloads go
// out as text frames so browser and terminal clients render them the same.
type wsConn struct {
	conn net.Conn
}

func (c wsConn) Write(data []byte) error {
	return wsutil.WriteServerText(c.conn, data)
}

func (c wsConn) Close() error {
	_ = wsutil.WriteServerMessage(c.conn, ws.OpClose, nil)
	return c.conn.Close()
}

func (c wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
