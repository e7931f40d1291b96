// Package server runs the unified ConnectHub listener: a single port
// accepting both raw TCP and WebSocket clients, each driven through a
// chat.Session.
package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"connecthub/internal/chat"
)

// Server accepts connections and hands each one to the chat engine.
type Server struct {
	cfg      Config
	hub      *chat.Hub
	listener net.Listener
	quit     chan struct{}
	wg       sync.WaitGroup
}

// New creates a Server for cfg. Zero-value cfg fields fall back to defaults.
func New(cfg Config) *Server {
	cfg = cfg.withDefaults()
	return &Server{
		cfg:  cfg,
		hub:  chat.NewHub(chat.DirSource{Root: cfg.FilesDir}),
		quit: make(chan struct{}),
	}
}

// Hub returns the shared state engine.
func (s *Server) Hub() *chat.Hub {
	return s.hub
}

// Start listens on the configured address and accepts connections until Stop
// is called. Failure to bind is returned; failure to accept one connection
// is logged and the loop continues.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	log.Printf("ConnectHub server started on %s (TCP and WebSocket)", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
				log.Printf("Failed to accept connection: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// Stop closes the listener and all client connections, then waits for the
// per-connection goroutines to finish.
func (s *Server) Stop() {
	close(s.quit)
	if s.listener != nil {
		s.listener.Close()
	}
	s.hub.CloseAll()
	s.wg.Wait()
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// sniffTimeout bounds how long protocol detection may delay a silent client's
// lobby join.
const sniffTimeout = 500 * time.Millisecond

// handleConnection peeks at the first bytes to decide between a WebSocket
// upgrade and a raw TCP client. A WebSocket client always speaks first (the
// upgrade request); a raw TCP client may connect and stay silent, yet must
// still join the lobby, so the sniff gives up after sniffTimeout and falls
// back to TCP.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	conn.SetReadDeadline(time.Now().Add(sniffTimeout))
	reader := bufio.NewReader(conn)
	prefix, err := reader.Peek(4)
	conn.SetReadDeadline(time.Time{})

	if err != nil {
		if !errors.Is(err, os.ErrDeadlineExceeded) && reader.Buffered() == 0 {
			conn.Close()
			return
		}
		// Timed out or got a short first message: raw TCP client. The
		// reader holds a sticky error, so rebuild it around any bytes it
		// already buffered.
		reader = resetReader(conn, reader)
		s.serveTCP(bufferedConn{Conn: conn, reader: reader})
		return
	}

	bc := bufferedConn{Conn: conn, reader: reader}
	if isHTTPMethod(prefix) {
		s.serveWebSocket(bc)
	} else {
		s.serveTCP(bc)
	}
}

// resetReader discards a reader's sticky deadline error while keeping any
// bytes it already buffered.
func resetReader(conn net.Conn, reader *bufio.Reader) *bufio.Reader {
	n := reader.Buffered()
	if n == 0 {
		return bufio.NewReader(conn)
	}
	peeked, _ := reader.Peek(n)
	buffered := make([]byte, n)
	copy(buffered, peeked)
	return bufio.NewReader(io.MultiReader(bytes.NewReader(buffered), conn))
}

// isHTTPMethod reports whether the peeked bytes look like an HTTP request
// line, which is how WebSocket upgrades arrive.
func isHTTPMethod(prefix []byte) bool {
	for _, m := range [][]byte{
		[]byte("GET "), []byte("POST"), []byte("PUT "), []byte("HEAD"),
		[]byte("OPTI"), []byte("PATC"), []byte("DELE"), []byte("CONN"),
	} {
		if bytes.HasPrefix(prefix, m) {
			return true
		}
	}
	return false
}

func (s *Server) serveTCP(bc bufferedConn) {
	client := chat.NewClient(tcpConn{conn: bc.Conn}, s.cfg.OutgoingBuffer)
	buf := make([]byte, s.cfg.ReadBufferSize)
	s.runSession(client, func() (string, error) {
		n, err := bc.Read(buf)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(buf[:n]), "\r\n"), nil
	})
}

func (s *Server) serveWebSocket(bc bufferedConn) {
	if _, err := ws.Upgrade(bc); err != nil {
		log.Printf("WebSocket upgrade failed from %s: %v", bc.RemoteAddr(), err)
		bc.Conn.Close()
		return
	}

	client := chat.NewClient(wsConn{conn: bc.Conn}, s.cfg.OutgoingBuffer)
	s.runSession(client, func() (string, error) {
		data, err := wsutil.ReadClientText(bc)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	})
}

// runSession drives one client: a writer goroutine drains Outgoing while the
// calling goroutine reads lines into the session. Cleanup (leave room,
// unregister, close socket) runs on every exit path.
func (s *Server) runSession(client *chat.Client, read func() (string, error)) {
	session := chat.NewSession(s.hub, client)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for data := range client.Outgoing {
			if err := client.Conn.Write(data); err != nil {
				log.Printf("Failed to send to client %s: %v", client.ID, err)
				return
			}
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in session %s: %v", client.ID, r)
		}
		session.Close()
		close(client.Outgoing)
		// Close the socket before waiting so a writer blocked on a dead
		// peer cannot stall cleanup.
		client.Conn.Close()
		<-writerDone
	}()

	for {
		line, err := read()
		if err != nil {
			if err != io.EOF {
				log.Printf("Error reading from client %s: %v", client.ID, err)
			}
			return
		}
		session.HandleLine(line)
	}
}
