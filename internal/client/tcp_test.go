package client_test

import (
	"net"
	"testing"
	"time"

	"connecthub/internal/client"
)

func TestTCP_ImplementsInterface(t *testing.T) {
	var _ client.Client = (*client.TCP)(nil)
}

func TestTCP_ConnectSendReceive(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		conn.Write(append([]byte("echo: "), buf[:n]...))
	}()

	c := client.NewTCP(ln.Addr().String())
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Disconnect()

	if !c.IsConnected() {
		t.Error("IsConnected() = false after Connect")
	}

	if err := c.Send("hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case msg := <-c.Messages():
		if msg != "echo: hello" {
			t.Errorf("received %q, want %q", msg, "echo: hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestTCP_ConnectFailure(t *testing.T) {
	c := client.NewTCP("127.0.0.1:1")

	if err := c.Connect(); err == nil {
		t.Error("Connect() to closed port succeeded, want error")
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true after failed Connect")
	}
}

func TestTCP_SendWhileDisconnected(t *testing.T) {
	c := client.NewTCP("127.0.0.1:1")

	if err := c.Send("hello"); err == nil {
		t.Error("Send() before Connect succeeded, want error")
	}
}
