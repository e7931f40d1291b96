package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"connecthub/internal/server"
)

func main() {
	port := flag.String("port", ":12345", "Port to listen on for both TCP and WebSocket (e.g., :12345)")
	filesDir := flag.String("files", ".", "Directory shared files are read from")
	flag.Parse()

	cfg := server.DefaultConfig()
	cfg.Addr = *port
	cfg.FilesDir = *filesDir
	srv := server.New(cfg)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting ConnectHub server on %s...", *port)
		errChan <- srv.Start()
	}()

	// Wait for either error or shutdown signal
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
		srv.Stop()
	}

	log.Println("ConnectHub server stopped")
}
