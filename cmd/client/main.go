package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"connecthub/internal/client"
)

func main() {
	serverAddr := flag.String("server", "localhost:12345", "Server address (e.g., localhost:12345)")
	flag.Parse()

	c := client.NewTCP(*serverAddr)

	if err := c.Connect(); err != nil {
		log.Fatalf("Failed to connect to server: %v", err)
	}
	defer c.Disconnect()

	log.Printf("Connected to %s", *serverAddr)

	// Print server payloads verbatim so ANSI colors pass through.
	go func() {
		for msg := range c.Messages() {
			fmt.Print(msg)
		}
	}()

	fmt.Println("Type messages or commands (/join, /file, /files, /draw, /t3), /quit to exit:")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}

		if text == "/quit" {
			break
		}

		if err := c.Send(text); err != nil {
			log.Printf("Failed to send message: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error reading input: %v", err)
	}

	log.Println("Disconnected from server")
}
