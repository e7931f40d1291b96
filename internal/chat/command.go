package chat

import "strings"

// CommandType identifies the parsed form of one input line.
type CommandType int

const (
	// CommandChat is the default: any line not matching a known prefix.
	CommandChat CommandType = iota
	CommandJoin
	CommandShareFile
	CommandListFiles
	CommandDraw
	CommandMark
	// CommandInvalid is a recognized prefix with malformed arguments.
	// Sessions discard it without reply.
	CommandInvalid
)

// Command is one parsed input line.
type Command struct {
	Type CommandType
	Room string // CommandJoin
	File string // CommandShareFile
	Row  int    // CommandDraw, CommandMark
	Col  int    // CommandDraw, CommandMark
	Ch   byte   // CommandDraw cell character, CommandMark mark
	Text string // CommandChat
}

// ParseCommand classifies a single trimmed input line. Prefixes are
// case-sensitive literals; /files is matched before /file so a bare listing
// request never parses as a share.
func ParseCommand(line string) Command {
	switch {
	case line == "/files":
		return Command{Type: CommandListFiles}
	case strings.HasPrefix(line, "/join "):
		room := strings.TrimSpace(line[len("/join "):])
		if room == "" {
			return Command{Type: CommandInvalid}
		}
		return Command{Type: CommandJoin, Room: room}
	case strings.HasPrefix(line, "/file "):
		name := strings.TrimSpace(line[len("/file "):])
		if name == "" {
			return Command{Type: CommandInvalid}
		}
		return Command{Type: CommandShareFile, File: name}
	case strings.HasPrefix(line, "/draw "):
		row, col, ch, ok := parseCellArgs(line[len("/draw "):])
		if !ok {
			return Command{Type: CommandInvalid}
		}
		return Command{Type: CommandDraw, Row: row, Col: col, Ch: ch}
	case strings.HasPrefix(line, "/t3 "):
		row, col, ch, ok := parseCellArgs(line[len("/t3 "):])
		if !ok {
			return Command{Type: CommandInvalid}
		}
		return Command{Type: CommandMark, Row: row, Col: col, Ch: ch}
	}
	return Command{Type: CommandChat, Text: line}
}

// parseCellArgs reads "<digit> <digit> <char>", the shape the clients send
// for /draw and /t3.
func parseCellArgs(args string) (row, col int, ch byte, ok bool) {
	fields := strings.Fields(args)
	if len(fields) != 3 || len(fields[2]) != 1 {
		return 0, 0, 0, false
	}
	row, ok = parseDigit(fields[0])
	if !ok {
		return 0, 0, 0, false
	}
	col, ok = parseDigit(fields[1])
	if !ok {
		return 0, 0, 0, false
	}
	return row, col, fields[2][0], true
}

func parseDigit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}
