package chat

import "log"

// DefaultRoom is where every new connection starts.
const DefaultRoom = "lobby"

// Session runs one connection's command loop against the hub. The transport
// feeds it input lines; the session mutates shared state and fans rendered
// results back out.
type Session struct {
	hub    *Hub
	client *Client
	room   string
}

// NewSession registers client with the hub and joins it to the lobby.
func NewSession(hub *Hub, client *Client) *Session {
	hub.Register(client)
	hub.Join(DefaultRoom, client)
	log.Printf("Client %s connected from %s", client.ID, client.Conn.RemoteAddr())
	return &Session{hub: hub, client: client, room: DefaultRoom}
}

// Room returns the session's current room.
func (s *Session) Room() string {
	return s.room
}

// HandleLine processes one inbound message.
func (s *Session) HandleLine(line string) {
	cmd := ParseCommand(line)
	switch cmd.Type {
	case CommandJoin:
		s.hub.SwitchRoom(s.room, cmd.Room, s.client)
		s.room = cmd.Room
		log.Printf("Client %s joined room %s", s.client.ID, cmd.Room)
	case CommandShareFile:
		if err := s.hub.ShareFile(s.room, cmd.File, s.client); err != nil {
			log.Printf("Client %s share %q failed: %v", s.client.ID, cmd.File, err)
			s.client.send([]byte("[System] File not found\n"))
		}
	case CommandListFiles:
		s.client.send([]byte(s.hub.FileListing(s.room)))
	case CommandDraw:
		s.hub.Draw(s.room, cmd.Row, cmd.Col, cmd.Ch)
	case CommandMark:
		s.hub.Mark(s.room, cmd.Row, cmd.Col, cmd.Ch)
	case CommandChat:
		s.hub.Broadcast(s.room, []byte(cmd.Text+"\n"), s.client)
	case CommandInvalid:
		// Best-effort protocol: garbage is dropped without reply.
	}
}

// Close leaves the current room and unregisters the client. The transport
// calls this from its cleanup path on every exit, including panics.
func (s *Session) Close() {
	s.hub.Leave(s.room, s.client)
	s.hub.Unregister(s.client)
	log.Printf("Client %s disconnected", s.client.ID)
}
