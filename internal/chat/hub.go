package chat

import (
	"log"
	"sync"
)

// Hub owns all shared server state: connected clients, room membership, the
// whiteboard, the per-room tic-tac-toe boards, and the file registry.
//
// A single mutex guards everything. The whiteboard spans rooms, so one
// exclusion domain has to cover cross-room state anyway; per-room locks
// would buy nothing here.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	whiteboard *Whiteboard
	boards     map[string]*TicTacToe
	files      *fileRegistry
	source     FileSource
}

// NewHub creates a Hub that reads shared files from source.
func NewHub(source FileSource) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		whiteboard: NewWhiteboard(),
		boards:     make(map[string]*TicTacToe),
		files:      newFileRegistry(),
		source:     source,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// RoomCount returns the number of rooms seen so far. Rooms are never
// deleted, so this only grows.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Join adds c to room, creating the room and its tic-tac-toe board on first
// reference.
func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinLocked(room, c)
}

func (h *Hub) joinLocked(room string, c *Client) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[c] = true
	if _, ok := h.boards[room]; !ok {
		h.boards[room] = NewTicTacToe()
	}
}

// Leave removes c from room. Leaving a room c is not in is a no-op. The room
// itself stays, along with its board and file list.
func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(room, c)
}

func (h *Hub) leaveLocked(room string, c *Client) {
	if members := h.rooms[room]; members != nil {
		delete(members, c)
	}
}

// MembersOf returns a snapshot of the IDs of room's members.
func (h *Hub) MembersOf(room string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	members := h.rooms[room]
	ids := make([]string, 0, len(members))
	for member := range members {
		ids = append(ids, member.ID)
	}
	return ids
}

// Broadcast enqueues payload to every member of room except exclude (nil to
// exclude nobody). Delivery is best-effort: a member with a full outgoing
// queue is skipped and the rest still receive the payload.
func (h *Hub) Broadcast(room string, payload []byte, exclude *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(room, payload, exclude)
}

func (h *Hub) broadcastLocked(room string, payload []byte, exclude *Client) {
	for member := range h.rooms[room] {
		if member == exclude {
			continue
		}
		if !member.send(payload) {
			log.Printf("Client %s outgoing queue full, skipping", member.ID)
		}
	}
}

// SwitchRoom moves c from one room to another and sends the new room's state
// snapshot directly to c, bypassing broadcast: a system notice, the
// whiteboard, the room's board, and the room's file list, in that order.
func (h *Hub) SwitchRoom(from, to string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(from, c)
	h.joinLocked(to, c)
	c.send([]byte("[System] Joined room: " + to + "\n"))
	c.send([]byte(h.whiteboard.Render()))
	c.send([]byte(h.boards[to].Render()))
	c.send([]byte(formatFileList(to, h.files.byRoom[to])))
}

// Draw sets a whiteboard cell and fans the re-rendered grid out to room.
// Nobody is excluded: the drawer sees the redraw too. Only the acting room
// is notified even though the grid is shared server-wide; other rooms see
// the new state on their own next redraw.
func (h *Hub) Draw(room string, row, col int, ch byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.whiteboard.Set(row, col, ch)
	h.broadcastLocked(room, []byte(h.whiteboard.Render()), nil)
}

// RenderWhiteboard returns the current whiteboard text.
func (h *Hub) RenderWhiteboard() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.whiteboard.Render()
}

// Mark sets a cell on room's tic-tac-toe board and fans the re-rendered
// board out to the room, excluding nobody. The board is created if the room
// has none yet.
func (h *Hub) Mark(room string, row, col int, mark byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	board := h.boardLocked(room)
	board.Set(row, col, mark)
	h.broadcastLocked(room, []byte(board.Render()), nil)
}

// RenderBoard returns the current text of room's tic-tac-toe board, creating
// the board on first reference.
func (h *Hub) RenderBoard(room string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.boardLocked(room).Render()
}

func (h *Hub) boardLocked(room string) *TicTacToe {
	board, ok := h.boards[room]
	if !ok {
		board = NewTicTacToe()
		h.boards[room] = board
	}
	return board
}

// ShareFile reads name from the hub's file source, records it in room's file
// list, and broadcasts the content to room excluding requester. On a read
// failure nothing is recorded or broadcast; the error is returned for the
// caller to report to the requester alone.
func (h *Hub) ShareFile(room, name string, requester *Client) error {
	content, err := h.source.ReadFile(name)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.files.record(room, name)
	payload := append([]byte("[File: "+name+"]\n"), content...)
	payload = append(payload, '\n')
	h.broadcastLocked(room, payload, requester)
	return nil
}

// FileListing returns the /files response for room.
func (h *Hub) FileListing(room string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return formatFileList(room, h.files.byRoom[room])
}

// ListFiles returns a snapshot of room's shared file names in share order.
func (h *Hub) ListFiles(room string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.files.list(room)
}

// CloseAll closes every registered client's connection. Used during server
// shutdown; each session cleans itself up when its read loop fails.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.Conn.Close()
	}
}
