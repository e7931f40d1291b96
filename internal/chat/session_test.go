package chat_test

import (
	"slices"
	"strings"
	"testing"

	"connecthub/internal/chat"
)

func newTestSession(t *testing.T, hub *chat.Hub) (*chat.Session, *chat.Client) {
	t.Helper()
	c := newTestClient()
	return chat.NewSession(hub, c), c
}

func TestSession_StartsInLobby(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	session, c := newTestSession(t, hub)

	if got := session.Room(); got != chat.DefaultRoom {
		t.Errorf("Room() = %q, want %q", got, chat.DefaultRoom)
	}
	if got := hub.MembersOf(chat.DefaultRoom); !slices.Contains(got, c.ID) {
		t.Errorf("MembersOf(lobby) = %v, want it to contain %s", got, c.ID)
	}
	if got := drain(c); len(got) != 0 {
		t.Errorf("new session received %v, want nothing until it acts", got)
	}
}

func TestSession_JoinSendsSnapshotInOrder(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	session, c := newTestSession(t, hub)

	session.HandleLine("/join games")

	if got := session.Room(); got != "games" {
		t.Fatalf("Room() = %q, want games", got)
	}
	if got := hub.MembersOf(chat.DefaultRoom); slices.Contains(got, c.ID) {
		t.Errorf("MembersOf(lobby) = %v, want joiner gone", got)
	}
	if got := hub.MembersOf("games"); !slices.Contains(got, c.ID) {
		t.Errorf("MembersOf(games) = %v, want joiner present", got)
	}

	got := drain(c)
	if len(got) != 4 {
		t.Fatalf("joiner received %d payloads, want 4 (notice, whiteboard, board, files)", len(got))
	}
	if got[0] != "[System] Joined room: games\n" {
		t.Errorf("payload 0 = %q, want the join notice", got[0])
	}
	if !strings.Contains(got[1], "[Whiteboard]") {
		t.Errorf("payload 1 = %q, want the whiteboard render", got[1])
	}
	if !strings.Contains(got[2], "[TicTacToe]") || strings.ContainsAny(got[2], "XO") {
		t.Errorf("payload 2 = %q, want a fresh all-dot board render", got[2])
	}
	if got[3] != "[Files in room games]:\n" {
		t.Errorf("payload 3 = %q, want an empty file listing", got[3])
	}
}

func TestSession_JoinGoesOnlyToJoiner(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	joiner, _ := newTestSession(t, hub)
	_, bystander := newTestSession(t, hub)

	joiner.HandleLine("/join games")

	if got := drain(bystander); len(got) != 0 {
		t.Errorf("bystander received %v, want nothing for another client's join", got)
	}
}

func TestSession_ChatExcludesSender(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	sender, senderClient := newTestSession(t, hub)
	_, peer := newTestSession(t, hub)

	sender.HandleLine("hello everyone")

	if got := drain(peer); len(got) != 1 || got[0] != "hello everyone\n" {
		t.Errorf("peer received %v, want [hello everyone\\n]", got)
	}
	if got := drain(senderClient); len(got) != 0 {
		t.Errorf("sender received %v, want own chat not echoed", got)
	}
}

func TestSession_MarkBroadcastIncludesSender(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	sender, senderClient := newTestSession(t, hub)
	_, peer := newTestSession(t, hub)

	sender.HandleLine("/t3 0 0 X")

	for name, c := range map[string]*chat.Client{"sender": senderClient, "peer": peer} {
		got := drain(c)
		if len(got) != 1 {
			t.Fatalf("%s received %d payloads, want 1", name, len(got))
		}
		if !strings.Contains(got[0], "[TicTacToe]") || !strings.Contains(got[0], "\033[31mX") {
			t.Errorf("%s received %q, want a board render with a red X", name, got[0])
		}
	}
}

func TestSession_DrawBroadcastIncludesSender(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	sender, senderClient := newTestSession(t, hub)
	_, peer := newTestSession(t, hub)

	sender.HandleLine("/draw 0 0 @")

	for name, c := range map[string]*chat.Client{"sender": senderClient, "peer": peer} {
		got := drain(c)
		if len(got) != 1 || !strings.Contains(got[0], "@") {
			t.Errorf("%s received %v, want one whiteboard render with the drawn cell", name, got)
		}
	}
}

func TestSession_ShareFile(t *testing.T) {
	hub := chat.NewHub(mapSource{"notes.txt": []byte("remember the milk")})
	sender, senderClient := newTestSession(t, hub)
	_, peer := newTestSession(t, hub)

	sender.HandleLine("/file notes.txt")

	if got := drain(peer); len(got) != 1 || got[0] != "[File: notes.txt]\nremember the milk\n" {
		t.Errorf("peer received %q, want the file payload", got)
	}
	if got := drain(senderClient); len(got) != 0 {
		t.Errorf("sender received %v, want nothing on successful share", got)
	}

	sender.HandleLine("/files")
	if got := drain(senderClient); len(got) != 1 || got[0] != "[Files in room lobby]:\nnotes.txt\n" {
		t.Errorf("sender received %q, want the room's file listing", got)
	}
	if got := drain(peer); len(got) != 0 {
		t.Errorf("peer received %v, want nothing for another client's /files", got)
	}
}

func TestSession_ShareFileNotFound(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	sender, senderClient := newTestSession(t, hub)
	_, peer := newTestSession(t, hub)

	sender.HandleLine("/file missing.txt")

	if got := drain(senderClient); len(got) != 1 || got[0] != "[System] File not found\n" {
		t.Errorf("sender received %q, want the not-found notice", got)
	}
	if got := drain(peer); len(got) != 0 {
		t.Errorf("peer received %v, want nothing for a failed share", got)
	}
}

func TestSession_MalformedCommandsAreSilent(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	sender, senderClient := newTestSession(t, hub)
	_, peer := newTestSession(t, hub)

	for _, line := range []string{"/draw a b c", "/t3 0 0", "/join ", "/file "} {
		sender.HandleLine(line)
	}

	if got := drain(senderClient); len(got) != 0 {
		t.Errorf("sender received %v, want malformed commands dropped silently", got)
	}
	if got := drain(peer); len(got) != 0 {
		t.Errorf("peer received %v, want malformed commands dropped silently", got)
	}
	if got := hub.RoomCount(); got != 1 {
		t.Errorf("RoomCount() = %d, want only the lobby after malformed commands", got)
	}
}

func TestSession_CloseLeavesRoomAndUnregisters(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	session, c := newTestSession(t, hub)
	session.HandleLine("/join games")
	drain(c)

	session.Close()

	if got := hub.MembersOf("games"); slices.Contains(got, c.ID) {
		t.Errorf("MembersOf(games) = %v, want member gone after close", got)
	}
	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0 after close", got)
	}
}

func TestSession_ChatBetweenRoomsIsIsolated(t *testing.T) {
	hub := chat.NewHub(mapSource{})
	a, aClient := newTestSession(t, hub)
	b, bClient := newTestSession(t, hub)

	a.HandleLine("/join games")
	drain(aClient)

	b.HandleLine("nobody in games hears this")

	if got := drain(aClient); len(got) != 0 {
		t.Errorf("games member received %v, want lobby chat isolated", got)
	}

	a.HandleLine("games chatter")
	if got := drain(bClient); len(got) != 0 {
		t.Errorf("lobby member received %v, want games chat isolated", got)
	}
}
