package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saiteja-29/V-Hire/internal/models"
)

type frameCapture struct {
	frames []models.WSFrame
}

func newFrameCapture() *frameCapture { return &frameCapture{} }

func (c *frameCapture) hook(frame models.WSFrame) { c.frames = append(c.frames, frame) }

func (c *frameCapture) list() []models.WSFrame {
	out := make([]models.WSFrame, len(c.frames))
	copy(out, c.frames)
	return out
}

func TestClientSendWithHook(t *testing.T) {
	client := NewClient(nil)
	capture := newFrameCapture()
	client.SetSendHook(capture.hook)

	client.Send(models.WSFrame{Type: "ping"})

	got := capture.list()
	if len(got) != 1 || got[0].Type != "ping" {
		t.Fatalf("expected frame captured, got %#v", got)
	}
}

func TestClientSendWithoutConnDoesNotPanic(t *testing.T) {
	client := NewClient(nil)
	client.Send(models.WSFrame{Type: "noop"})
}

func TestClientSendWritesToConn(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan models.WSFrame, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var frame models.WSFrame
		if err := conn.ReadJSON(&frame); err == nil {
			received <- frame
		}
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	client := NewClient(conn)
	client.Send(models.WSFrame{Type: "ping"})

	select {
	case frame := <-received:
		if frame.Type != "ping" {
			t.Fatalf("unexpected frame: %#v", frame)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected frame to be received")
	}
}

func TestRoomJoinLeaveAndSnapshot(t *testing.T) {
	room := NewRoom("room")
	if count := room.ClientCount(); count != 0 {
		t.Fatalf("expected empty room, got %d", count)
	}

	c1 := NewClient(nil)
	c2 := NewClient(nil)
	room.Join(c1)
	room.Join(c2)
	if count := room.ClientCount(); count != 2 {
		t.Fatalf("expected 2 clients, got %d", count)
	}

	text, lang, touched := room.Snapshot()
	if text != "" || touched {
		t.Fatalf("expected pristine room, got text=%q touched=%v", text, touched)
	}
	if lang != models.LangCPP {
		t.Fatalf("expected default language cpp, got %s", lang)
	}

	if left := room.Leave(c1); left != 1 {
		t.Fatalf("expected 1 client after leave, got %d", left)
	}
	if left := room.Leave(c2); left != 0 {
		t.Fatalf("expected empty room, got %d", left)
	}
}

func TestRoomSetTextSkipsSender(t *testing.T) {
	room := NewRoom("room")
	sender := NewClient(nil)
	peer := NewClient(nil)
	senderCap := newFrameCapture()
	peerCap := newFrameCapture()
	sender.SetSendHook(senderCap.hook)
	peer.SetSendHook(peerCap.hook)
	room.Join(sender)
	room.Join(peer)

	room.SetText(sender, "int main() {}")

	if got := senderCap.list(); len(got) != 0 {
		t.Fatalf("sender must not receive its own edit, got %#v", got)
	}
	got := peerCap.list()
	if len(got) != 1 || got[0].Type != "edit" {
		t.Fatalf("expected one edit frame at peer, got %#v", got)
	}
	edit, ok := got[0].Data.(models.EditPayload)
	if !ok || edit.Text != "int main() {}" {
		t.Fatalf("unexpected edit payload: %#v", got[0].Data)
	}
}

func TestRoomLastWriteWins(t *testing.T) {
	room := NewRoom("room")
	a := NewClient(nil)
	b := NewClient(nil)
	room.Join(a)
	room.Join(b)

	room.SetText(a, "version from a")
	room.SetText(b, "version from b")

	text, _, touched := room.Snapshot()
	if !touched {
		t.Fatalf("expected room to be touched after edits")
	}
	if text != "version from b" {
		t.Fatalf("expected latest edit to win, got %q", text)
	}
}

func TestRoomEditsDeliveredInOrder(t *testing.T) {
	room := NewRoom("room")
	sender := NewClient(nil)
	peer := NewClient(nil)
	capture := newFrameCapture()
	peer.SetSendHook(capture.hook)
	room.Join(sender)
	room.Join(peer)

	room.SetText(sender, "one")
	room.SetText(sender, "two")
	room.SetText(sender, "three")

	got := capture.list()
	if len(got) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(got))
	}
	want := []string{"one", "two", "three"}
	for i, frame := range got {
		edit := frame.Data.(models.EditPayload)
		if edit.Text != want[i] {
			t.Fatalf("frame %d: expected %q, got %q", i, want[i], edit.Text)
		}
	}
}

func TestRoomSetLanguageBroadcastsAndTouches(t *testing.T) {
	room := NewRoom("room")
	sender := NewClient(nil)
	peer := NewClient(nil)
	capture := newFrameCapture()
	peer.SetSendHook(capture.hook)
	room.Join(sender)
	room.Join(peer)

	room.SetLanguage(sender, models.LangJava)

	got := capture.list()
	if len(got) != 1 || got[0].Type != "language" {
		t.Fatalf("expected one language frame, got %#v", got)
	}
	if lc := got[0].Data.(models.LanguagePayload); lc.Language != models.LangJava {
		t.Fatalf("unexpected language payload: %#v", got[0].Data)
	}

	_, lang, touched := room.Snapshot()
	if lang != models.LangJava || !touched {
		t.Fatalf("expected touched room with java, got lang=%s touched=%v", lang, touched)
	}
}

func TestHubCreatesRoomOnFirstJoin(t *testing.T) {
	hub := NewHub()
	c := NewClient(nil)

	room := hub.Join("room-1", c)
	if room == nil || room.ID != "room-1" {
		t.Fatalf("expected room-1, got %#v", room)
	}
	if hub.RoomCount() != 1 {
		t.Fatalf("expected 1 room, got %d", hub.RoomCount())
	}

	again := hub.Join("room-1", NewClient(nil))
	if again != room {
		t.Fatalf("expected second join to reuse the room")
	}
	if hub.RoomCount() != 1 {
		t.Fatalf("expected still 1 room, got %d", hub.RoomCount())
	}
}

func TestHubDiscardsRoomWhenLastClientLeaves(t *testing.T) {
	hub := NewHub()
	c1 := NewClient(nil)
	c2 := NewClient(nil)
	room := hub.Join("room-1", c1)
	hub.Join("room-1", c2)
	room.SetText(c1, "scratch")

	if id, ok := hub.Leave(c1); !ok || id != "room-1" {
		t.Fatalf("expected leave from room-1, got %q ok=%v", id, ok)
	}
	if hub.RoomCount() != 1 {
		t.Fatalf("room must survive while a participant remains")
	}

	hub.Leave(c2)
	if hub.RoomCount() != 0 {
		t.Fatalf("expected room discarded after last leave, got %d", hub.RoomCount())
	}

	// A rejoin starts from a clean document.
	fresh := hub.Join("room-1", NewClient(nil))
	if text, _, touched := fresh.Snapshot(); text != "" || touched {
		t.Fatalf("expected fresh room state, got text=%q touched=%v", text, touched)
	}
}

func TestHubLeaveUnknownClient(t *testing.T) {
	hub := NewHub()
	if _, ok := hub.Leave(NewClient(nil)); ok {
		t.Fatalf("expected leave of unregistered client to report false")
	}
}
