package session

import (
	"sync"

	"github.com/saiteja-29/V-Hire/internal/models"
)

// Room holds the shared scratch document for one interview session.
// Concurrent edits are last-write-wins; the room is not the interview
// record of truth.
type Room struct {
	ID       string
	mu       sync.Mutex
	clients  map[*Client]struct{}
	text     string
	language models.Language
	touched  bool
}

func NewRoom(id string) *Room {
	return &Room{
		ID:       id,
		clients:  make(map[*Client]struct{}),
		language: models.LangCPP,
	}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

// Leave removes a client and returns the number remaining.
func (r *Room) Leave(c *Client) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
	return len(r.clients)
}

func (r *Room) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Snapshot returns the current document text and language, and whether
// any edit or language change has been applied yet.
func (r *Room) Snapshot() (string, models.Language, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, r.language, r.touched
}

// SetText stores the full document text and broadcasts it to every
// participant except the sender. The most recently applied edit wins.
func (r *Room) SetText(sender *Client, text string) {
	r.mu.Lock()
	r.text = text
	r.touched = true
	r.mu.Unlock()
	r.broadcast(sender, models.WSFrame{Type: "edit", Data: models.EditPayload{Text: text}})
}

// SetLanguage stores the editor language and broadcasts it to every
// participant except the sender.
func (r *Room) SetLanguage(sender *Client, lang models.Language) {
	r.mu.Lock()
	r.language = lang
	r.touched = true
	r.mu.Unlock()
	r.broadcast(sender, models.WSFrame{Type: "language", Data: models.LanguagePayload{Language: lang}})
}

func (r *Room) broadcast(sender *Client, frame models.WSFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for c := range r.clients {
		if c == sender {
			continue
		}
		c.Send(frame)
	}
}
