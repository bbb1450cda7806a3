package session

import "sync"

// Hub manages all active interview rooms and remembers which room each
// connection joined so a bare disconnect can be routed back.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	members map[*Client]string
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]*Room),
		members: make(map[*Client]string),
	}
}

// Join registers the client under the room, creating it on first join,
// and returns the room.
func (h *Hub) Join(roomID string, c *Client) *Room {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	if !ok {
		r = NewRoom(roomID)
		h.rooms[roomID] = r
	}
	h.members[c] = roomID
	h.mu.Unlock()

	r.Join(c)
	return r
}

// Leave deregisters the client from whatever room it was in. When the
// departing client was the last participant the room state is discarded.
// Returns the room id and whether the client was registered anywhere.
func (h *Hub) Leave(c *Client) (string, bool) {
	h.mu.Lock()
	roomID, ok := h.members[c]
	if !ok {
		h.mu.Unlock()
		return "", false
	}
	delete(h.members, c)
	r := h.rooms[roomID]
	h.mu.Unlock()

	if r != nil && r.Leave(c) == 0 {
		h.mu.Lock()
		// Re-check under the lock: another participant may have joined
		// between Leave and here.
		if cur, still := h.rooms[roomID]; still && cur == r && r.ClientCount() == 0 {
			delete(h.rooms, roomID)
		}
		h.mu.Unlock()
	}
	return roomID, true
}

func (h *Hub) Get(roomID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	r, ok := h.rooms[roomID]
	return r, ok
}

func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
