package ws

import (
	"github.com/puzpuzpuz/xsync"
)

// Hub keeps the connected clients of every user. A user may have many clients,
// one per opened tab or device.
type Hub struct {
	users *xsync.MapOf[string, *xsync.MapOf[string, *Client]]
}

func NewHub() *Hub {
	return &Hub{users: xsync.NewMapOf[*xsync.MapOf[string, *Client]]()}
}

func (h *Hub) Register(c *Client) {
	clients, _ := h.users.LoadOrStore(c.UserID, xsync.NewMapOf[*Client]())
	clients.Store(c.ID, c)
}

func (h *Hub) Unregister(c *Client) {
	clients, ok := h.users.Load(c.UserID)
	if !ok {
		return
	}

	if _, ok := clients.LoadAndDelete(c.ID); ok {
		c.Close()
	}

	if clients.Size() == 0 {
		h.users.Delete(c.UserID)
	}
}

// SendToUser pushes msg to every client of the user and returns how many
// clients received it. Clients which cannot receive are disconnected.
func (h *Hub) SendToUser(userID string, msg []byte) int {
	clients, ok := h.users.Load(userID)
	if !ok {
		return 0
	}

	sent := 0
	clients.Range(func(_ string, c *Client) bool {
		if err := c.Write(msg); err != nil {
			h.Unregister(c)
		} else {
			sent++
		}
		return true
	})

	return sent
}

func (h *Hub) Online(userID string) bool {
	clients, ok := h.users.Load(userID)
	return ok && clients.Size() > 0
}
