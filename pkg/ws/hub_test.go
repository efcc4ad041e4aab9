package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(id, userID string) *Client {
	return &Client{ID: id, UserID: userID, W: make(chan messageInfo, 1)}
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	c1 := newTestClient("c1", "user1")
	c2 := newTestClient("c2", "user1")
	c3 := newTestClient("c3", "user2")
	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	require.Equal(t, 2, hub.SendToUser("user1", []byte("hello")))
	require.Equal(t, "hello", string((<-c1.W).msg))
	require.Equal(t, "hello", string((<-c2.W).msg))
	require.Len(t, c3.W, 0)
	require.Equal(t, 0, hub.SendToUser("nobody", []byte("x")))
}

func TestHub_FullQueueDisconnects(t *testing.T) {
	hub := NewHub()
	c := newTestClient("c1", "user1")
	hub.Register(c)

	require.Equal(t, 1, hub.SendToUser("user1", []byte("a")))
	require.Equal(t, 0, hub.SendToUser("user1", []byte("b")))
	require.False(t, hub.Online("user1"))
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	c := newTestClient("c1", "user1")
	hub.Register(c)
	require.True(t, hub.Online("user1"))

	hub.Unregister(c)
	require.False(t, hub.Online("user1"))
	require.Error(t, c.Write([]byte("x")))
}

func TestCompress(t *testing.T) {
	data := []byte("some notification payload")
	compressed, err := Compress(data)
	require.NoError(t, err)

	origin, err := Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, origin)
}
