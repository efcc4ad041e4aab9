package ws

import (
	"errors"

	"github.com/gorilla/websocket"
)

type messageInfo struct {
	msg             []byte
	needCompression bool
}

type Client struct {
	ID     string
	UserID string

	Conn *websocket.Conn
	R    chan []byte
	W    chan messageInfo

	compress bool
}

// NewClient starts the reader and writer loops of conn. Messages written to
// the client are compressed with zlib when compress is true.
func NewClient(id, userID string, conn *websocket.Conn, compress bool) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		ID:       id,
		UserID:   userID,
		Conn:     conn,
		R:        make(chan []byte, 128),
		W:        make(chan messageInfo, 128),
		compress: compress,
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		}
	}
}

func (c *Client) runWriter() {
	for msgInfo := range c.W {
		msg := msgInfo.msg
		if msgInfo.needCompression {
			var err error
			msg, err = Compress(msgInfo.msg)
			if err != nil {
				continue
			}
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Write queues msg without blocking. It returns an error if the client was
// closed or its queue is full.
func (c *Client) Write(msg []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("connection is closed")
		}
	}()

	select {
	case c.W <- messageInfo{msg: msg, needCompression: c.compress}:
		return nil
	default:
		return errors.New("write queue is full")
	}
}

func (c *Client) Close() {
	defer func() { _ = recover() }()
	close(c.W)
	if c.Conn != nil {
		c.Conn.Close()
	}
}
