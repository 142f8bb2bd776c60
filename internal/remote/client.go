// ABOUTME: WebSocket client for sending note control messages
// ABOUTME: Used by the trigger command and tests
package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const replyTimeout = 5 * time.Second

// Client is a connection to a notewave player
type Client struct {
	mu    sync.Mutex
	conn  *websocket.Conn
	hello Hello
}

// Dial connects to url and waits for the server hello
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	c := &Client{conn: conn}

	msg, err := c.read()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read hello: %w", err)
	}
	if msg.Type != TypeHello {
		conn.Close()
		return nil, fmt.Errorf("expected %s, got %s", TypeHello, msg.Type)
	}
	if err := msg.Decode(&c.hello); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Hello returns the server's greeting
func (c *Client) Hello() Hello { return c.hello }

// Send writes a request and waits for its acknowledgement
func (c *Client) Send(msgType string, payload interface{}) (Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return Ack{}, err
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	if err := c.conn.WriteJSON(msg); err != nil {
		return Ack{}, fmt.Errorf("failed to send %s: %w", msgType, err)
	}

	reply, err := c.read()
	if err != nil {
		return Ack{}, fmt.Errorf("failed to read ack: %w", err)
	}
	if reply.Type != TypeAck {
		return Ack{}, fmt.Errorf("expected %s, got %s", TypeAck, reply.Type)
	}
	var ack Ack
	if err := reply.Decode(&ack); err != nil {
		return Ack{}, err
	}
	if ack.Error != "" {
		return ack, errors.New(ack.Error)
	}
	return ack, nil
}

// Start plays pitch on instrument; duration 0 uses the player's default
func (c *Client) Start(instrument string, pitch int, duration time.Duration) (Ack, error) {
	return c.Send(TypeNoteStart, NoteStart{
		Instrument: instrument,
		Pitch:      pitch,
		DurationMs: int(duration / time.Millisecond),
	})
}

func (c *Client) read() (Message, error) {
	var msg Message
	c.conn.SetReadDeadline(time.Now().Add(replyTimeout))
	err := c.conn.ReadJSON(&msg)
	c.conn.SetReadDeadline(time.Time{})
	return msg, err
}

// Close sends a close frame and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
