package showdown

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultServerURL is the public simulator's websocket endpoint.
const DefaultServerURL = "wss://sim.psim.us/showdown/websocket"

// Client is a websocket connection to a Showdown server.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a Showdown server's websocket endpoint.
func Dial(ctx context.Context, serverURL string) (*Client, error) {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
		return nil, fmt.Errorf("server url %q is not a websocket endpoint", serverURL)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial showdown server: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Join enters a battle or chat room.
func (c *Client) Join(room string) error {
	return c.Send(fmt.Sprintf("|/join %s", room))
}

// Send writes one raw protocol message.
func (c *Client) Send(message string) error {
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Listen reads messages until the context is canceled or the connection
// fails, invoking handler once per protocol line. Showdown batches lines
// per message, with a leading ">room" line naming the room the batch
// belongs to; lobby traffic arrives with an empty room.
func (c *Client) Listen(ctx context.Context, handler func(room, line string)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read message: %w", err)
		}

		room := ""
		for _, line := range strings.Split(string(message), "\n") {
			if strings.HasPrefix(line, ">") {
				room = strings.TrimPrefix(line, ">")
				continue
			}
			if line == "" {
				continue
			}
			handler(room, line)
		}
	}
}
