/*
Package ws adapts gorilla/websocket connections to realtime.Conn.

A Client owns one upgraded connection: the caller's goroutine reads through
Receive, and a write pump goroutine drains a bounded outbound queue and keeps
the heartbeat. On the live path a full queue means the peer is not keeping
up; the connection is closed so its reader observes the disconnect and cleans
up. Bursts such as a history replay go through a separate backlog queue via
SendBacklog, which waits for room and is written ahead of live frames.
*/
package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"boardrtc/internal/app/realtime"
	"boardrtc/internal/pkg/logx"
)

const (
	// time allowed to write one frame to the peer.
	writeWait = 10 * time.Second

	// time allowed between two pongs from the peer.
	pongWait = 60 * time.Second

	// ping cadence; must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// largest inbound frame accepted.
	maxMessageSize = 8192

	// outbound frames queued per connection before it is considered stuck.
	sendQueueSize = 256
)

// Client is a realtime.Conn backed by a WebSocket.
type Client struct {
	upgrader *websocket.Upgrader
	w        http.ResponseWriter
	r        *http.Request

	acceptOnce sync.Once
	acceptErr  error
	conn       *websocket.Conn

	send      chan []byte
	backlog   chan []byte
	done      chan struct{}
	closeOnce sync.Once

	logger zerolog.Logger
}

var (
	_ realtime.Conn          = (*Client)(nil)
	_ realtime.BacklogSender = (*Client)(nil)
)

// NewClient prepares a Client for the handshake in w/r. Nothing is written to
// the response until Accept.
func NewClient(w http.ResponseWriter, r *http.Request, upgrader *websocket.Upgrader, roomID, identity string) *Client {
	return &Client{
		upgrader: upgrader,
		w:        w,
		r:        r,
		send:     make(chan []byte, sendQueueSize),
		backlog:  make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
		logger: logx.Logger().With().
			Str("component", "ws").
			Str("room_id", roomID).
			Str("identity", identity).
			Logger(),
	}
}

// Accept completes the WebSocket handshake and starts the write pump. Only the
// first call does any work; later calls return its result.
func (c *Client) Accept(ctx context.Context) error {
	c.acceptOnce.Do(func() {
		conn, err := c.upgrader.Upgrade(c.w, c.r, nil)
		if err != nil {
			c.acceptErr = fmt.Errorf("websocket upgrade: %w", err)
			c.closeOnce.Do(func() { close(c.done) })
			return
		}

		conn.SetReadLimit(maxMessageSize)
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.logger.Error().Err(err).Msg("Failed to set read deadline")
		}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		c.conn = conn
		go c.writePump()
	})
	return c.acceptErr
}

// Receive blocks for the next text frame. Binary frames are skipped. Once the
// peer disconnects, the connection errors or ctx ends, the connection is closed
// and realtime.ErrConnectionClosed returned.
func (c *Client) Receive(ctx context.Context) (string, error) {
	if c.conn == nil {
		return "", realtime.ErrConnectionClosed
	}

	stop := context.AfterFunc(ctx, c.Close)
	defer stop()

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Info().Err(err).Msg("WebSocket read ended unexpectedly")
			}
			c.Close()
			return "", fmt.Errorf("%w: %w", realtime.ErrConnectionClosed, err)
		}

		if msgType == websocket.TextMessage {
			return string(data), nil
		}
	}
}

// SendText queues text for the peer.
func (c *Client) SendText(_ context.Context, text string) error {
	return c.enqueue([]byte(text))
}

// SendJSON queues v encoded as JSON, without HTML escaping.
func (c *Client) SendJSON(_ context.Context, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: encode: %w", realtime.ErrSendFailed, err)
	}
	return c.enqueue(bytes.TrimRight(buf.Bytes(), "\n"))
}

// SendBacklog queues text on the backlog queue, waiting for room instead of
// treating a full queue as a stalled peer. The write pump empties the backlog
// before any live frame, so a backlog sent before the first live frame is
// delivered ahead of it. A peer that has not drained enough by the time ctx
// ends is closed like any other stalled peer.
func (c *Client) SendBacklog(ctx context.Context, text string) error {
	if c.conn == nil {
		return fmt.Errorf("%w: connection not accepted", realtime.ErrSendFailed)
	}

	select {
	case <-c.done:
		return fmt.Errorf("%w: connection closed", realtime.ErrSendFailed)
	default:
	}

	select {
	case c.backlog <- []byte(text):
		return nil
	case <-c.done:
		return fmt.Errorf("%w: connection closed", realtime.ErrSendFailed)
	case <-ctx.Done():
		c.logger.Warn().Err(ctx.Err()).Int("queue_len", len(c.send)).Msg("Backlog not drained in time, closing slow connection")
		c.Close()
		return fmt.Errorf("%w: %w", realtime.ErrSendFailed, ctx.Err())
	}
}

func (c *Client) enqueue(frame []byte) error {
	if c.conn == nil {
		return fmt.Errorf("%w: connection not accepted", realtime.ErrSendFailed)
	}

	select {
	case <-c.done:
		return fmt.Errorf("%w: connection closed", realtime.ErrSendFailed)
	default:
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return fmt.Errorf("%w: connection closed", realtime.ErrSendFailed)
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, closing slow connection")
		c.Close()
		return fmt.Errorf("%w: send queue full", realtime.ErrSendFailed)
	}
}

// Close starts tearing the connection down: queued frames are flushed, a close
// frame is sent and the socket is closed, which unblocks a pending Receive. It
// is safe to call more than once and from any goroutine.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// writePump serializes all writes to the socket: backlog frames first, then
// live frames and pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("WebSocket close error")
		}
	}()

	for {
		select {
		case frame := <-c.backlog:
			if err := c.write(websocket.TextMessage, frame); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing backlog message")
				return
			}
			continue
		default:
		}

		select {
		case frame := <-c.backlog:
			if err := c.write(websocket.TextMessage, frame); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing backlog message")
				return
			}

		case frame := <-c.send:
			if err := c.write(websocket.TextMessage, frame); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.logger.Warn().Err(err).Msg("Error writing ping")
				return
			}

		case <-c.done:
			c.flush()
			return
		}
	}
}

// flush writes whatever is still queued, backlog first, and a close frame, all
// within one write deadline.
func (c *Client) flush() {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}
	for _, queue := range []chan []byte{c.backlog, c.send} {
		for drained := false; !drained; {
			select {
			case frame := <-queue:
				if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					return
				}
			default:
				drained = true
			}
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *Client) write(msgType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(msgType, data)
}
