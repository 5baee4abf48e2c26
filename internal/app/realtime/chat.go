package realtime

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"boardrtc/internal/pkg/logx"
)

// ChatRelay runs chat rooms: every participant, the sender included, receives
// every message, and new participants first receive the room's history.
//
// Joins, sends and leaves of one room are serialized on the room lock, so a
// joiner sees history, then its own join announcement, then live traffic, with
// nothing missing and nothing repeated.
type ChatRelay struct {
	registry *Registry[Conn]
	history  HistoryStore
	logger   zerolog.Logger

	historyTimeout time.Duration
	replayTimeout  time.Duration
}

const (
	// bound on one history store call; the room lock is held meanwhile.
	defaultHistoryTimeout = 3 * time.Second

	// bound on delivering the whole replay to a joiner.
	defaultReplayTimeout = 30 * time.Second
)

// NewChatRelay returns a relay over registry that persists to history.
func NewChatRelay(registry *Registry[Conn], history HistoryStore) *ChatRelay {
	return &ChatRelay{
		registry: registry,
		history:  history,
		logger:   logx.Component("chat"),

		historyTimeout: defaultHistoryTimeout,
		replayTimeout:  defaultReplayTimeout,
	}
}

// JoinedText is the announcement sent when identity joins a room.
func JoinedText(identity string) string { return identity + " joined!" }

// LeftText is the announcement sent when identity leaves a room.
func LeftText(identity string) string { return identity + " left!" }

// ChatLine formats a message typed by identity.
func ChatLine(identity, text string) string { return identity + ": " + text }

// Connect accepts conn and joins it to roomID. The new participant receives the
// stored history in order, then everyone in the room, the newcomer included,
// receives the join announcement. The replay goes through BacklogSender when
// conn supports it and is bounded by the replay timeout.
func (c *ChatRelay) Connect(ctx context.Context, conn Conn, roomID, identity string) error {
	if err := conn.Accept(ctx); err != nil {
		return fmt.Errorf("accept chat connection: %w", err)
	}

	c.registry.Update(roomID, func(m *Members[Conn]) {
		m.Put(conn, conn)

		readCtx, cancelRead := context.WithTimeout(ctx, c.historyTimeout)
		history, err := c.history.ReadAll(readCtx, roomID)
		cancelRead()
		if err != nil {
			c.logger.Error().Err(err).Str("room_id", roomID).Msg("Failed to read chat history, joining without replay")
		}

		// The replay and the joiner's own announcement are one burst, so they
		// go through the waiting send path rather than the live queue.
		replayCtx, cancelReplay := context.WithTimeout(ctx, c.replayTimeout)
		defer cancelReplay()
		for _, line := range history {
			if err := sendBacklog(replayCtx, conn, line); err != nil {
				c.logger.Warn().Err(err).Str("room_id", roomID).Str("identity", identity).Msg("History replay interrupted")
				break
			}
		}

		joined := JoinedText(identity)
		if err := sendBacklog(replayCtx, conn, joined); err != nil {
			c.logger.Warn().Err(err).Str("room_id", roomID).Str("identity", identity).Msg("Join announcement not delivered to joiner")
		}
		others := slices.DeleteFunc(m.Snapshot(), func(e Member[Conn]) bool { return e.Conn == conn })
		c.fanOut(ctx, roomID, others, joined)
	})

	c.logger.Info().Str("room_id", roomID).Str("identity", identity).Msg("Participant joined chat room")
	return nil
}

// SendMessage appends text to the room's history and delivers it verbatim to
// every participant. A failed or timed out append is logged and delivery still
// happens.
func (c *ChatRelay) SendMessage(ctx context.Context, roomID, text string) {
	c.registry.Update(roomID, func(m *Members[Conn]) {
		appendCtx, cancel := context.WithTimeout(ctx, c.historyTimeout)
		err := c.history.Append(appendCtx, roomID, text)
		cancel()
		if err != nil {
			c.logger.Error().Err(err).Str("room_id", roomID).Msg("Failed to persist chat message")
		}

		c.fanOut(ctx, roomID, m.Snapshot(), text)
	})
}

// Disconnect removes conn from roomID and tells the remaining participants.
// Disconnecting a connection that is not registered does nothing.
func (c *ChatRelay) Disconnect(ctx context.Context, conn Conn, roomID, identity string) {
	if !c.registry.has(roomID) {
		return
	}

	var removed bool
	c.registry.Update(roomID, func(m *Members[Conn]) {
		if removed = m.Delete(conn); removed {
			c.fanOut(ctx, roomID, m.Snapshot(), LeftText(identity))
		}
	})

	if removed {
		c.logger.Info().Str("room_id", roomID).Str("identity", identity).Msg("Participant left chat room")
	}
}

// Serve runs conn's session: it connects, relays every received line as
// "identity: text" and disconnects exactly once when the peer goes away or
// ctx ends.
func (c *ChatRelay) Serve(ctx context.Context, conn Conn, roomID, identity string) error {
	if err := c.Connect(ctx, conn, roomID, identity); err != nil {
		return err
	}
	defer c.Disconnect(context.WithoutCancel(ctx), conn, roomID, identity)

	for {
		text, err := conn.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrConnectionClosed) || ctx.Err() != nil {
				c.logger.Debug().Str("room_id", roomID).Str("identity", identity).Msg("Chat connection closed")
				return nil
			}
			return fmt.Errorf("receive chat frame: %w", err)
		}

		c.SendMessage(ctx, roomID, ChatLine(identity, text))
	}
}

// Shutdown drops every chat participant without announcements and returns
// their connections.
func (c *ChatRelay) Shutdown() []Conn {
	drained := c.registry.Drain()
	conns := make([]Conn, 0, len(drained))
	for _, m := range drained {
		conns = append(conns, m.Conn)
	}
	return conns
}

func (c *ChatRelay) fanOut(ctx context.Context, roomID string, members []Member[Conn], text string) {
	for _, m := range members {
		if err := m.Conn.SendText(ctx, text); err != nil {
			c.logger.Warn().Err(err).Str("room_id", roomID).Msg("Dropping chat delivery to unreachable participant")
		}
	}
}

func sendBacklog(ctx context.Context, conn Conn, text string) error {
	if b, ok := conn.(BacklogSender); ok {
		return b.SendBacklog(ctx, text)
	}
	return conn.SendText(ctx, text)
}
