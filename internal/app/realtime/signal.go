package realtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"boardrtc/internal/pkg/logx"
)

// SignalRelay forwards WebRTC signaling between the peers of a room. Peers are
// addressed by identity, at most one connection per identity and room, and a
// sender never receives its own envelope.
type SignalRelay struct {
	registry *Registry[string]
	logger   zerolog.Logger
}

// NewSignalRelay returns a relay over registry.
func NewSignalRelay(registry *Registry[string]) *SignalRelay {
	return &SignalRelay{
		registry: registry,
		logger:   logx.Component("signaling"),
	}
}

// Connect accepts conn and binds it to identity in roomID, replacing any
// previous connection of that identity. The replaced connection stays open but
// no longer receives anything.
func (s *SignalRelay) Connect(ctx context.Context, conn Conn, roomID, identity string) error {
	if err := conn.Accept(ctx); err != nil {
		return fmt.Errorf("accept signaling connection: %w", err)
	}

	if displaced := s.registry.Join(roomID, identity, conn); displaced != nil && displaced != conn {
		s.logger.Warn().Str("room_id", roomID).Str("identity", identity).Msg("Identity rejoined, previous signaling connection is no longer addressed")
	}

	s.logger.Info().Str("room_id", roomID).Str("identity", identity).Msg("Peer joined signaling room")
	return nil
}

// Broadcast sends envelope to every peer of roomID except sender. A peer that
// cannot be reached is skipped.
func (s *SignalRelay) Broadcast(ctx context.Context, roomID string, envelope any, sender string) {
	for _, m := range s.registry.Participants(roomID) {
		if m.Key == sender {
			continue
		}
		if err := m.Conn.SendJSON(ctx, envelope); err != nil {
			s.logger.Warn().Err(err).Str("room_id", roomID).Str("identity", m.Key).Msg("Dropping signaling delivery to unreachable peer")
		}
	}
}

// Disconnect unbinds identity from roomID if it is still bound to conn, so a
// connection displaced by a rejoin cannot evict its replacement. Removing by
// identity alone would drop the live replacement, which is why the connection
// is compared. There is no leave announcement.
func (s *SignalRelay) Disconnect(_ context.Context, conn Conn, roomID, identity string) {
	if s.registry.LeaveConn(roomID, identity, conn) {
		s.logger.Info().Str("room_id", roomID).Str("identity", identity).Msg("Peer left signaling room")
	}
}

// Serve runs conn's session: it connects, broadcasts every received frame as
// an envelope and disconnects exactly once at the end.
func (s *SignalRelay) Serve(ctx context.Context, conn Conn, roomID, identity string) error {
	if err := s.Connect(ctx, conn, roomID, identity); err != nil {
		return err
	}
	defer s.Disconnect(context.WithoutCancel(ctx), conn, roomID, identity)

	for {
		text, err := conn.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrConnectionClosed) || ctx.Err() != nil {
				s.logger.Debug().Str("room_id", roomID).Str("identity", identity).Msg("Signaling connection closed")
				return nil
			}
			return fmt.Errorf("receive signaling frame: %w", err)
		}

		in := ParseInbound(text)
		if _, raw := in.(RawText); raw {
			s.logger.Debug().Str("room_id", roomID).Str("identity", identity).Msg("Wrapping non-JSON signaling frame")
		}
		s.Broadcast(ctx, roomID, EnvelopeFor(in), identity)
	}
}

// Shutdown drops every signaling peer and returns their connections.
func (s *SignalRelay) Shutdown() []Conn {
	drained := s.registry.Drain()
	conns := make([]Conn, 0, len(drained))
	for _, m := range drained {
		conns = append(conns, m.Conn)
	}
	return conns
}
