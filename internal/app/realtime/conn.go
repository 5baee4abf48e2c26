/*
Package realtime relays messages between live connections grouped in rooms.

A Registry tracks which connections are joined to which room. ChatRelay builds
a chat room on top of it: history replay for late joiners, join and leave
announcements, and delivery to every participant including the sender.
SignalRelay forwards WebRTC signaling envelopes to every participant except the
sender, addressed by identity.

The package is transport-agnostic: connections are anything implementing Conn.
*/
package realtime

import (
	"context"
	"errors"
)

var (
	// ErrConnectionClosed is returned by Conn.Receive once the peer is gone.
	ErrConnectionClosed = errors.New("realtime: connection closed")

	// ErrSendFailed is returned when a frame could not be handed to the peer.
	ErrSendFailed = errors.New("realtime: send failed")
)

// Conn is one live bidirectional connection.
//
// Accept must be called before any other method and is idempotent. Sends must
// not block indefinitely: relays call them while holding a room lock.
type Conn interface {
	Accept(ctx context.Context) error
	Receive(ctx context.Context) (string, error)
	SendText(ctx context.Context, text string) error
	SendJSON(ctx context.Context, v any) error
}

// BacklogSender is implemented by connections that can take a burst of
// frames, such as a history replay, by waiting for room in their outbound
// queue. SendText may treat a full queue as a stalled peer; SendBacklog waits
// until the frame is queued, the connection closes or ctx ends.
type BacklogSender interface {
	SendBacklog(ctx context.Context, text string) error
}

// HistoryStore is an append-only per-room message log.
type HistoryStore interface {
	Append(ctx context.Context, roomID, text string) error

	// ReadAll returns every entry of the room, oldest first. An unknown room
	// yields an empty slice.
	ReadAll(ctx context.Context, roomID string) ([]string, error)
}
