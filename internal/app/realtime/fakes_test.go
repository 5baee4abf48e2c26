package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// fakeConn records what the relays send and feeds Receive from a channel.
type fakeConn struct {
	name string

	mu        sync.Mutex
	accepts   int
	frames    []string
	failSends bool

	acceptErr error
	inbound   chan string
}

func newFakeConn(name string) *fakeConn {
	return &fakeConn{name: name, inbound: make(chan string, 16)}
}

func (f *fakeConn) Accept(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.accepts++
	return f.acceptErr
}

func (f *fakeConn) Receive(ctx context.Context) (string, error) {
	select {
	case text, ok := <-f.inbound:
		if !ok {
			return "", ErrConnectionClosed
		}
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (f *fakeConn) SendText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSends {
		return ErrSendFailed
	}
	f.frames = append(f.frames, text)
	return nil
}

func (f *fakeConn) SendJSON(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.SendText(ctx, string(b))
}

func (f *fakeConn) setFailing(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSends = fail
}

func (f *fakeConn) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

// backlogConn is a fakeConn that also takes bursts through SendBacklog. Live
// sends fail once liveLimit frames are pending, the way a bounded queue does.
type backlogConn struct {
	*fakeConn
	liveLimit int
	backlog   []string
}

func newBacklogConn(name string, liveLimit int) *backlogConn {
	return &backlogConn{fakeConn: newFakeConn(name), liveLimit: liveLimit}
}

func (b *backlogConn) SendText(ctx context.Context, text string) error {
	b.mu.Lock()
	full := len(b.frames) >= b.liveLimit
	b.mu.Unlock()
	if full {
		return ErrSendFailed
	}
	return b.fakeConn.SendText(ctx, text)
}

func (b *backlogConn) SendBacklog(_ context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.backlog = append(b.backlog, text)
	return nil
}

func (b *backlogConn) replayed() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.backlog...)
}

// fakeHistory is an in-memory HistoryStore with injectable failures. A hanging
// store blocks every call until its context ends.
type fakeHistory struct {
	mu         sync.Mutex
	rooms      map[string][]string
	failAppend bool
	failRead   bool
	hang       bool
}

func (h *fakeHistory) wait(ctx context.Context) error {
	h.mu.Lock()
	hang := h.hang
	h.mu.Unlock()

	if !hang {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{rooms: make(map[string][]string)}
}

func (h *fakeHistory) Append(ctx context.Context, roomID, text string) error {
	if err := h.wait(ctx); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.failAppend {
		return errors.New("history unavailable")
	}
	h.rooms[roomID] = append(h.rooms[roomID], text)
	return nil
}

func (h *fakeHistory) ReadAll(ctx context.Context, roomID string) ([]string, error) {
	if err := h.wait(ctx); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.failRead {
		return nil, errors.New("history unavailable")
	}
	return append([]string{}, h.rooms[roomID]...), nil
}

func (h *fakeHistory) entries(roomID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.rooms[roomID]...)
}
