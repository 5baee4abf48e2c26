package history

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps room logs in process memory.
type Memory struct {
	mu    sync.RWMutex
	rooms map[string][]string
}

func NewMemory() *Memory {
	return &Memory{rooms: make(map[string][]string)}
}

func (m *Memory) Append(_ context.Context, roomID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rooms[roomID] = append(m.rooms[roomID], text)
	return nil
}

func (m *Memory) ReadAll(_ context.Context, roomID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if lines := m.rooms[roomID]; lines != nil {
		return slices.Clone(lines), nil
	}
	return []string{}, nil
}
