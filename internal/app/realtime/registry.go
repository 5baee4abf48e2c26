package realtime

import (
	"slices"
	"sync"
)

// Member is one registry entry: the key a room addresses the connection by,
// and the connection itself.
type Member[K comparable] struct {
	Key  K
	Conn Conn
}

// Members is the participant list of one room, in join order. It is only
// reachable inside Registry.Update, which holds the room lock.
type Members[K comparable] struct {
	entries []Member[K]
}

func (m *Members[K]) index(key K) int {
	return slices.IndexFunc(m.entries, func(e Member[K]) bool { return e.Key == key })
}

// Put registers conn under key. An existing entry for key is replaced in
// place and its connection returned; otherwise the entry is appended.
func (m *Members[K]) Put(key K, conn Conn) (displaced Conn) {
	if i := m.index(key); i >= 0 {
		displaced = m.entries[i].Conn
		m.entries[i].Conn = conn
		return displaced
	}
	m.entries = append(m.entries, Member[K]{Key: key, Conn: conn})
	return nil
}

// Delete removes the entry for key and reports whether there was one.
func (m *Members[K]) Delete(key K) bool {
	i := m.index(key)
	if i < 0 {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

// DeleteConn removes the entry for key only while it still maps to conn.
func (m *Members[K]) DeleteConn(key K, conn Conn) bool {
	i := m.index(key)
	if i < 0 || m.entries[i].Conn != conn {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

// Snapshot returns a copy of the entries in join order.
func (m *Members[K]) Snapshot() []Member[K] {
	return slices.Clone(m.entries)
}

// Len is the number of participants.
func (m *Members[K]) Len() int {
	return len(m.entries)
}

// room guards one room's members. A room is dead once it has been pruned
// from the registry; holders of a stale pointer must look it up again.
type room[K comparable] struct {
	mu      sync.Mutex
	members Members[K]
	dead    bool
}

// Registry maps room identifiers to participant lists.
//
// The registry lock only guards the room map; each room has its own lock, so
// traffic in one room never waits on another. Rooms appear on first insert
// and are removed as soon as their last participant leaves.
type Registry[K comparable] struct {
	mu    sync.RWMutex
	rooms map[string]*room[K]
}

// NewRegistry returns an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{rooms: make(map[string]*room[K])}
}

// acquire returns the live room for roomID with its lock held, creating it if needed.
func (r *Registry[K]) acquire(roomID string) *room[K] {
	for {
		r.mu.Lock()
		rm, ok := r.rooms[roomID]
		if !ok {
			rm = &room[K]{}
			r.rooms[roomID] = rm
		}
		r.mu.Unlock()

		rm.mu.Lock()
		if !rm.dead {
			return rm
		}
		rm.mu.Unlock()
	}
}

// release prunes rm if it ended up empty, then unlocks it.
func (r *Registry[K]) release(roomID string, rm *room[K]) {
	if rm.members.Len() == 0 {
		rm.dead = true

		r.mu.Lock()
		if r.rooms[roomID] == rm {
			delete(r.rooms, roomID)
		}
		r.mu.Unlock()
	}
	rm.mu.Unlock()
}

// Update runs fn with exclusive access to the members of roomID. Calls for the
// same room are serialized; fn must not call back into the registry for that
// room.
func (r *Registry[K]) Update(roomID string, fn func(m *Members[K])) {
	rm := r.acquire(roomID)
	defer r.release(roomID, rm)

	fn(&rm.members)
}

// Join registers conn under key in roomID and returns the connection it
// replaced, if any.
func (r *Registry[K]) Join(roomID string, key K, conn Conn) (displaced Conn) {
	r.Update(roomID, func(m *Members[K]) {
		displaced = m.Put(key, conn)
	})
	return displaced
}

// Leave removes key from roomID. Leaving an unknown room or key is a no-op.
func (r *Registry[K]) Leave(roomID string, key K) (removed bool) {
	if !r.has(roomID) {
		return false
	}
	r.Update(roomID, func(m *Members[K]) {
		removed = m.Delete(key)
	})
	return removed
}

// LeaveConn removes key from roomID only while it is still bound to conn.
func (r *Registry[K]) LeaveConn(roomID string, key K, conn Conn) (removed bool) {
	if !r.has(roomID) {
		return false
	}
	r.Update(roomID, func(m *Members[K]) {
		removed = m.DeleteConn(key, conn)
	})
	return removed
}

// Participants returns a snapshot of roomID's members, or nil for an unknown room.
func (r *Registry[K]) Participants(roomID string) []Member[K] {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()

	if !ok {
		return nil
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.dead {
		return nil
	}
	return rm.members.Snapshot()
}

// Rooms lists the identifiers of rooms that currently have participants.
func (r *Registry[K]) Rooms() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.rooms))
	rooms := make([]*room[K], 0, len(r.rooms))
	for id, rm := range r.rooms {
		ids = append(ids, id)
		rooms = append(rooms, rm)
	}
	r.mu.RUnlock()

	live := ids[:0]
	for i, rm := range rooms {
		rm.mu.Lock()
		if !rm.dead && rm.members.Len() > 0 {
			live = append(live, ids[i])
		}
		rm.mu.Unlock()
	}
	slices.Sort(live)
	return live
}

// Drain empties every room and returns the members that were registered.
func (r *Registry[K]) Drain() []Member[K] {
	var drained []Member[K]
	for _, id := range r.Rooms() {
		r.Update(id, func(m *Members[K]) {
			drained = append(drained, m.Snapshot()...)
			m.entries = nil
		})
	}
	return drained
}

func (r *Registry[K]) has(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomID]
	return ok
}
