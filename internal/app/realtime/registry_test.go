package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryJoinLeave(t *testing.T) {
	r := NewRegistry[string]()
	a, b := newFakeConn("a"), newFakeConn("b")

	assert.Nil(t, r.Join("r1", "alice", a))
	assert.Nil(t, r.Join("r1", "bob", b))

	members := r.Participants("r1")
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Key)
	assert.Equal(t, "bob", members[1].Key)

	assert.True(t, r.Leave("r1", "alice"))
	assert.False(t, r.Leave("r1", "alice"), "second leave is a no-op")
	assert.False(t, r.Leave("nowhere", "alice"))

	assert.True(t, r.Leave("r1", "bob"))
	assert.Nil(t, r.Participants("r1"))
	assert.Empty(t, r.Rooms(), "empty room must be pruned")
}

func TestRegistryUpsertByIdentity(t *testing.T) {
	r := NewRegistry[string]()
	first, second := newFakeConn("first"), newFakeConn("second")

	r.Join("r2", "x", first)
	displaced := r.Join("r2", "x", second)

	assert.Same(t, first, displaced)
	members := r.Participants("r2")
	require.Len(t, members, 1)
	assert.Same(t, second, members[0].Conn)
}

func TestRegistryLeaveConnIgnoresStaleConnection(t *testing.T) {
	r := NewRegistry[string]()
	stale, current := newFakeConn("stale"), newFakeConn("current")

	r.Join("r2", "x", stale)
	r.Join("r2", "x", current)

	assert.False(t, r.LeaveConn("r2", "x", stale))
	require.Len(t, r.Participants("r2"), 1)

	assert.True(t, r.LeaveConn("r2", "x", current))
	assert.Empty(t, r.Rooms())
}

func TestRegistryKeyedByConnection(t *testing.T) {
	r := NewRegistry[Conn]()
	a, b := newFakeConn("a"), newFakeConn("b")

	r.Join("r1", a, a)
	r.Join("r1", a, a)
	r.Join("r1", b, b)
	require.Len(t, r.Participants("r1"), 2, "the same connection is registered once")

	assert.True(t, r.Leave("r1", a))
	members := r.Participants("r1")
	require.Len(t, members, 1)
	assert.Same(t, b, members[0].Conn)
}

func TestRegistryParticipantsIsSnapshot(t *testing.T) {
	r := NewRegistry[string]()
	r.Join("r1", "alice", newFakeConn("a"))

	snap := r.Participants("r1")
	r.Join("r1", "bob", newFakeConn("b"))

	assert.Len(t, snap, 1)
	assert.Len(t, r.Participants("r1"), 2)
}

func TestRegistryUpdateOnUnknownRoomLeavesNoGhost(t *testing.T) {
	r := NewRegistry[string]()

	called := false
	r.Update("ghost", func(m *Members[string]) {
		called = true
		assert.Equal(t, 0, m.Len())
	})

	assert.True(t, called)
	assert.Empty(t, r.Rooms())
}

func TestRegistryDrain(t *testing.T) {
	r := NewRegistry[string]()
	r.Join("r1", "alice", newFakeConn("a"))
	r.Join("r2", "bob", newFakeConn("b"))
	r.Join("r2", "carol", newFakeConn("c"))

	drained := r.Drain()
	assert.Len(t, drained, 3)
	assert.Empty(t, r.Rooms())
}

func TestRegistryConcurrentChurn(t *testing.T) {
	r := NewRegistry[string]()

	const workers, rounds = 16, 200
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := newFakeConn(fmt.Sprint(w))
			identity := fmt.Sprintf("peer-%d", w)
			roomID := fmt.Sprintf("room-%d", w%3)
			for range rounds {
				r.Join(roomID, identity, conn)
				_ = r.Participants(roomID)
				r.Leave(roomID, identity)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, r.Rooms(), "every room emptied by its last leave must be gone")
	for i := range 3 {
		assert.Nil(t, r.Participants(fmt.Sprintf("room-%d", i)))
	}
}

func TestRegistryConcurrentJoinsAreAllKept(t *testing.T) {
	r := NewRegistry[string]()

	// one participant keeps leaving and rejoining so the room is pruned and
	// recreated while others join
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		conn := newFakeConn("flapper")
		for {
			select {
			case <-stop:
				return
			default:
				r.Join("busy", "flapper", conn)
				r.Leave("busy", "flapper")
			}
		}
	}()

	var joiners sync.WaitGroup
	for i := range 50 {
		joiners.Add(1)
		go func() {
			defer joiners.Done()
			r.Join("busy", fmt.Sprintf("p%d", i), newFakeConn("p"))
		}()
	}
	joiners.Wait()
	close(stop)
	wg.Wait()

	assert.Len(t, r.Participants("busy"), 50, "no join may land in a pruned room")
}
