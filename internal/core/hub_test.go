package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavithrapri/collab-code-editor/internal/domain"
)

type fakeConn struct {
	mu      sync.Mutex
	frames  [][]byte
	failing bool
	closed  bool
}

func (f *fakeConn) TrySend(b []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing || f.closed {
		return errors.New("send failed")
	}
	f.frames = append(f.frames, b)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeConn) takeFrames() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.frames
	f.frames = nil
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func newTestSession(sid string, room domain.RoomID) (*Session, *fakeConn) {
	conn := &fakeConn{}
	return NewSession(SessionID(sid), room, conn), conn
}

func decodePresence(t *testing.T, frame []byte) Presence {
	t.Helper()
	var p Presence
	require.NoError(t, json.Unmarshal(frame, &p))
	return p
}

func TestAdmitFirstMemberAnnouncesNothing(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")

	h.Admit("r1", a)

	assert.Equal(t, 1, h.Count("r1"))
	assert.Empty(t, connA.takeFrames())
}

func TestAdmitAnnouncesToOthersWithLiveCount(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")
	b, connB := newTestSession("b", "r1")

	h.Admit("r1", a)
	h.Admit("r1", b)

	frames := connA.takeFrames()
	require.Len(t, frames, 1)
	p := decodePresence(t, frames[0])
	assert.Equal(t, TypeUserJoined, p.Type)
	assert.Equal(t, domain.RoomID("r1"), p.RoomID)
	assert.Equal(t, 2, p.UserCount)

	// The joiner itself hears nothing.
	assert.Empty(t, connB.takeFrames())
}

func TestAdmitSameSessionTwiceDoesNotDuplicate(t *testing.T) {
	h := NewHub()
	a, _ := newTestSession("a", "r1")

	h.Admit("r1", a)
	h.Admit("r1", a)

	assert.Equal(t, 1, h.Count("r1"))
}

func TestEvictAnnouncesToRemainder(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")
	b, _ := newTestSession("b", "r1")
	h.Admit("r1", a)
	h.Admit("r1", b)
	connA.takeFrames()

	h.Evict("r1", b)

	frames := connA.takeFrames()
	require.Len(t, frames, 1)
	p := decodePresence(t, frames[0])
	assert.Equal(t, TypeUserLeft, p.Type)
	assert.Equal(t, 1, p.UserCount)
	assert.Equal(t, 1, h.Count("r1"))
}

func TestEvictLastMemberRemovesRoom(t *testing.T) {
	h := NewHub()
	a, _ := newTestSession("a", "r1")
	h.Admit("r1", a)

	h.Evict("r1", a)

	assert.Equal(t, 0, h.Count("r1"))
	assert.Empty(t, h.Members("r1"))
}

func TestEvictIsIdempotent(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")
	b, _ := newTestSession("b", "r1")
	h.Admit("r1", a)
	h.Admit("r1", b)
	connA.takeFrames()

	h.Evict("r1", b)
	h.Evict("r1", b)
	h.Evict("unknown-room", b)

	assert.Equal(t, 1, h.Count("r1"))
	// Only one user_left despite the repeated evictions.
	assert.Len(t, connA.takeFrames(), 1)
}

func TestBroadcastExcludesSender(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")
	b, connB := newTestSession("b", "r1")
	c, connC := newTestSession("c", "r1")
	h.Admit("r1", a)
	h.Admit("r1", b)
	h.Admit("r1", c)
	connA.takeFrames()
	connB.takeFrames()
	connC.takeFrames()

	msg := []byte(`{"type":"code_update","code":"x=1"}`)
	h.Broadcast("r1", msg, a)

	assert.Empty(t, connA.takeFrames())
	require.Len(t, connB.takeFrames(), 1)
	require.Len(t, connC.takeFrames(), 1)
}

func TestBroadcastDeliversVerbatim(t *testing.T) {
	h := NewHub()
	a, _ := newTestSession("a", "r1")
	b, connB := newTestSession("b", "r1")
	h.Admit("r1", a)
	h.Admit("r1", b)
	connB.takeFrames()

	msg := []byte(`{"type":"cursor_position","line":3,"col":14,"userId":"u1"}`)
	h.Broadcast("r1", msg, a)

	frames := connB.takeFrames()
	require.Len(t, frames, 1)
	assert.Equal(t, msg, frames[0])
}

func TestBroadcastEvictsDeadRecipient(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")
	b, connB := newTestSession("b", "r1")
	c, connC := newTestSession("c", "r1")
	h.Admit("r1", a)
	h.Admit("r1", b)
	h.Admit("r1", c)
	connA.takeFrames()
	connC.takeFrames()

	connB.failing = true
	msg := []byte(`{"type":"code_update","code":"y=2"}`)
	h.Broadcast("r1", msg, a)

	// The dead member is gone and its transport closed.
	assert.Equal(t, 2, h.Count("r1"))
	assert.True(t, connB.isClosed())

	// The survivor got the message and then the departure notice.
	frames := connC.takeFrames()
	require.Len(t, frames, 2)
	assert.Equal(t, msg, frames[0])
	p := decodePresence(t, frames[1])
	assert.Equal(t, TypeUserLeft, p.Type)
	assert.Equal(t, 2, p.UserCount)
}

func TestNoDeliveryToEvictedSession(t *testing.T) {
	h := NewHub()
	a, _ := newTestSession("a", "r1")
	b, connB := newTestSession("b", "r1")
	h.Admit("r1", a)
	h.Admit("r1", b)
	h.Evict("r1", b)
	connB.takeFrames()

	h.Broadcast("r1", []byte(`{"type":"code_update","code":"z"}`), nil)

	assert.Empty(t, connB.takeFrames())
}

func TestCloseAllClosesEverySessionSilently(t *testing.T) {
	h := NewHub()
	a, connA := newTestSession("a", "r1")
	b, connB := newTestSession("b", "r1")
	c, connC := newTestSession("c", "r2")
	h.Admit("r1", a)
	h.Admit("r1", b)
	h.Admit("r2", c)
	connA.takeFrames()
	connB.takeFrames()
	connC.takeFrames()

	h.CloseAll()

	assert.True(t, connA.isClosed())
	assert.True(t, connB.isClosed())
	assert.True(t, connC.isClosed())
	assert.Equal(t, 0, h.Count("r1"))
	assert.Equal(t, 0, h.Count("r2"))
	// No user_left fan-out during shutdown.
	assert.Empty(t, connA.takeFrames())
	assert.Empty(t, connB.takeFrames())
	assert.Empty(t, connC.takeFrames())
}

func TestConcurrentAdmitEvict(t *testing.T) {
	h := NewHub()
	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, _ := newTestSession(fmt.Sprintf("s%d", i), "r1")
			h.Admit("r1", sess)
			h.Broadcast("r1", []byte(`{"type":"cursor_position"}`), sess)
			if i%2 == 0 {
				h.Evict("r1", sess)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n/2, h.Count("r1"))
}
