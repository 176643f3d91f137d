package mpsc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_topology(t *testing.T) {
	a, b := tokens()

	require.Same(t, a.signal, b.peer)
	require.Same(t, b.signal, a.peer)

	assert.True(t, a.isPeerPresent())
	assert.True(t, b.isPeerPresent())
}

func TestToken_wakeBeforeWait(t *testing.T) {
	a, b := tokens()

	a.wake()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.wait()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(`wait did not observe a prior wake`)
	}
}

func TestToken_wakeUnblocksWaiter(t *testing.T) {
	a, b := tokens()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.wait()
	}()

	time.Sleep(20 * time.Millisecond)
	a.wake()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(`wait did not return after wake`)
	}
}

func TestToken_leaveUnblocksAllWaiters(t *testing.T) {
	a, b := tokens()

	const waiters = 4
	done := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			b.wait()
			done <- struct{}{}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	a.leave()

	for i := 0; i < waiters; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf(`waiter %d still parked after leave`, i)
		}
	}

	assert.False(t, b.isPeerPresent())
	assert.True(t, a.isPeerPresent())
}

func TestToken_doubleLeavePanics(t *testing.T) {
	a, _ := tokens()
	a.leave()
	assert.PanicsWithValue(t, `mpsc: token: double leave`, func() { a.leave() })
}

func TestToken_waitUntil_timesOut(t *testing.T) {
	_, b := tokens()

	start := time.Now()
	timedOut := b.waitUntil(start.Add(30 * time.Millisecond))

	assert.True(t, timedOut)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestToken_waitUntil_pastDeadline(t *testing.T) {
	_, b := tokens()
	assert.True(t, b.waitUntil(time.Now().Add(-time.Second)))
}

func TestToken_waitUntil_wokenIsNotTimeout(t *testing.T) {
	a, b := tokens()

	go func() {
		time.Sleep(10 * time.Millisecond)
		a.wake()
	}()

	assert.False(t, b.waitUntil(time.Now().Add(5*time.Second)))
}

func TestToken_waitUntil_leaveIsNotTimeout(t *testing.T) {
	a, b := tokens()

	go func() {
		time.Sleep(10 * time.Millisecond)
		a.leave()
	}()

	assert.False(t, b.waitUntil(time.Now().Add(5*time.Second)))
	assert.False(t, b.isPeerPresent())
}

func TestToken_waitUntil_clearsLatch(t *testing.T) {
	a, b := tokens()

	// any number of wakes collapse into one latch set...
	a.wake()
	a.wake()
	a.wake()

	// ...observed by one timed wait, which clears it on exit
	assert.False(t, b.waitUntil(time.Now().Add(time.Second)))

	// so a second timed wait cannot short-circuit on a stale latch
	assert.True(t, b.waitUntil(time.Now().Add(10*time.Millisecond)))
}

func TestToken_waitDoesNotClearLatch(t *testing.T) {
	a, b := tokens()

	a.wake()
	b.wait()

	// the untimed wait leaves the latch set; the next timed wait still
	// observes it
	assert.False(t, b.waitUntil(time.Now().Add(10*time.Millisecond)))
}
