package mpsc

import (
	"sync"
	"sync/atomic"
	"time"
)

// handoffState is the rendezvous protocol state. The transitions, and
// nothing else, govern access to the place:
//
//	empty            -> senderAvailable    [a sender announces itself]
//	empty            -> receiverAvailable  [the receiver announces itself]
//	senderAvailable  -> bothAvailable      [the receiver meets a sender]
//	receiverAvailable-> bothAvailable      [a sender meets the receiver]
//	bothAvailable    -> sending            [one sender wins the election]
//	sending          -> sent               [the winner deposits into the place]
//	sent             -> empty              [the receiver takes the place]
//
// Only the sender whose bothAvailable -> sending CAS succeeded may write
// the place. While the receiver is present, only its take drives
// sent -> empty; after the receiver has left, a parked depositing sender
// reclaims a still-occupied place and drives sent -> empty itself.
type handoffState uint32

const (
	handoffEmpty handoffState = iota
	handoffSenderAvailable
	handoffReceiverAvailable
	handoffBothAvailable
	handoffSending
	handoffSent
)

func (s handoffState) String() string {
	switch s {
	case handoffEmpty:
		return `Empty`
	case handoffSenderAvailable:
		return `SenderAvailable`
	case handoffReceiverAvailable:
		return `ReceiverAvailable`
	case handoffBothAvailable:
		return `BothAvailable`
	case handoffSending:
		return `Sending`
	case handoffSent:
		return `Sent`
	default:
		return `Unknown`
	}
}

// rendezvousChannel is the queue-free zero-capacity flavor: a state
// machine plus a single mutex-guarded slot. The place holds a value only
// in the sending and sent states, and a deposited value is taken exactly
// once.
type rendezvousChannel[T any] struct {
	state   atomic.Uint32
	placeMu sync.Mutex
	place   T
	placed  bool
	sendTok token
	recvTok token
	senders atomic.Int64
}

func newRendezvousChannel[T any]() *rendezvousChannel[T] {
	c := &rendezvousChannel[T]{}
	c.sendTok, c.recvTok = tokens()
	return c
}

// for testing purposes; runs between the receiver's take and its state
// store, i.e. before any depositing sender can observe the hand-off
var takeHook func()

func (c *rendezvousChannel[T]) cas(from, to handoffState) bool {
	return c.state.CompareAndSwap(uint32(from), uint32(to))
}

func (c *rendezvousChannel[T]) load() handoffState {
	return handoffState(c.state.Load())
}

func (c *rendezvousChannel[T]) putPlace(value T) {
	c.placeMu.Lock()
	defer c.placeMu.Unlock()
	if c.placed {
		panic(`mpsc: rendezvous: deposit into occupied place`)
	}
	c.place = value
	c.placed = true
}

func (c *rendezvousChannel[T]) takePlace() (value T, ok bool) {
	c.placeMu.Lock()
	defer c.placeMu.Unlock()
	if !c.placed {
		return
	}
	value = c.place
	var zero T
	c.place = zero
	c.placed = false
	return value, true
}

func (c *rendezvousChannel[T]) trySend(value T) error {
	// meet a receiver that has announced itself; harmless if another
	// sender, or the receiver, already upgraded the state
	c.cas(handoffReceiverAvailable, handoffBothAvailable)
	// the election: exactly one of the racing senders proceeds
	if !c.cas(handoffBothAvailable, handoffSending) {
		if c.sendTok.isPeerPresent() {
			return ErrFull
		}
		return ErrDisconnected
	}
	c.putPlace(value)
	if old := handoffState(c.state.Swap(uint32(handoffSent))); old != handoffSending {
		panic(`mpsc: rendezvous: state ` + old.String() + ` during deposit`)
	}
	c.sendTok.wake()
	return nil
}

func (c *rendezvousChannel[T]) send(value T) error {
	for {
		// best-effort announcement, so a receiver arriving later can meet us
		c.cas(handoffEmpty, handoffSenderAvailable)
		switch err := c.trySend(value); err {
		case nil:
			return c.awaitTake()
		case ErrFull:
			// liven a receiver that parked before our announcement
			c.sendTok.wake()
			c.sendTok.wait()
		default:
			return err
		}
	}
}

// awaitTake blocks the depositing sender until its value has been taken:
// the sent state is only left via the receiver's take, so a successful
// send implies synchronous delivery. If the receiver leaves first, the
// deposit is reclaimed and the send fails.
func (c *rendezvousChannel[T]) awaitTake() error {
	for c.load() == handoffSent {
		if !c.sendTok.isPeerPresent() {
			if _, ok := c.takePlace(); ok {
				// receiver left before taking our value
				c.cas(handoffSent, handoffEmpty)
				return ErrDisconnected
			}
			// receiver took our value and then left
			return nil
		}
		c.sendTok.wait()
	}
	return nil
}

func (c *rendezvousChannel[T]) tryRecv() (T, error) {
	var zero T
	// snapshot presence before inspecting the state, same reason as the
	// buffered receive path: the winning sender may deposit and leave
	// between the load below and a later presence read
	present := c.recvTok.isPeerPresent()
	// meet a sender that has announced itself
	c.cas(handoffSenderAvailable, handoffBothAvailable)
	if c.load() != handoffSent {
		// no sender has finished depositing
		if present {
			return zero, ErrEmpty
		}
		return zero, ErrDisconnected
	}
	value, ok := c.takePlace()
	if !ok {
		panic(`mpsc: rendezvous: sent state with empty place`)
	}
	if takeHook != nil {
		takeHook()
	}
	c.state.Store(uint32(handoffEmpty))
	c.recvTok.wake()
	return value, nil
}

func (c *rendezvousChannel[T]) recv() (T, error) {
	for {
		c.cas(handoffEmpty, handoffReceiverAvailable)
		value, err := c.tryRecv()
		if err == ErrEmpty {
			// liven a sender that announced itself before we parked
			c.recvTok.wake()
			c.recvTok.wait()
			continue
		}
		if err == ErrDisconnected {
			// withdraw the announcement, if still standing
			c.cas(handoffReceiverAvailable, handoffEmpty)
		}
		return value, err
	}
}

func (c *rendezvousChannel[T]) recvDeadline(deadline time.Time) (T, error) {
	for {
		c.cas(handoffEmpty, handoffReceiverAvailable)
		value, err := c.tryRecv()
		if err == ErrEmpty {
			c.recvTok.wake()
			if c.recvTok.waitUntil(deadline) {
				// a sender that already won the meet completes its deposit;
				// the value is surfaced by the next receive on this handle
				c.cas(handoffReceiverAvailable, handoffEmpty)
				var zero T
				return zero, ErrTimeout
			}
			continue
		}
		if err == ErrDisconnected {
			c.cas(handoffReceiverAvailable, handoffEmpty)
		}
		return value, err
	}
}

func (c *rendezvousChannel[T]) attach() {
	c.senders.Add(1)
}

func (c *rendezvousChannel[T]) detach() {
	if c.senders.Add(-1) == 0 {
		logDeparture(`sender`)
		c.sendTok.leave()
	}
}

func (c *rendezvousChannel[T]) closeReceiver() {
	logDeparture(`receiver`)
	c.recvTok.leave()
}
