package mpsc

import "errors"

var (
	// ErrDisconnected is returned by send operations once the receiver has
	// closed, and by receive operations once every sender has closed and no
	// buffered or deposited value remains.
	ErrDisconnected = errors.New(`mpsc: disconnected`)

	// ErrFull is returned by TrySend when a bounded buffer is at capacity,
	// or when a rendezvous hand-off cannot complete immediately.
	ErrFull = errors.New(`mpsc: full`)

	// ErrEmpty is returned by TryRecv when no value is available but at
	// least one sender remains.
	ErrEmpty = errors.New(`mpsc: empty`)

	// ErrTimeout is returned by RecvTimeout and RecvDeadline when the
	// deadline passes with no value received and no disconnection.
	ErrTimeout = errors.New(`mpsc: timeout`)
)
