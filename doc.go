// Package mpsc implements multi-producer single-consumer channels, in
// unbounded, bounded, and rendezvous (zero-capacity) flavors, sharing a
// single receiver type.
//
// Senders never block on an unbounded channel, block at capacity on a
// bounded channel, and block until the receiver has taken the value on a
// rendezvous channel. Each side of a channel holds one endpoint of a token
// pair, a wake/wait/presence primitive, so closing either side promptly
// unblocks and fails the other.
//
// Senders may be cloned, and each handle moved between goroutines. The
// receiver is a unique handle: its methods must not be called concurrently.
//
// See also [github.com/joeycumines/go-longpoll], e.g. for batched receives
// over ordinary Go channels.
package mpsc
