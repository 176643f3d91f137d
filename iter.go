package mpsc

import "iter"

// Iter returns a blocking iterator over received values: each step performs
// one Recv, and the sequence ends once the channel disconnects.
func (x *Receiver[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, err := x.Recv()
			if err != nil || !yield(value) {
				return
			}
		}
	}
}

// TryIter returns a non-blocking iterator over received values: each step
// performs one TryRecv, and the sequence ends at the first outcome that is
// not a value, including an empty buffer.
func (x *Receiver[T]) TryIter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, err := x.TryRecv()
			if err != nil || !yield(value) {
				return
			}
		}
	}
}
