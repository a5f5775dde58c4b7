package observable

import "sync"

// Subject holds a current value and pushes every new value to its
// subscribers. Delivery conflates: a subscriber that falls behind receives
// only the latest value, and Next never blocks on a slow subscriber.
type Subject[T any] struct {
	// mu guards value, subscribers and done.
	mu sync.Mutex
	// value is the current value replayed to new subscribers.
	value T
	// subscribers are single-slot mailboxes, one per Subscribe call.
	subscribers map[chan T]struct{}
	// done is set once Complete has run.
	done bool
}

// NewSubject returns a subject holding initial.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value:       initial,
		subscribers: make(map[chan T]struct{}),
	}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value
}

// Next replaces the current value and offers it to all subscribers.
// Calls after Complete are ignored.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}

	s.value = v

	for ch := range s.subscribers {
		offer(ch, v)
	}
}

// Subscribe returns a channel that first yields the current value and then
// every later one, and a cancel function that closes it.
// Subscribing to a completed subject returns a closed channel.
func (s *Subject[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		close(ch)

		return ch, func() {}
	}

	ch <- s.value
	s.subscribers[ch] = struct{}{}

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if _, ok := s.subscribers[ch]; ok {
				delete(s.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Complete closes every subscriber channel. The current value stays readable.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}

	s.done = true

	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Completed reports whether Complete was called.
func (s *Subject[T]) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}

// offer puts v into the single-slot mailbox, dropping a stale unread value.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}

	ch <- v
}
