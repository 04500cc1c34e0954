package state

import (
	"sync"

	"github.com/google/uuid"
)

// Slot holds the current value of one piece of observable state. Readers
// always see a whole value; subscribers receive the newest value and never
// block the writer.
type Slot[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[uuid.UUID]chan T
}

// NewSlot creates a slot holding initial.
func NewSlot[T any](initial T) *Slot[T] {
	return &Slot[T]{
		value: initial,
		subs:  make(map[uuid.UUID]chan T),
	}
}

// Load returns the current value.
func (s *Slot[T]) Load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Store replaces the current value and publishes it.
func (s *Slot[T]) Store(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.publish(v)
}

// Update replaces the current value with fn(current) under the write lock.
func (s *Slot[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = fn(s.value)
	s.publish(s.value)
	return s.value
}

// Subscribe returns a channel that first yields the current value and then
// every later one. Slow readers skip intermediate values. The returned
// func unsubscribes and closes the channel; it is safe to call twice.
func (s *Slot[T]) Subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	ch := make(chan T, 1)
	ch <- s.value
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with s.mu held for writing.
func (s *Slot[T]) publish(v T) {
	for _, ch := range s.subs {
		// Drop the stale buffered value, if any, then offer the new one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// View is the read-only side of a Slot handed to observers.
type View[T any] interface {
	Load() T
	Subscribe() (<-chan T, func())
}

var _ View[int] = (*Slot[int])(nil)
