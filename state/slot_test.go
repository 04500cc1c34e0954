package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
		var zero T
		return zero
	}
}

func TestSlotLoadStore(t *testing.T) {
	s := NewSlot(1)
	assert.Equal(t, 1, s.Load())

	s.Store(2)
	assert.Equal(t, 2, s.Load())
}

func TestSlotUpdate(t *testing.T) {
	s := NewSlot(10)
	got := s.Update(func(v int) int { return v + 5 })
	assert.Equal(t, 15, got)
	assert.Equal(t, 15, s.Load())
}

func TestSubscribeYieldsCurrentValueFirst(t *testing.T) {
	s := NewSlot("initial")
	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Equal(t, "initial", receive(t, ch))
}

func TestSubscribeReceivesLaterValues(t *testing.T) {
	s := NewSlot(Idle[int]())
	ch, cancel := s.Subscribe()
	defer cancel()
	receive(t, ch)

	s.Store(Loading[int]())
	assert.True(t, receive(t, ch).IsLoading())

	s.Store(Success(7))
	assert.Equal(t, 7, receive(t, ch).Data)
}

func TestSlowSubscriberSeesOnlyNewest(t *testing.T) {
	s := NewSlot(0)
	ch, cancel := s.Subscribe()
	defer cancel()

	for i := 1; i <= 100; i++ {
		s.Store(i)
	}

	assert.Equal(t, 100, receive(t, ch))
	select {
	case v := <-ch:
		t.Fatalf("expected no further values, got %d", v)
	default:
	}
}

func TestCancelClosesChannelAndIsIdempotent(t *testing.T) {
	s := NewSlot(0)
	ch, cancel := s.Subscribe()
	receive(t, ch)

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic.
	s.Store(1)
	assert.Equal(t, 1, s.Load())
}

func TestMultipleSubscribers(t *testing.T) {
	s := NewSlot("a")
	ch1, cancel1 := s.Subscribe()
	ch2, cancel2 := s.Subscribe()
	defer cancel1()
	defer cancel2()
	receive(t, ch1)
	receive(t, ch2)

	s.Store("b")
	assert.Equal(t, "b", receive(t, ch1))
	assert.Equal(t, "b", receive(t, ch2))
}

func TestConcurrentWritersNeverTear(t *testing.T) {
	type pair struct{ a, b int }
	s := NewSlot(pair{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.Store(pair{n, n})
				v := s.Load()
				assert.Equal(t, v.a, v.b)
			}
		}(i)
	}
	wg.Wait()
}
