package semaphore

import (
	"context"
	"errors"
	"fmt"
)

// ErrOverRelease is returned when a permit is released into a semaphore
// that already holds its maximum count.
var ErrOverRelease = errors.New("semaphore: release exceeds capacity")

// Semaphore implements a counting semaphore on a buffered channel.
// Every token in the channel is one available permit, so taking a token
// is the check and the decrement in a single step.
type Semaphore struct {
	permits chan struct{}
}

// New creates a semaphore holding initial permits out of max.
func New(initial, max int) (*Semaphore, error) {
	if max < 1 {
		return nil, fmt.Errorf("semaphore max must be positive, got %d", max)
	}
	if initial < 0 || initial > max {
		return nil, fmt.Errorf("semaphore initial count %d out of range [0,%d]", initial, max)
	}

	ch := make(chan struct{}, max)
	for i := 0; i < initial; i++ {
		ch <- struct{}{}
	}

	return &Semaphore{permits: ch}, nil
}

// Acquire takes one permit, blocking until one is available or ctx is done.
// When ctx ends first the count is left untouched and ctx.Err() is returned.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-s.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes one permit if it can do so without blocking.
func (s *Semaphore) TryAcquire() bool {
	select {
	case <-s.permits:
		return true
	default:
		return false
	}
}

// Release returns one permit and wakes a blocked Acquire, if any.
// It never blocks.
func (s *Semaphore) Release() error {
	select {
	case s.permits <- struct{}{}:
		return nil
	default:
		return ErrOverRelease
	}
}

// Available reports the current permit count. The value may be stale by
// the time the caller looks at it; never use it to decide admission.
func (s *Semaphore) Available() int {
	return len(s.permits)
}

// Capacity reports the maximum permit count.
func (s *Semaphore) Capacity() int {
	return cap(s.permits)
}
