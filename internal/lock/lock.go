package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"auction-engine/internal/biddingerrors"
)

// Locker serializes work per auction. Acquire blocks until the auction's
// critical section is free or ctx is done, and returns the release function.
type Locker interface {
	Acquire(ctx context.Context, auctionID int64) (release func(), err error)
}

type memoryEntry struct {
	sem  chan struct{}
	refs int
}

// MemoryLocker is a process-local Locker. Waiters on the same auction are
// served in arrival order; different auctions never block each other.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[int64]*memoryEntry
}

// NewMemoryLocker creates an empty MemoryLocker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{entries: make(map[int64]*memoryEntry)}
}

// Acquire takes the auction's lock or fails with ErrAuctionBusy once ctx expires
func (l *MemoryLocker) Acquire(ctx context.Context, auctionID int64) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[auctionID]
	if !ok {
		e = &memoryEntry{sem: make(chan struct{}, 1)}
		l.entries[auctionID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(auctionID, e)
		return nil, busy(auctionID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.unref(auctionID, e)
		})
	}, nil
}

func (l *MemoryLocker) unref(auctionID int64, e *memoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, auctionID)
	}
}

func busy(auctionID int64, cause error) error {
	if errors.Is(cause, context.Canceled) {
		return fmt.Errorf("lock auction %d: %w", auctionID, cause)
	}
	return fmt.Errorf("lock auction %d: %w", auctionID, biddingerrors.ErrAuctionBusy)
}
