package core

// limiter.go serializes sync runs.
//
// A sync drops and recreates every library table, so two runs must never
// overlap. The limiter is a one-slot semaphore: a second request waits up to
// maxWait for the running sync and then fails with ErrSyncInProgress.
//
// WaitForDrain supports graceful shutdown by blocking until the running sync
// completes.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSyncInProgress is returned when a sync is already running and the wait
// timeout expires.
var ErrSyncInProgress = errors.New("sync in progress, please try again later")

// DefaultMaxWaitTime is how long to wait for a running sync before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// SyncLimiter allows one sync at a time.
type SyncLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu      sync.RWMutex
	active  int
	started time.Time
}

// NewSyncLimiter creates a limiter. Requests that cannot start within
// maxWait receive ErrSyncInProgress.
func NewSyncLimiter(maxWait time.Duration) *SyncLimiter {
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &SyncLimiter{
		semaphore: make(chan struct{}, 1),
		maxWait:   maxWait,
	}
}

// Acquire waits for the sync slot.
// The caller MUST call Release() when the sync completes (use defer).
func (l *SyncLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.markStarted()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from our own timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrSyncInProgress
	}
}

// TryAcquire takes the slot without blocking.
func (l *SyncLimiter) TryAcquire() bool {
	select {
	case l.semaphore <- struct{}{}:
		l.markStarted()
		return true
	default:
		return false
	}
}

func (l *SyncLimiter) markStarted() {
	l.mu.Lock()
	l.active++
	l.started = time.Now()
	l.mu.Unlock()
}

// Release frees the slot.
// Must be called exactly once for each successful Acquire/TryAcquire.
func (l *SyncLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.started = time.Time{}
	l.mu.Unlock()

	<-l.semaphore
}

// Running reports whether a sync holds the slot.
func (l *SyncLimiter) Running() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active > 0
}

// WaitForDrain blocks until the running sync completes or ctx is cancelled.
func (l *SyncLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if !l.Running() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SyncLimiterStatus is a snapshot of the limiter's state.
type SyncLimiterStatus struct {
	Running   bool       `json:"running"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// Status returns the current limiter state for monitoring.
func (l *SyncLimiter) Status() SyncLimiterStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := SyncLimiterStatus{Running: l.active > 0}
	if st.Running {
		started := l.started
		st.StartedAt = &started
	}
	return st
}
