package core

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSyncLimiter_AcquireRelease(t *testing.T) {
	limiter := NewSyncLimiter(time.Second)

	if limiter.Running() {
		t.Error("initial Running = true, want false")
	}

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !limiter.Running() {
		t.Error("after Acquire, Running = false, want true")
	}

	limiter.Release()
	if limiter.Running() {
		t.Error("after Release, Running = true, want false")
	}
}

func TestSyncLimiter_RejectsSecondSync(t *testing.T) {
	limiter := NewSyncLimiter(100 * time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	start := time.Now()
	err := limiter.Acquire(ctx)
	elapsed := time.Since(start)

	if err != ErrSyncInProgress {
		t.Errorf("expected ErrSyncInProgress, got %v", err)
	}
	if elapsed < 90*time.Millisecond {
		t.Errorf("timeout too fast: %v", elapsed)
	}

	limiter.Release()
}

func TestSyncLimiter_NeverOverlaps(t *testing.T) {
	limiter := NewSyncLimiter(5 * time.Second)

	var wg sync.WaitGroup
	var mu sync.Mutex
	running, maxObserved := 0, 0

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer limiter.Release()

			mu.Lock()
			running++
			if running > maxObserved {
				maxObserved = running
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxObserved != 1 {
		t.Errorf("max concurrent syncs = %d, want 1", maxObserved)
	}
}

func TestSyncLimiter_TryAcquire(t *testing.T) {
	limiter := NewSyncLimiter(time.Second)

	if !limiter.TryAcquire() {
		t.Fatal("first TryAcquire should succeed")
	}
	if limiter.TryAcquire() {
		t.Error("second TryAcquire should fail")
		limiter.Release()
	}
	limiter.Release()

	if !limiter.TryAcquire() {
		t.Error("TryAcquire after Release should succeed")
	}
	limiter.Release()
}

func TestSyncLimiter_ContextCancellation(t *testing.T) {
	limiter := NewSyncLimiter(5 * time.Second)

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- limiter.Acquire(cancelCtx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Acquire did not return after context cancellation")
	}

	limiter.Release()
}

func TestSyncLimiter_WaitForDrain(t *testing.T) {
	limiter := NewSyncLimiter(time.Second)

	if err := limiter.WaitForDrain(context.Background()); err != nil {
		t.Fatalf("WaitForDrain on idle limiter: %v", err)
	}

	limiter.Acquire(context.Background())

	drainDone := make(chan error, 1)
	go func() {
		drainDone <- limiter.WaitForDrain(context.Background())
	}()

	select {
	case <-drainDone:
		t.Error("WaitForDrain returned while a sync was running")
	case <-time.After(50 * time.Millisecond):
	}

	limiter.Release()

	select {
	case err := <-drainDone:
		if err != nil {
			t.Errorf("WaitForDrain returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("WaitForDrain did not complete after release")
	}
}

func TestSyncLimiter_Status(t *testing.T) {
	limiter := NewSyncLimiter(0)

	if st := limiter.Status(); st.Running || st.StartedAt != nil {
		t.Errorf("initial Status = %+v, want idle", st)
	}

	limiter.TryAcquire()
	st := limiter.Status()
	if !st.Running || st.StartedAt == nil {
		t.Errorf("Status while running = %+v", st)
	}
	limiter.Release()

	if limiter.maxWait != DefaultMaxWaitTime {
		t.Errorf("maxWait = %v, want %v", limiter.maxWait, DefaultMaxWaitTime)
	}
}
