package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"medilog-backend/internal/engine"
	"medilog-backend/internal/runlock"
)

type mockRunner struct {
	runs atomic.Int64

	RunFn func(ctx context.Context) (engine.Summary, error)
}

func (m *mockRunner) Run(ctx context.Context) (engine.Summary, error) {
	m.runs.Add(1)
	if m.RunFn != nil {
		return m.RunFn(ctx)
	}
	return engine.Summary{}, nil
}

type mockLocker struct {
	acquired atomic.Bool
	denials  atomic.Int64
}

func (m *mockLocker) TryAcquire(ctx context.Context) (bool, error) {
	if m.acquired.CompareAndSwap(false, true) {
		return true, nil
	}
	m.denials.Add(1)
	return false, nil
}

func (m *mockLocker) Release(ctx context.Context) error {
	m.acquired.Store(false)
	return nil
}

func TestScheduler_TicksInvokeRunner(t *testing.T) {
	runner := &mockRunner{}
	s := New(runner, runlock.NoopLocker{}, 10*time.Millisecond)

	s.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	s.Stop()

	if got := runner.runs.Load(); got < 2 {
		t.Errorf("runner invoked %d times, want at least 2", got)
	}
}

func TestScheduler_StopPreventsFurtherRuns(t *testing.T) {
	runner := &mockRunner{}
	s := New(runner, runlock.NoopLocker{}, 10*time.Millisecond)

	s.Start(context.Background())
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	after := runner.runs.Load()
	time.Sleep(30 * time.Millisecond)
	if got := runner.runs.Load(); got != after {
		t.Errorf("runner invoked after Stop: %d -> %d", after, got)
	}
}

func TestScheduler_HeldLockSkipsTick(t *testing.T) {
	locker := &mockLocker{}
	locker.acquired.Store(true) // someone else holds the lock

	runner := &mockRunner{}
	s := New(runner, locker, 10*time.Millisecond)

	s.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	s.Stop()

	if got := runner.runs.Load(); got != 0 {
		t.Errorf("runner invoked %d times while lock held, want 0", got)
	}
	if locker.denials.Load() == 0 {
		t.Error("expected at least one denied acquire")
	}
}
