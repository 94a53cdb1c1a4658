package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"medilog-backend/internal/engine"
	"medilog-backend/internal/runlock"
)

// Runner is the unit of work the scheduler fires on every tick.
// Satisfied by engine.Coordinator.
type Runner interface {
	Run(ctx context.Context) (engine.Summary, error)
}

// Scheduler triggers the alert engine on a fixed interval. It replaces an
// external cron hitting the trigger endpoint; both paths share the same run
// lock, so enabling the scheduler alongside external cron stays safe.
type Scheduler struct {
	runner   Runner
	locker   runlock.Locker
	interval time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func New(runner Runner, locker runlock.Locker, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		locker:   locker,
		interval: interval,
	}
}

// Start launches the ticker goroutine. Call Stop() to shut down gracefully.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	log.Printf("[Scheduler] Starting, interval=%v", s.interval)

	s.wg.Add(1)
	go s.loop()
}

// Stop cancels the ticker loop and blocks until the in-flight run, if any,
// has finished.
func (s *Scheduler) Stop() {
	log.Printf("[Scheduler] Stopping...")
	s.cancel()
	s.wg.Wait()
	log.Printf("[Scheduler] Stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs one engine pass under the run lock. A held lock means another
// trigger is mid-run; this tick is skipped, not queued.
func (s *Scheduler) tick() {
	acquired, err := s.locker.TryAcquire(s.ctx)
	if err != nil {
		log.Printf("[Scheduler] Run lock error, skipping tick: %v", err)
		return
	}
	if !acquired {
		log.Printf("[Scheduler] Run already in progress, skipping tick")
		return
	}
	defer func() {
		if err := s.locker.Release(s.ctx); err != nil {
			log.Printf("[Scheduler] Failed to release run lock: %v", err)
		}
	}()

	summary, err := s.runner.Run(s.ctx)
	if err != nil {
		log.Printf("[Scheduler] Run failed: %v", err)
		return
	}
	log.Printf("[Scheduler] Run complete: alerts=%d sent=%d failed=%d",
		summary.AlertsGenerated, summary.Sent, summary.Failed)
}
