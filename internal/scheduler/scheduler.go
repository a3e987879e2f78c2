package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper is the unit of work the scheduler drives on a fixed interval.
// Satisfied by services.NotificationService.
type Sweeper interface {
	CheckAndSendReminders(ctx context.Context) error
}

// Scheduler runs a reminder sweep on a fixed interval. Instances are
// independent; construct one per server and stop it on shutdown.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// sweepMu makes sweeps single-flight: a tick that lands while the
	// previous sweep is still running is skipped, not queued.
	sweepMu sync.Mutex
}

// New creates a Scheduler that runs the sweeper every interval.
func New(sweeper Sweeper, interval time.Duration) *Scheduler {
	return &Scheduler{sweeper: sweeper, interval: interval}
}

// Start launches the sweep loop. The first sweep runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		log.Info().Dur("interval", s.interval).Msg("reminder scheduler started")
		s.RunOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder scheduler stopping")
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for any in-flight sweep to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunOnce runs a single sweep if none is in flight. A sweep panic is
// contained here so the loop keeps ticking.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.sweepMu.TryLock() {
		log.Warn().Msg("previous reminder sweep still running, skipping tick")
		return
	}
	defer s.sweepMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("reminder sweep panicked")
		}
	}()

	if err := s.sweeper.CheckAndSendReminders(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Msg("reminder sweep failed")
	}
}
