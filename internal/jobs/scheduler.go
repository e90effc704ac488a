package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper removes expired sessions and reports how many went away.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SweepRecorder receives the outcome of each successful sweep.
type SweepRecorder interface {
	RecordSessionsSwept(n int)
}

type Scheduler struct {
	cron     *cron.Cron
	schedule string
	sweeper  Sweeper
	recorder SweepRecorder
	log      zerolog.Logger
}

// NewScheduler builds a scheduler for sweeper. A nil sweeper yields a
// scheduler whose Start is a no-op, which is the case for stores that expire
// entries on their own.
func NewScheduler(schedule string, sweeper Sweeper, recorder SweepRecorder, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		schedule: schedule,
		sweeper:  sweeper,
		recorder: recorder,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.sweeper == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.sweepSessions); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("session sweeper started")
	return nil
}

// Stop halts the schedule and waits up to five seconds for a running sweep.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("session sweep still running at shutdown")
	}
}

func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("expired sessions swept")
	}
	if s.recorder != nil {
		s.recorder.RecordSessionsSwept(removed)
	}
}
