package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"rss-watcher/internal/watcher"
)

const (
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	cycleTimeout          = 15 * time.Minute
)

type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	watcher  *watcher.Watcher
	interval time.Duration
	log      *slog.Logger
}

func New(
	ctx context.Context,
	w *watcher.Watcher,
	interval time.Duration,
	log *slog.Logger,
) *Scheduler {
	// DelayIfStillRunning keeps cycles strictly sequential: a tick that
	// arrives while the previous cycle is still going waits for it.
	c := cron.New(
		cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)),
		cron.WithChain(cron.DelayIfStillRunning(cronLogger{log: log})))

	return &Scheduler{
		ctx:      ctx,
		cron:     c,
		watcher:  w,
		interval: interval,
		log:      log,
	}
}

func (s *Scheduler) Spec() string {
	return fmt.Sprintf("@every %s", s.interval)
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.Spec(), s.runCycle); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(s.ctx, cycleTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	s.watcher.RunCycle(ctx)
}

type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Info(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
