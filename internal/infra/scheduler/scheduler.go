package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Waiter blocks between poll cycles until the next tick of a cron schedule.
// Unlike a cron.Cron engine it never runs jobs on its own goroutines, so the
// poll loop stays strictly sequential.
type Waiter struct {
	schedule cron.Schedule
	spec     string
	logger   *logrus.Entry
	now      func() time.Time
	after    func(d time.Duration) <-chan time.Time
}

// NewWaiter parses spec with the standard cron parser, which also accepts
// descriptors such as "@every 600s" or "@hourly".
func NewWaiter(spec string, logger *logrus.Entry) (*Waiter, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("could not parse poll schedule %q: %w", spec, err)
	}
	return &Waiter{
		schedule: schedule,
		spec:     spec,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}, nil
}

// Next returns the time of the next tick after now.
func (w *Waiter) Next() time.Time {
	return w.schedule.Next(w.now())
}

// Wait blocks until the next tick or until ctx is done.
func (w *Waiter) Wait(ctx context.Context) error {
	next := w.Next()
	delay := next.Sub(w.now())
	if delay < 0 {
		delay = 0
	}
	w.logger.WithFields(logrus.Fields{
		"schedule": w.spec,
		"next_run": next.Format(time.RFC3339),
	}).Debug("Sleeping until next poll cycle")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.after(delay):
		return nil
	}
}
