package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestWaiter(t *testing.T, spec string, now time.Time) (*Waiter, *[]time.Duration) {
	t.Helper()
	l, _ := logtest.NewNullLogger()
	w, err := NewWaiter(spec, l.WithField("logger", "scheduler"))
	if err != nil {
		t.Fatalf("NewWaiter(%q) error: %v", spec, err)
	}
	var delays []time.Duration
	w.now = func() time.Time { return now }
	w.after = func(d time.Duration) <-chan time.Time {
		delays = append(delays, d)
		ch := make(chan time.Time, 1)
		ch <- now.Add(d)
		return ch
	}
	return w, &delays
}

func TestWaiterFixedInterval(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	w, delays := newTestWaiter(t, "@every 600s", now)

	if err := w.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if len(*delays) != 1 || (*delays)[0] != 600*time.Second {
		t.Fatalf("delays = %v, want [10m0s]", *delays)
	}
}

func TestWaiterCronExpression(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 10, 3, 0, 0, time.UTC)
	w, delays := newTestWaiter(t, "*/10 * * * *", now)

	if got, want := w.Next(), time.Date(2024, 5, 1, 10, 10, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("Next = %s, want %s", got, want)
	}
	if err := w.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if (*delays)[0] != 7*time.Minute {
		t.Fatalf("delay = %s, want 7m0s", (*delays)[0])
	}
}

func TestWaiterStopsOnCancel(t *testing.T) {
	t.Parallel()
	l, _ := logtest.NewNullLogger()
	w, err := NewWaiter("@every 1h", l.WithField("logger", "scheduler"))
	if err != nil {
		t.Fatalf("NewWaiter error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait error = %v, want context.Canceled", err)
	}
}

func TestNewWaiterInvalidSpec(t *testing.T) {
	t.Parallel()
	l, _ := logtest.NewNullLogger()
	if _, err := NewWaiter("every ten minutes", l.WithField("logger", "scheduler")); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
