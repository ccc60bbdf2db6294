// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StartMessage is sent once when the bot starts polling.
const StartMessage = "Бот запустился"

const journalTimeout = 5 * time.Second

// HomeworkAPI fetches homework statuses updated since fromDate (Unix seconds).
type HomeworkAPI interface {
	GetHomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}

// Waiter blocks between poll cycles.
type Waiter interface {
	Wait(ctx context.Context) error
}

// CycleOutcome describes how a single poll cycle ended.
type CycleOutcome string

const (
	OutcomeNotified        CycleOutcome = "NOTIFIED"
	OutcomeDuplicate       CycleOutcome = "DUPLICATE"
	OutcomeEmpty           CycleOutcome = "EMPTY"
	OutcomeRequestFailed   CycleOutcome = "REQUEST_FAILED"
	OutcomeInvalidResponse CycleOutcome = "INVALID_RESPONSE"
	OutcomeUnknownStatus   CycleOutcome = "UNKNOWN_STATUS"
	OutcomeSendFailed      CycleOutcome = "SEND_FAILED"
)

// Poller runs the request -> validate -> format -> notify cycle on a fixed schedule.
// It is not safe for concurrent use; a single goroutine owns it.
type Poller struct {
	api      HomeworkAPI
	notifier *Notifier
	waiter   Waiter
	journal  homework.Journal // Optional
	logger   *logrus.Entry
	now      func() time.Time

	cursor int64
}

func NewPoller(
	api HomeworkAPI,
	notifier *Notifier,
	waiter Waiter,
	journal homework.Journal, // nil disables the journal
	logger *logrus.Entry,
) *Poller {
	return &Poller{
		api:      api,
		notifier: notifier,
		waiter:   waiter,
		journal:  journal,
		logger:   logger,
		now:      time.Now,
	}
}

// Cursor returns the lower bound used for the next request.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// Start announces the bot in chat and resets the cursor to now.
// A failed announcement is logged by the notifier and otherwise ignored.
func (p *Poller) Start() {
	if err := p.notifier.Send(StartMessage); err != nil {
		p.logger.WithError(err).Warn("Start notification was not delivered, polling anyway")
	}
	p.cursor = p.now().Unix()
	p.logger.WithField("from_date", p.cursor).Info("Polling started")
}

// Run starts the poller and repeats cycles until ctx is cancelled.
// The only error it returns is the context error.
func (p *Poller) Run(ctx context.Context) error {
	p.Start()
	for {
		p.RunCycle(ctx)
		if err := p.waiter.Wait(ctx); err != nil {
			p.logger.WithField("reason", err.Error()).Info("Polling stopped")
			return err
		}
	}
}

// RunCycle performs one poll cycle. Every failure is logged and reported
// through the outcome; none of them stops the loop.
func (p *Poller) RunCycle(ctx context.Context) CycleOutcome {
	logCtx := p.logger.WithFields(logrus.Fields{
		"cycle_id":  uuid.NewString(),
		"from_date": p.cursor,
	})

	response, err := p.api.GetHomeworkStatuses(ctx, p.cursor)
	if err != nil {
		if errors.Is(err, homework.ErrNoData) {
			logCtx.Info("No data from homework API")
		} else {
			logCtx.WithError(err).Info("Request to homework API failed, waiting for next cycle")
		}
		return OutcomeRequestFailed
	}

	homeworks, err := homework.ValidateResponse(response)
	if err != nil {
		logCtx.WithError(err).Error("Program failure: invalid homework API response")
		return OutcomeInvalidResponse
	}
	if date, ok := homework.CurrentDate(response); ok {
		logCtx = logCtx.WithField("current_date", date)
	}

	if len(homeworks) == 0 {
		logCtx.Info("No homeworks changed status")
		p.advance()
		return OutcomeEmpty
	}

	// One update per cycle: only the most recent homework is reported.
	message, err := homework.ParseStatus(homeworks[0])
	if err != nil {
		logCtx.WithError(err).Error("Program failure: cannot parse homework status")
		return OutcomeUnknownStatus
	}

	sent, err := p.notifier.Notify(message)
	p.advance()
	if err != nil {
		return OutcomeSendFailed
	}
	if !sent {
		logCtx.Debug("Homework status unchanged, notification skipped")
		return OutcomeDuplicate
	}
	p.record(ctx, logCtx, homeworks[0], message)
	return OutcomeNotified
}

func (p *Poller) advance() {
	p.cursor = p.now().Unix()
}

func (p *Poller) record(ctx context.Context, logCtx *logrus.Entry, record any, message string) {
	if p.journal == nil {
		return
	}
	hw, err := homework.FromRecord(record)
	if err != nil {
		logCtx.WithError(err).Warn("Could not journal notification")
		return
	}

	jctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()
	n := &homework.Notification{
		HomeworkName: hw.Name,
		Status:       hw.Status,
		Message:      message,
		SentAt:       p.now(),
	}
	if err := p.journal.Record(jctx, n); err != nil {
		logCtx.WithError(err).Warn("Could not journal notification")
		return
	}
	logCtx.WithField("journal_id", n.ID).Debug("Notification journaled")
}
