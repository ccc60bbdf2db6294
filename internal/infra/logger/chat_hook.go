package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// SendFunc delivers one text message to the operator chat.
type SendFunc func(text string) error

// ChatHook mirrors error-level records to the operator chat.
// A record with the same level, message and logger as the previously mirrored
// one is skipped, even if its error detail differs.
type ChatHook struct {
	send    SendFunc
	limiter *rate.Limiter

	mu        sync.Mutex
	lastError string
}

// NewChatHook builds a hook that allows at most perMinute mirrored messages
// per minute. perMinute <= 0 disables throttling.
func NewChatHook(send SendFunc, perMinute int) *ChatHook {
	h := &ChatHook{send: send}
	if perMinute > 0 {
		h.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return h
}

func (h *ChatHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire must not log through the logger it is attached to.
func (h *ChatHook) Fire(entry *logrus.Entry) error {
	key := dedupKey(entry)
	h.mu.Lock()
	if key == h.lastError {
		h.mu.Unlock()
		return nil
	}
	h.lastError = key
	h.mu.Unlock()

	if h.limiter != nil && !h.limiter.Allow() {
		return nil
	}
	if err := h.send(entry.Time.Format("2006-01-02 15:04:05") + " : " + recordText(entry)); err != nil {
		return fmt.Errorf("mirror log record to chat: %w", err)
	}
	return nil
}

// dedupKey leaves out the error detail: transport errors carry ephemeral
// ports and would never compare equal.
func dedupKey(entry *logrus.Entry) string {
	name, _ := entry.Data[FieldLogger].(string)
	return entry.Level.String() + "\x00" + entry.Message + "\x00" + name
}

// recordText renders a record as "<LEVEL> - <message>[: <error>] - <logger>".
func recordText(entry *logrus.Entry) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString(" - ")
	b.WriteString(entry.Message)
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	name, _ := entry.Data[FieldLogger].(string)
	if name == "" {
		name = "root"
	}
	b.WriteString(" - ")
	b.WriteString(name)
	return b.String()
}
