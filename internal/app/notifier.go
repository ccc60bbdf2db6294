// internal/app/notifier.go
package app

import (
	"fmt"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram" // Import from domain

	"github.com/sirupsen/logrus"
)

// Notifier delivers plain text messages to the single configured chat.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	logger         *logrus.Entry

	lastSent string // Last successfully delivered text, process-local
}

func NewNotifier(tc domainTelegram.Client, chatID int64, logger *logrus.Entry) *Notifier {
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
}

// Send delivers text unconditionally. A delivery failure is logged and
// returned wrapped in homework.ErrSendFailed.
func (n *Notifier) Send(text string) error {
	if err := n.telegramClient.SendMessage(n.chatID, text, nil); err != nil {
		n.logger.WithError(err).WithField("chat_id", n.chatID).Error("Bot failed to send message")
		return fmt.Errorf("%w: %v", homework.ErrSendFailed, err)
	}
	n.logger.WithField("chat_id", n.chatID).Info("Message sent")
	return nil
}

// Notify delivers text unless it equals the last delivered message.
// sent reports whether a message actually went out.
func (n *Notifier) Notify(text string) (sent bool, err error) {
	if text == n.lastSent {
		return false, nil
	}
	if err := n.Send(text); err != nil {
		return false, err
	}
	n.lastSent = text
	return true, nil
}

// LastSent returns the last delivered message, or "" if none.
func (n *Notifier) LastSent() string {
	return n.lastSent
}
