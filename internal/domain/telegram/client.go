package telegram

import "gopkg.in/telebot.v3"

// Client sends plain text to a Telegram chat. Status updates and mirrored
// error logs both go through it to the single operator chat.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
