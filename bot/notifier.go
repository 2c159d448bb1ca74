package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"
)

// TeleNotifier delivers mail notifications through the running bot.
// Sends are synchronous: the mail webhook needs to know whether delivery
// actually happened before it answers the provider.
type TeleNotifier struct {
	bot *tele.Bot
}

func NewTeleNotifier(b *tele.Bot) *TeleNotifier {
	return &TeleNotifier{bot: b}
}

// Notify sends one MarkdownV2 message to the user's private chat.
func (n *TeleNotifier) Notify(ctx context.Context, userID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := n.bot.Send(tele.ChatID(userID), text, &tele.SendOptions{
		ParseMode: tele.ModeMarkdownV2,
	})
	return err
}
