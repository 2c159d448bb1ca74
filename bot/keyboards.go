package bot

import (
	"dropmail/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Callback keys for the main menu.
const (
	cbChooseName  = "choose_name"
	cbRandomEmail = "random_email"
	cbCopyEmail   = "copy_email"
	cbMyEmails    = "my_emails"
	cbBack        = "back"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✍️ Choose a name", Unique: cbChooseName},
			{Text: "🎲 Random address", Unique: cbRandomEmail},
		},
		[]keyboard.InlineBtn{
			{Text: "📋 Copy address", Unique: cbCopyEmail},
			{Text: "📬 My addresses", Unique: cbMyEmails},
		},
	)
}

func backMenu() *tele.ReplyMarkup {
	return keyboard.SingleButtonMarkup("⬅️ Back", cbBack)
}
