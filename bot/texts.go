package bot

import (
	"fmt"
	"strings"

	"dropmail/core/telegram/format"
)

// All user-facing texts are MarkdownV2; dynamic values are escaped or put
// in code spans so they always render.

func textGreeting(address string) string {
	var b strings.Builder
	b.WriteString(format.EscapeMarkdownV2("Hi! I hand out disposable email addresses. Anything sent to them lands right here in this chat."))
	if address != "" {
		b.WriteString("\n\n")
		b.WriteString(format.EscapeMarkdownV2("Your current address:"))
		b.WriteString("\n`")
		b.WriteString(format.EscapeCode(address))
		b.WriteString("`")
	}
	return b.String()
}

func textMinted(address string) string {
	return format.EscapeMarkdownV2("Your new address is ready:") +
		"\n`" + format.EscapeCode(address) + "`"
}

func textCopy(address string) string {
	return "`" + format.EscapeCode(address) + "`\n" +
		format.EscapeMarkdownV2("Tap the address to copy it.")
}

func textNoAddressYet() string {
	return format.EscapeMarkdownV2("You have no address yet. Pick a name or roll a random one.")
}

func textAddressList(addresses []string) string {
	var b strings.Builder
	b.WriteString(format.EscapeMarkdownV2("Your addresses:"))
	for _, a := range addresses {
		b.WriteString("\n• `")
		b.WriteString(format.EscapeCode(a))
		b.WriteString("`")
	}
	return b.String()
}

func textAskName() string {
	return format.EscapeMarkdownV2("Send me the name for your address (letters, digits, dots, dashes). Example: john.doe")
}

func textInvalidName() string {
	return format.EscapeMarkdownV2("That doesn't work as an address name. Try letters, digits and dots, e.g. john.doe")
}

func textNameTaken() string {
	return format.EscapeMarkdownV2("That name is already taken. Try another one.")
}

func textMintFailed() string {
	return format.EscapeMarkdownV2("Couldn't create an address right now. Please try again.")
}

func textAskBlockTarget() string {
	return format.EscapeMarkdownV2("Send the numeric user ID to block.")
}

func textAskUnblockTarget() string {
	return format.EscapeMarkdownV2("Send the numeric user ID to unblock.")
}

func textBadTargetID() string {
	return format.EscapeMarkdownV2("I need a numeric user ID (at least 5 digits). Try again.")
}

func textBlocked(id int64) string {
	return format.EscapeMarkdownV2(fmt.Sprintf("User %d is now blocked.", id))
}

func textUnblocked(id int64) string {
	return format.EscapeMarkdownV2(fmt.Sprintf("User %d is unblocked.", id))
}

func textWasNotBlocked(id int64) string {
	return format.EscapeMarkdownV2(fmt.Sprintf("User %d was not blocked.", id))
}

func textAdminActionFailed() string {
	return format.EscapeMarkdownV2("Couldn't apply that. Please try again.")
}

func textUnknown() string {
	return format.EscapeMarkdownV2("I didn't get that. Use the buttons below or /start.")
}
