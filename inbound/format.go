package inbound

import (
	"strings"

	"dropmail/core/telegram/format"
)

const (
	// maxBodyRunes caps the relayed body so the notification stays well
	// under Telegram's 4096-character message limit after escaping and
	// headers.
	maxBodyRunes = 3500

	truncationMark = "…"
	emptyBodyText  = "(no text)"
)

// truncateBody trims the body to maxBodyRunes, appending a marker when
// anything was cut. Counting is by rune so multi-byte text is never split.
func truncateBody(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return emptyBodyText
	}
	runes := []rune(body)
	if len(runes) <= maxBodyRunes {
		return body
	}
	return string(runes[:maxBodyRunes]) + truncationMark
}

// formatNotification renders one mail event as a MarkdownV2 message for the
// owner of the given address. Every provider-controlled field is escaped so
// hostile content cannot break out of the markup.
func formatNotification(address string, ev Event) string {
	sender := ev.Sender
	if strings.TrimSpace(sender) == "" {
		sender = "(unknown sender)"
	}
	subject := ev.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "(no subject)"
	}

	var b strings.Builder
	b.WriteString("📬 *")
	b.WriteString(format.EscapeMarkdownV2("New mail for"))
	b.WriteString("* `")
	b.WriteString(format.EscapeCode(address))
	b.WriteString("`\n")
	b.WriteString("*From:* ")
	b.WriteString(format.EscapeMarkdownV2(sender))
	b.WriteString("\n*Subject:* ")
	b.WriteString(format.EscapeMarkdownV2(subject))
	b.WriteString("\n\n")
	b.WriteString(format.EscapeMarkdownV2(truncateBody(ev.Body)))
	return b.String()
}
