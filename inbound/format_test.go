package inbound

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Run("short body untouched", func(t *testing.T) {
		assert.Equal(t, "hello there", truncateBody("hello there"))
	})

	t.Run("empty body placeholder", func(t *testing.T) {
		assert.Equal(t, emptyBodyText, truncateBody(""))
		assert.Equal(t, emptyBodyText, truncateBody("   \n\t"))
	})

	t.Run("long body capped with marker", func(t *testing.T) {
		long := strings.Repeat("x", 4000)
		got := truncateBody(long)
		assert.Equal(t, maxBodyRunes+utf8.RuneCountInString(truncationMark), utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, truncationMark))
	})

	t.Run("exactly at cap untouched", func(t *testing.T) {
		exact := strings.Repeat("y", maxBodyRunes)
		assert.Equal(t, exact, truncateBody(exact))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		long := strings.Repeat("ж", maxBodyRunes+1)
		got := truncateBody(long)
		assert.Equal(t, maxBodyRunes+1, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, truncationMark))
	})
}

func TestFormatNotification(t *testing.T) {
	ev := Event{
		Sender:  "Jane <jane@remote.example>",
		Subject: "Hi! [urgent]",
		Body:    "line_one * line_two",
	}
	got := formatNotification("box@inbox.example", ev)

	// The address lands inside a code span, the rest is escaped MarkdownV2.
	assert.Contains(t, got, "`box@inbox.example`")
	assert.Contains(t, got, `Jane <jane@remote\.example\>`)
	assert.Contains(t, got, `Hi\! \[urgent\]`)
	assert.Contains(t, got, `line\_one \* line\_two`)
}

func TestFormatNotificationDefaults(t *testing.T) {
	got := formatNotification("box@inbox.example", Event{})
	assert.Contains(t, got, `\(unknown sender\)`)
	assert.Contains(t, got, `\(no subject\)`)
	assert.Contains(t, got, `\(no text\)`)
}
