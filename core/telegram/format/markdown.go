package format

import "regexp"

// The backslash is part of the set: leaving it unescaped would let input
// like `\.` neutralize the escape of the following special and break the
// whole message.
const mdV2Specials = `\_*[]()~` + "`" + `>#+-=|{}.!`

var (
	mdV2Re   = regexp.MustCompile(`([` + regexp.QuoteMeta(mdV2Specials) + `])`)
	mdCodeRe = regexp.MustCompile("([`\\\\])")
)

// EscapeMarkdownV2 escapes every character that is syntactically significant
// to Telegram MarkdownV2 so arbitrary text can be embedded in a message
// without breaking the formatting.
func EscapeMarkdownV2(text string) string {
	return mdV2Re.ReplaceAllString(text, `\$1`)
}

// EscapeCode escapes characters significant inside a MarkdownV2 inline code
// span (backtick and backslash only).
func EscapeCode(text string) string {
	return mdCodeRe.ReplaceAllString(text, `\$1`)
}

// DerefString safely dereferences a *string and returns a default value if nil.
func DerefString(s *string, defaultVal string) string {
	if s != nil {
		return *s
	}
	return defaultVal
}
