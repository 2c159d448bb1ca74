package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a.b", `a\.b`},
		{"*bold* _it_", `\*bold\* \_it\_`},
		{"x > y, a + b = c", `x \> y, a \+ b \= c`},
		{"[link](url)", `\[link\]\(url\)`},
		{`\`, `\\`},
		{`\.`, `\\\.`},
		{`\*bold\*`, `\\\*bold\\\*`},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EscapeMarkdownV2(tc.in), "input %q", tc.in)
	}
}

// Every special in the output must sit behind an odd run of backslashes,
// otherwise Telegram treats it as live markup and rejects the message.
func TestEscapeMarkdownV2NeverLeavesActiveSpecials(t *testing.T) {
	inputs := []string{
		`\.`, `\\.`, `pre \* post`, `a\_b`, "tick\\`tock", `trailing\`,
	}
	for _, in := range inputs {
		out := EscapeMarkdownV2(in)
		runes := []rune(out)
		for i, r := range runes {
			if !strings.ContainsRune(mdV2Specials, r) || r == '\\' {
				continue
			}
			backslashes := 0
			for j := i - 1; j >= 0 && runes[j] == '\\'; j-- {
				backslashes++
			}
			assert.True(t, backslashes%2 == 1,
				"input %q: special %q at %d has even backslash run (%d)", in, r, i, backslashes)
		}
	}
}

func TestEscapeCode(t *testing.T) {
	assert.Equal(t, "a.b@c.d", EscapeCode("a.b@c.d"), "code spans keep dots")
	assert.Equal(t, "ba\\`ck", EscapeCode("ba`ck"))
	assert.Equal(t, `sla\\sh`, EscapeCode(`sla\sh`))
}

func TestDerefString(t *testing.T) {
	s := "value"
	assert.Equal(t, "value", DerefString(&s, "fallback"))
	assert.Equal(t, "fallback", DerefString(nil, "fallback"))
}
