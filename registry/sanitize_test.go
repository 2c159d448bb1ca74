package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLocalPart(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "alice", "alice"},
		{"uppercase folded", "ALICE", "alice"},
		{"spaces become dots", "John Doe!!", "john.doe"},
		{"inner runs collapse", "a  ..  b", "a.b"},
		{"leading and trailing dots trimmed", "..team..", "team"},
		{"disallowed runes dropped", "héllo wörld", "hllo.wrld"},
		{"keeps dash underscore", "dev_ops-2024", "dev_ops-2024"},
		{"only junk", "!!!", ""},
		{"whitespace only", "  \t ", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeLocalPart(tc.in))
		})
	}
}

func TestSanitizeLocalPartLength(t *testing.T) {
	long := ""
	for i := 0; i < 10; i++ {
		long += "abcdefgh"
	}
	got := SanitizeLocalPart(long)
	assert.LessOrEqual(t, len(got), maxLocalPartLen)
	assert.NotEqual(t, "", got)
}

// Sanitizing an already sanitized name must be a no-op, otherwise named
// mints would drift on re-entry.
func TestSanitizeLocalPartIdempotent(t *testing.T) {
	inputs := []string{"John Doe!!", "a..b..c", "  MiXeD Case  ", "x", "so.me-name_42"}
	for _, in := range inputs {
		once := SanitizeLocalPart(in)
		assert.Equal(t, once, SanitizeLocalPart(once), "input %q", in)
	}
}
