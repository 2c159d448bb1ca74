package inbound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAddresses(t *testing.T) {
	cases := []struct {
		name   string
		fields []string
		want   []string
	}{
		{
			"display name form",
			[]string{"Jane <jane.doe@inbox.example>"},
			[]string{"jane.doe@inbox.example"},
		},
		{
			"mixed case folded",
			[]string{"Jane.Doe@Inbox.Example"},
			[]string{"jane.doe@inbox.example"},
		},
		{
			"multiple fields merged and deduplicated",
			[]string{
				"a@inbox.example",
				"Jane <a@inbox.example>, b@inbox.example",
			},
			[]string{"a@inbox.example", "b@inbox.example"},
		},
		{
			"order is first seen",
			[]string{"z@inbox.example, a@inbox.example", "z@inbox.example"},
			[]string{"z@inbox.example", "a@inbox.example"},
		},
		{
			"plus and percent locals",
			[]string{"user+tag@inbox.example, pct%40@inbox.example"},
			[]string{"user+tag@inbox.example", "pct%40@inbox.example"},
		},
		{"no addresses", []string{"just some text", ""}, nil},
		{"bare tld rejected", []string{"root@localhost"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractAddresses(tc.fields...))
		})
	}
}
