package inbound

import (
	"regexp"
	"strings"
)

// addressRe is deliberately loose: provider webhooks hand us anything from
// a bare address to "Jane Doe <jane.doe@example.com>, ops@example.com".
var addressRe = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

// ExtractAddresses pulls every email address out of the given header
// fields, lowercased and deduplicated with first-seen order preserved.
func ExtractAddresses(fields ...string) []string {
	joined := strings.Join(fields, " , ")

	var out []string
	seen := make(map[string]struct{})
	for _, m := range addressRe.FindAllString(joined, -1) {
		addr := strings.ToLower(m)
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}
