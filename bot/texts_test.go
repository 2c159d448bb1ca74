package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextsEscapeDynamicValues(t *testing.T) {
	// Addresses contain dots, which are MarkdownV2 specials; they must end
	// up inside code spans, never escaped into the prose.
	got := textMinted("john.doe@inbox.example")
	assert.Contains(t, got, "`john.doe@inbox.example`")

	got = textAddressList([]string{"a.b@inbox.example", "c_d@inbox.example"})
	assert.Contains(t, got, "`a.b@inbox.example`")
	assert.Contains(t, got, "`c_d@inbox.example`")

	// Static prose must come out fully escaped.
	assert.Contains(t, textAskName(), `john\.doe`)
	assert.Contains(t, textAskName(), `\(letters`)
}
