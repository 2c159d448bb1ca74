// Package inbound receives mail from the provider webhook and relays each
// message to the Telegram owner of its recipient address.
package inbound

// Event is one inbound mail message, already reduced to the fields the bot
// relays. Recipients are lowercase, deduplicated, in first-seen order.
type Event struct {
	Recipients []string
	Sender     string
	Subject    string
	Body       string
}
