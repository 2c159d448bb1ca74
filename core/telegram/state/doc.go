// Package state provides a lightweight FSM/session manager for Telegram bots.
// It is intentionally domain-agnostic; bots register a handler per state and
// route in-progress conversations through ManagerHandler.
package state
