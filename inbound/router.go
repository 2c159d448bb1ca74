package inbound

import (
	"context"
	"log/slog"

	"dropmail/access"
	"dropmail/core/logger"
	"dropmail/registry"
)

// Notifier delivers one formatted message to a Telegram user. Delivery is
// synchronous so the router can report how many owners actually got the
// mail.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, userID int64, text string) error

func (f NotifierFunc) Notify(ctx context.Context, userID int64, text string) error {
	return f(ctx, userID, text)
}

// Router fans one inbound mail event out to the owners of its recipient
// addresses.
type Router struct {
	reg      *registry.Registry
	gate     *access.Gate
	notifier Notifier
}

func NewRouter(reg *registry.Registry, gate *access.Gate, notifier Notifier) *Router {
	return &Router{reg: reg, gate: gate, notifier: notifier}
}

// Route resolves each recipient to its owner and notifies them. Unknown
// addresses and blocked owners are skipped silently; a failed delivery to
// one owner is logged and never stops the rest. Returns the number of
// successful deliveries.
func (rt *Router) Route(ctx context.Context, ev Event) int {
	delivered := 0
	for _, address := range ev.Recipients {
		owner, ok := rt.reg.OwnerOf(address)
		if !ok {
			logger.MAIL.Debug("recipient unknown, skipping",
				slog.String("event", "mail.skip.unknown"),
				slog.String("address", address),
			)
			continue
		}
		if !rt.gate.Allowed(owner) {
			logger.MAIL.Info("owner blocked, suppressing delivery",
				slog.String("event", "mail.skip.blocked"),
				slog.String("address", address),
				slog.Int64("user_id", owner),
			)
			continue
		}

		text := formatNotification(address, ev)
		if err := rt.notifier.Notify(ctx, owner, text); err != nil {
			logger.MAIL.Error("delivery failed",
				slog.String("event", "mail.deliver.fail"),
				slog.String("address", address),
				slog.Int64("user_id", owner),
				slog.String("err", err.Error()),
			)
			continue
		}
		delivered++
		logger.MAIL.Info("mail relayed",
			slog.String("event", "mail.deliver"),
			slog.String("address", address),
			slog.Int64("user_id", owner),
		)
	}
	return delivered
}
