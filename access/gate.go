// Package access decides who may talk to the bot and who administers it.
package access

import (
	"context"
	"regexp"
	"strconv"

	"dropmail/registry"
)

// targetIDRe matches the first plausible Telegram user ID in free-form
// admin input ("block 123456789", a forwarded "id: 123456789", etc.).
var targetIDRe = regexp.MustCompile(`\d{5,}`)

// Gate combines the single configured admin with the registry block-list.
type Gate struct {
	adminID int64
	reg     *registry.Registry
}

// NewGate builds a Gate. adminID of zero means no admin is configured and
// every admin-only action is denied.
func NewGate(adminID int64, reg *registry.Registry) *Gate {
	return &Gate{adminID: adminID, reg: reg}
}

// IsAdmin reports whether the user is the configured administrator.
func (g *Gate) IsAdmin(userID int64) bool {
	return g.adminID != 0 && userID == g.adminID
}

// AdminID returns the configured administrator, zero if none.
func (g *Gate) AdminID() int64 {
	return g.adminID
}

// Allowed reports whether the user may interact with the bot. The admin is
// never locked out, even if their own ID lands on the block-list.
func (g *Gate) Allowed(userID int64) bool {
	if g.IsAdmin(userID) {
		return true
	}
	return !g.reg.IsBlocked(userID)
}

// Block adds a user to the block-list on behalf of the admin.
func (g *Gate) Block(ctx context.Context, actor, target int64) error {
	if !g.IsAdmin(actor) {
		return ErrUnauthorized
	}
	return g.reg.Block(ctx, target)
}

// Unblock removes a user from the block-list. The boolean reports whether
// the target was actually blocked.
func (g *Gate) Unblock(ctx context.Context, actor, target int64) (bool, error) {
	if !g.IsAdmin(actor) {
		return false, ErrUnauthorized
	}
	return g.reg.Unblock(ctx, target)
}

// ParseTargetID extracts a user ID from admin-supplied text. It accepts the
// first run of five or more digits so IDs pasted inside larger messages
// still resolve.
func ParseTargetID(text string) (int64, bool) {
	m := targetIDRe.FindString(text)
	if m == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
