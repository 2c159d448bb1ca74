package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

// senderContext stubs just the Sender accessor; the middlewares under test
// touch nothing else on tele.Context.
type senderContext struct {
	tele.Context
	user *tele.User
}

func (c senderContext) Sender() *tele.User { return c.user }

func runAdminOnly(t *testing.T, opts AdminOptions, userID int64) (handlerRan, rejectRan bool) {
	t.Helper()
	opts.OnReject = func(tele.Context) error {
		rejectRan = true
		return nil
	}
	next := func(tele.Context) error {
		handlerRan = true
		return nil
	}
	c := senderContext{user: &tele.User{ID: userID}}
	assert.NoError(t, AdminOnlyMiddleware(opts)(next)(c))
	return handlerRan, rejectRan
}

func TestAdminOnlyMiddleware(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		ran, rejected := runAdminOnly(t, AdminOptions{AdminID: 42}, 42)
		assert.True(t, ran)
		assert.False(t, rejected)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		ran, rejected := runAdminOnly(t, AdminOptions{AdminID: 42}, 7)
		assert.False(t, ran)
		assert.True(t, rejected)
	})

	// No configured admin means admin-only routes are closed to everyone,
	// including user id 0.
	t.Run("no admin configured rejects all", func(t *testing.T) {
		for _, id := range []int64{0, 7, 42} {
			ran, rejected := runAdminOnly(t, AdminOptions{AdminID: 0}, id)
			assert.False(t, ran, "user %d", id)
			assert.True(t, rejected, "user %d", id)
		}
	})
}

func TestBlockedMiddleware(t *testing.T) {
	denied := map[int64]bool{7: true}
	mw := BlockedMiddleware(func(userID int64) bool { return denied[userID] })

	var ran bool
	next := func(tele.Context) error {
		ran = true
		return nil
	}

	assert.NoError(t, mw(next)(senderContext{user: &tele.User{ID: 7}}))
	assert.False(t, ran, "denied user must be dropped silently")

	assert.NoError(t, mw(next)(senderContext{user: &tele.User{ID: 8}}))
	assert.True(t, ran)
}
