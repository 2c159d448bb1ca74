package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropmail/registry"
)

func newGate(t *testing.T, adminID int64) *Gate {
	t.Helper()
	reg, err := registry.New(context.Background(), "inbox.example", registry.NewMemoryStore())
	require.NoError(t, err)
	return NewGate(adminID, reg)
}

func TestIsAdmin(t *testing.T) {
	g := newGate(t, 42)
	assert.True(t, g.IsAdmin(42))
	assert.False(t, g.IsAdmin(43))

	// No configured admin means nobody is one.
	none := newGate(t, 0)
	assert.False(t, none.IsAdmin(0))
}

func TestBlockRequiresAdmin(t *testing.T) {
	g := newGate(t, 42)
	ctx := context.Background()

	assert.ErrorIs(t, g.Block(ctx, 7, 100), ErrUnauthorized)
	assert.True(t, g.Allowed(100))

	require.NoError(t, g.Block(ctx, 42, 100))
	assert.False(t, g.Allowed(100))

	_, err := g.Unblock(ctx, 7, 100)
	assert.ErrorIs(t, err, ErrUnauthorized)

	changed, err := g.Unblock(ctx, 42, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, g.Allowed(100))
}

func TestAdminIsNeverLockedOut(t *testing.T) {
	g := newGate(t, 42)
	require.NoError(t, g.Block(context.Background(), 42, 42))
	assert.True(t, g.Allowed(42))
}

func TestParseTargetID(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"123456789", 123456789, true},
		{"block 987654321 please", 987654321, true},
		{"id: 55555, name: bob", 55555, true},
		{"1234", 0, false},
		{"no digits here", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseTargetID(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
