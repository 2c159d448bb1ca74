package inbound

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropmail/access"
	"dropmail/registry"
)

type recordedDelivery struct {
	userID int64
	text   string
}

type fakeNotifier struct {
	failFor    map[int64]error
	deliveries []recordedDelivery
}

func (n *fakeNotifier) Notify(_ context.Context, userID int64, text string) error {
	if err := n.failFor[userID]; err != nil {
		return err
	}
	n.deliveries = append(n.deliveries, recordedDelivery{userID: userID, text: text})
	return nil
}

func routerFixture(t *testing.T) (*registry.Registry, *access.Gate, *fakeNotifier, *Router) {
	t.Helper()
	reg, err := registry.New(context.Background(), "inbox.example", registry.NewMemoryStore())
	require.NoError(t, err)
	gate := access.NewGate(1, reg)
	n := &fakeNotifier{failFor: make(map[int64]error)}
	return reg, gate, n, NewRouter(reg, gate, n)
}

func TestRouteDeliversToOwner(t *testing.T) {
	reg, _, n, rt := routerFixture(t)
	ctx := context.Background()

	addr, err := reg.MintNamed(ctx, 100, "jane.doe")
	require.NoError(t, err)

	got := rt.Route(ctx, Event{
		Recipients: []string{addr},
		Sender:     "someone@remote.example",
		Subject:    "hello",
		Body:       "body text",
	})
	assert.Equal(t, 1, got)
	require.Len(t, n.deliveries, 1)
	assert.Equal(t, int64(100), n.deliveries[0].userID)
	assert.Contains(t, n.deliveries[0].text, "body text")
}

func TestRouteSkipsUnknownAddresses(t *testing.T) {
	_, _, n, rt := routerFixture(t)

	got := rt.Route(context.Background(), Event{
		Recipients: []string{"nobody@inbox.example"},
	})
	assert.Zero(t, got)
	assert.Empty(t, n.deliveries)
}

func TestRouteSuppressesBlockedOwners(t *testing.T) {
	reg, _, n, rt := routerFixture(t)
	ctx := context.Background()

	addr, err := reg.MintNamed(ctx, 100, "blocked.user")
	require.NoError(t, err)
	require.NoError(t, reg.Block(ctx, 100))

	got := rt.Route(ctx, Event{Recipients: []string{addr}})
	assert.Zero(t, got)
	assert.Empty(t, n.deliveries)
}

func TestRouteToleratesPerOwnerFailures(t *testing.T) {
	reg, _, n, rt := routerFixture(t)
	ctx := context.Background()

	bad, err := reg.MintNamed(ctx, 100, "flaky")
	require.NoError(t, err)
	good, err := reg.MintNamed(ctx, 200, "steady")
	require.NoError(t, err)
	n.failFor[100] = errors.New("chat not found")

	got := rt.Route(ctx, Event{Recipients: []string{bad, good}})
	assert.Equal(t, 1, got)
	require.Len(t, n.deliveries, 1)
	assert.Equal(t, int64(200), n.deliveries[0].userID)
}

func TestRouteFansOutToMultipleOwners(t *testing.T) {
	reg, _, n, rt := routerFixture(t)
	ctx := context.Background()

	a, err := reg.MintNamed(ctx, 100, "first")
	require.NoError(t, err)
	b, err := reg.MintNamed(ctx, 200, "second")
	require.NoError(t, err)

	got := rt.Route(ctx, Event{Recipients: []string{a, b}})
	assert.Equal(t, 2, got)
	assert.Len(t, n.deliveries, 2)
}
