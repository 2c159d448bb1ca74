package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomain = "inbox.example"

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(context.Background(), testDomain, NewMemoryStore())
	require.NoError(t, err)
	return r
}

func TestMintNamed(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	addr, err := r.MintNamed(ctx, 100, "John Doe!!")
	require.NoError(t, err)
	assert.Equal(t, "john.doe@inbox.example", addr)

	owner, ok := r.OwnerOf("john.doe@inbox.example")
	require.True(t, ok)
	assert.Equal(t, int64(100), owner)

	last, ok := r.LastAddress(100)
	require.True(t, ok)
	assert.Equal(t, addr, last)
}

func TestMintNamedInvalid(t *testing.T) {
	r := newTestRegistry(t)

	for _, raw := range []string{"", "   ", "!!!", "...."} {
		_, err := r.MintNamed(context.Background(), 100, raw)
		assert.ErrorIs(t, err, ErrInvalidName, "input %q", raw)
	}
}

func TestMintNamedTakenByOther(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.MintNamed(ctx, 100, "shared")
	require.NoError(t, err)
	second, err := r.MintNamed(ctx, 100, "backup")
	require.NoError(t, err)

	// A different owner may not claim the name, and the failed attempt
	// must not disturb what either owner already has.
	_, err = r.MintNamed(ctx, 200, "shared")
	assert.ErrorIs(t, err, ErrNameTaken)

	owner, ok := r.OwnerOf("shared@inbox.example")
	require.True(t, ok)
	assert.Equal(t, int64(100), owner)
	assert.Empty(t, r.Addresses(200))
	_, ok = r.LastAddress(200)
	assert.False(t, ok)

	last, ok := r.LastAddress(100)
	require.True(t, ok)
	assert.Equal(t, second, last)
}

func TestMintNamedRepeatIsNoOpButRefreshesLast(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	first, err := r.MintNamed(ctx, 100, "alpha")
	require.NoError(t, err)
	_, err = r.MintNamed(ctx, 100, "beta")
	require.NoError(t, err)

	again, err := r.MintNamed(ctx, 100, "alpha")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// No duplicate entry, but "alpha" is the last address once more.
	assert.Equal(t, []string{"alpha@inbox.example", "beta@inbox.example"}, r.Addresses(100))
	last, ok := r.LastAddress(100)
	require.True(t, ok)
	assert.Equal(t, first, last)
}

func TestMintRandom(t *testing.T) {
	r := newTestRegistry(t)

	addr, err := r.MintRandom(context.Background(), 100)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(addr, "@"+testDomain))

	local := strings.TrimSuffix(addr, "@"+testDomain)
	assert.Len(t, local, randomLocalLen)
	for _, c := range local {
		assert.Contains(t, randomAlphabet, string(c))
	}
	owner, ok := r.OwnerOf(addr)
	require.True(t, ok)
	assert.Equal(t, int64(100), owner)
}

func TestMintRandomManyOwnersNoCollisions(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	seen := make(map[string]int64)
	for i := 0; i < 10000; i++ {
		owner := int64(1 + i%2)
		addr, err := r.MintRandom(ctx, owner)
		require.NoError(t, err)
		if prev, dup := seen[addr]; dup {
			require.Equal(t, prev, owner, "address %s handed to two owners", addr)
		}
		seen[addr] = owner
	}
	assert.Len(t, r.Addresses(1), 5000)
	assert.Len(t, r.Addresses(2), 5000)
}

func TestOwnerOfIsCaseInsensitive(t *testing.T) {
	r := newTestRegistry(t)

	addr, err := r.MintNamed(context.Background(), 100, "casefold")
	require.NoError(t, err)

	owner, ok := r.OwnerOf(" " + strings.ToUpper(addr) + " ")
	require.True(t, ok)
	assert.Equal(t, int64(100), owner)
}

func TestBlockUnblock(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	assert.False(t, r.IsBlocked(100))
	require.NoError(t, r.Block(ctx, 100))
	assert.True(t, r.IsBlocked(100))
	require.NoError(t, r.Block(ctx, 100)) // repeat is a no-op

	changed, err := r.Unblock(ctx, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, r.IsBlocked(100))

	changed, err = r.Unblock(ctx, 100)
	require.NoError(t, err)
	assert.False(t, changed)
}

// failingStore accepts loads but rejects every write.
type failingStore struct {
	err error
}

func (s *failingStore) Load(context.Context) (*Snapshot, error) { return nil, nil }
func (s *failingStore) RecordMint(context.Context, *Snapshot, int64, string) error {
	return s.err
}
func (s *failingStore) RecordBlock(context.Context, *Snapshot, int64, bool) error {
	return s.err
}
func (s *failingStore) Close() error { return nil }

func TestMintRollsBackOnStoreFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	r, err := New(context.Background(), testDomain, &failingStore{err: boom})
	require.NoError(t, err)

	_, err = r.MintNamed(context.Background(), 100, "ghost")
	require.ErrorIs(t, err, boom)

	// The failed mint must leave no trace in the in-memory view.
	_, ok := r.OwnerOf("ghost@inbox.example")
	assert.False(t, ok)
	assert.Empty(t, r.Addresses(100))
	_, ok = r.LastAddress(100)
	assert.False(t, ok)
}

func TestBlockRollsBackOnStoreFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	r, err := New(context.Background(), testDomain, &failingStore{err: boom})
	require.NoError(t, err)

	require.ErrorIs(t, r.Block(context.Background(), 100), boom)
	assert.False(t, r.IsBlocked(100))
}
