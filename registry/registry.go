// Package registry owns the durable mapping between disposable email
// addresses and the Telegram users that minted them, plus the block-list.
// All mutation is serialized through one write lock so a mint's
// check-then-claim can never interleave with a competing mint for the same
// address.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dropmail/core/logger"
)

// maxMintAttempts bounds the random-mint collision loop. With a 36^10
// keyspace a second draw is already rare; hitting the bound means the
// random source or the store is broken.
const maxMintAttempts = 20

// Registry is the address-ownership registry. Reads are served from the
// in-memory view; every mutation is pushed through the configured Store
// before the call returns.
type Registry struct {
	domain string
	store  Store

	mu            sync.RWMutex
	ownerOf       map[string]int64
	addressesOf   map[int64][]string
	lastAddressOf map[int64]string
	blocked       map[int64]struct{}
}

// New creates a Registry for the given address domain, loading prior state
// from the store. A store that reports no state yields an empty registry.
func New(ctx context.Context, domain string, store Store) (*Registry, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	r := &Registry{
		domain:        strings.ToLower(strings.TrimSpace(domain)),
		store:         store,
		ownerOf:       make(map[string]int64),
		addressesOf:   make(map[int64][]string),
		lastAddressOf: make(map[int64]string),
		blocked:       make(map[int64]struct{}),
	}
	if r.domain == "" {
		return nil, fmt.Errorf("registry: empty domain")
	}

	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry: load state: %w", err)
	}
	if snap != nil {
		r.restore(snap)
	}

	logger.REG.Info("registry ready",
		slog.String("event", "registry.load"),
		slog.String("domain", r.domain),
		slog.Int("addresses", len(r.ownerOf)),
		slog.Int("owners", len(r.addressesOf)),
		slog.Int("blocked", len(r.blocked)),
	)
	return r, nil
}

func (r *Registry) restore(snap *Snapshot) {
	for addr, owner := range snap.OwnerOf {
		r.ownerOf[strings.ToLower(addr)] = owner
	}
	for owner, addrs := range snap.AddressesOf {
		list := make([]string, 0, len(addrs))
		for _, a := range addrs {
			list = append(list, strings.ToLower(a))
		}
		r.addressesOf[owner] = list
	}
	for owner, addr := range snap.LastAddressOf {
		r.lastAddressOf[owner] = strings.ToLower(addr)
	}
	for _, owner := range snap.Blocked {
		r.blocked[owner] = struct{}{}
	}
}

// Domain returns the fixed address domain.
func (r *Registry) Domain() string {
	return r.domain
}

// MintRandom registers a freshly generated address to the owner. Candidates
// already claimed by a different owner are redrawn; past maxMintAttempts
// the mint fails with ErrExhausted.
func (r *Registry) MintRandom(ctx context.Context, owner int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		local, err := randomLocalPart(randomLocalLen)
		if err != nil {
			return "", err
		}
		address := local + "@" + r.domain
		if current, taken := r.ownerOf[address]; taken && current != owner {
			continue
		}
		return r.register(ctx, owner, address)
	}

	logger.REG.Error("random mint exhausted",
		slog.String("event", "mint.exhausted"),
		slog.Int64("user_id", owner),
		slog.Int("attempts", maxMintAttempts),
	)
	return "", ErrExhausted
}

// MintNamed registers an address derived from user input. The raw name is
// sanitized first; an empty result is ErrInvalidName and a collision with a
// different owner is ErrNameTaken, both without touching any state.
func (r *Registry) MintNamed(ctx context.Context, owner int64, raw string) (string, error) {
	local := SanitizeLocalPart(raw)
	if local == "" {
		return "", ErrInvalidName
	}
	address := local + "@" + r.domain

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, taken := r.ownerOf[address]; taken && current != owner {
		return "", ErrNameTaken
	}
	return r.register(ctx, owner, address)
}

// register claims the address for the owner and persists the change. Caller
// must hold the write lock and must have verified the address is free or
// already the owner's. On a store failure the in-memory mutation is rolled
// back so the maps never diverge from what the caller was told.
func (r *Registry) register(ctx context.Context, owner int64, address string) (string, error) {
	_, hadOwner := r.ownerOf[address]
	prevLast, hadLast := r.lastAddressOf[owner]
	appended := false

	r.ownerOf[address] = owner
	if !contains(r.addressesOf[owner], address) {
		r.addressesOf[owner] = append(r.addressesOf[owner], address)
		appended = true
	}
	r.lastAddressOf[owner] = address

	if err := r.store.RecordMint(ctx, r.snapshotLocked(), owner, address); err != nil {
		if !hadOwner {
			delete(r.ownerOf, address)
		}
		if appended {
			list := r.addressesOf[owner]
			r.addressesOf[owner] = list[:len(list)-1]
			if len(r.addressesOf[owner]) == 0 {
				delete(r.addressesOf, owner)
			}
		}
		if hadLast {
			r.lastAddressOf[owner] = prevLast
		} else {
			delete(r.lastAddressOf, owner)
		}
		logger.REG.Error("mint persist failed",
			slog.String("event", "mint.persist.fail"),
			slog.Int64("user_id", owner),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("registry: persist mint: %w", err)
	}

	logger.REG.Info("address minted",
		slog.String("event", "mint"),
		slog.Int64("user_id", owner),
		slog.String("address", address),
	)
	return address, nil
}

// LastAddress returns the owner's most recently minted address.
func (r *Registry) LastAddress(owner int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addr, ok := r.lastAddressOf[owner]
	return addr, ok
}

// Addresses returns a copy of the owner's addresses in insertion order.
func (r *Registry) Addresses(owner int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.addressesOf[owner]
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// OwnerOf resolves an address (case-insensitively) to its owner.
func (r *Registry) OwnerOf(address string) (int64, bool) {
	address = strings.ToLower(strings.TrimSpace(address))
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.ownerOf[address]
	return owner, ok
}

// Block adds an owner to the block-list. Blocking an already blocked owner
// is a no-op.
func (r *Registry) Block(ctx context.Context, owner int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, already := r.blocked[owner]; already {
		return nil
	}
	r.blocked[owner] = struct{}{}
	if err := r.store.RecordBlock(ctx, r.snapshotLocked(), owner, true); err != nil {
		delete(r.blocked, owner)
		return fmt.Errorf("registry: persist block: %w", err)
	}
	logger.REG.Info("owner blocked",
		slog.String("event", "block"),
		slog.Int64("user_id", owner),
	)
	return nil
}

// Unblock removes an owner from the block-list. The boolean reports whether
// the owner was actually blocked, so callers can tell a real unblock from a
// no-op.
func (r *Registry) Unblock(ctx context.Context, owner int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, present := r.blocked[owner]; !present {
		return false, nil
	}
	delete(r.blocked, owner)
	if err := r.store.RecordBlock(ctx, r.snapshotLocked(), owner, false); err != nil {
		r.blocked[owner] = struct{}{}
		return false, fmt.Errorf("registry: persist unblock: %w", err)
	}
	logger.REG.Info("owner unblocked",
		slog.String("event", "unblock"),
		slog.Int64("user_id", owner),
	)
	return true, nil
}

// IsBlocked reports block-list membership.
func (r *Registry) IsBlocked(owner int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.blocked[owner]
	return ok
}

// Close releases the backing store.
func (r *Registry) Close() error {
	return r.store.Close()
}

// snapshotLocked copies the current state for persistence. Caller must hold
// at least the read lock.
func (r *Registry) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		OwnerOf:       make(map[string]int64, len(r.ownerOf)),
		AddressesOf:   make(map[int64][]string, len(r.addressesOf)),
		LastAddressOf: make(map[int64]string, len(r.lastAddressOf)),
	}
	for addr, owner := range r.ownerOf {
		snap.OwnerOf[addr] = owner
	}
	for owner, addrs := range r.addressesOf {
		list := make([]string, len(addrs))
		copy(list, addrs)
		snap.AddressesOf[owner] = list
	}
	for owner, addr := range r.lastAddressOf {
		snap.LastAddressOf[owner] = addr
	}
	for owner := range r.blocked {
		snap.Blocked = append(snap.Blocked, owner)
	}
	return snap
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
