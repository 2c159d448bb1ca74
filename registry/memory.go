package registry

import "context"

// MemoryStore is the no-durability backend: every restart starts from an
// empty registry. Useful for development and intentional for deployments
// that treat addresses as fully disposable.
type MemoryStore struct{}

// NewMemoryStore returns a Store that never persists anything.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load reports an empty state.
func (s *MemoryStore) Load(ctx context.Context) (*Snapshot, error) {
	return nil, nil
}

// RecordMint is a no-op.
func (s *MemoryStore) RecordMint(ctx context.Context, snap *Snapshot, owner int64, address string) error {
	return nil
}

// RecordBlock is a no-op.
func (s *MemoryStore) RecordBlock(ctx context.Context, snap *Snapshot, owner int64, blocked bool) error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
