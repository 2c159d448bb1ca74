package registry

import "context"

// Snapshot is the full logical state of the registry: the three ownership
// mappings plus the block-list. It is handed to stores on every mutation so
// snapshot-style backends can rewrite the whole mapping atomically.
type Snapshot struct {
	OwnerOf       map[string]int64   `json:"owner_of"`
	AddressesOf   map[int64][]string `json:"addresses"`
	LastAddressOf map[int64]string   `json:"last_address"`
	Blocked       []int64            `json:"blocked,omitempty"`
}

// Store persists registry state. Load is called once at startup; the Record
// methods are called under the registry's write lock, after the in-memory
// view has been updated, and receive the post-mutation snapshot.
//
// A store decides its own failure policy: backends that can tolerate a lost
// write (the in-memory view stays correct) log and return nil; backends
// where silent loss of the ownership mapping is a correctness hazard return
// the error so the mint fails visibly.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	RecordMint(ctx context.Context, snap *Snapshot, owner int64, address string) error
	RecordBlock(ctx context.Context, snap *Snapshot, owner int64, blocked bool) error
	Close() error
}
