package registry

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLStore persists the registry in Postgres. Unlike the snapshot backends
// it surfaces write failures: silently losing an address-to-owner row would
// let a later mint hand the same address to someone else.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open database handle. The schema is managed by the
// migrations directory.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load reads the full registry state.
func (s *SQLStore) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		OwnerOf:       make(map[string]int64),
		AddressesOf:   make(map[int64][]string),
		LastAddressOf: make(map[int64]string),
	}

	var addrRows []struct {
		Address string `db:"address"`
		OwnerID int64  `db:"owner_id"`
	}
	if err := s.db.SelectContext(ctx, &addrRows,
		`SELECT address, owner_id FROM addresses ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("registry: load addresses: %w", err)
	}
	for _, row := range addrRows {
		snap.OwnerOf[row.Address] = row.OwnerID
		snap.AddressesOf[row.OwnerID] = append(snap.AddressesOf[row.OwnerID], row.Address)
	}

	var ownerRows []struct {
		OwnerID     int64  `db:"owner_id"`
		LastAddress string `db:"last_address"`
	}
	if err := s.db.SelectContext(ctx, &ownerRows,
		`SELECT owner_id, last_address FROM owners`); err != nil {
		return nil, fmt.Errorf("registry: load owners: %w", err)
	}
	for _, row := range ownerRows {
		snap.LastAddressOf[row.OwnerID] = row.LastAddress
	}

	var blocked []int64
	if err := s.db.SelectContext(ctx, &blocked,
		`SELECT owner_id FROM blocked_users`); err != nil {
		return nil, fmt.Errorf("registry: load block list: %w", err)
	}
	snap.Blocked = blocked

	return snap, nil
}

// RecordMint durably records a mint as one transaction of two upserts.
func (s *SQLStore) RecordMint(ctx context.Context, snap *Snapshot, owner int64, address string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("registry: begin mint tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO addresses (address, owner_id) VALUES ($1, $2)
		 ON CONFLICT (address) DO NOTHING`,
		address, owner,
	); err != nil {
		return fmt.Errorf("registry: insert address: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO owners (owner_id, last_address) VALUES ($1, $2)
		 ON CONFLICT (owner_id) DO UPDATE SET last_address = EXCLUDED.last_address`,
		owner, address,
	); err != nil {
		return fmt.Errorf("registry: upsert last address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("registry: commit mint tx: %w", err)
	}
	return nil
}

// RecordBlock durably records a block-list change.
func (s *SQLStore) RecordBlock(ctx context.Context, snap *Snapshot, owner int64, blocked bool) error {
	var err error
	if blocked {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO blocked_users (owner_id) VALUES ($1)
			 ON CONFLICT (owner_id) DO NOTHING`,
			owner,
		)
	} else {
		_, err = s.db.ExecContext(ctx,
			`DELETE FROM blocked_users WHERE owner_id = $1`,
			owner,
		)
	}
	if err != nil {
		return fmt.Errorf("registry: record block change: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping verifies connectivity for health checks.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
