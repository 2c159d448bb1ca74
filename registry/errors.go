package registry

import "errors"

var (
	// ErrInvalidName is returned when a user-supplied name sanitizes to nothing.
	ErrInvalidName = errors.New("registry: invalid name")
	// ErrNameTaken is returned when the requested address belongs to another owner.
	ErrNameTaken = errors.New("registry: name already taken")
	// ErrExhausted is returned when random minting could not find a free
	// address within the attempt bound.
	ErrExhausted = errors.New("registry: address space exhausted")
)
