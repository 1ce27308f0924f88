// Package asset implements the registry of unique, non-fungible items.
// Each asset has a stable integer identifier, exactly one owner, and an
// opaque content reference. Identifiers are allocated from a monotonic
// counter starting at 1 and are never reused; assets are never deleted,
// so the registry is an arena with stable indices and ownership
// transfer is a field update.
package asset

import (
	"errors"
	"sync"

	"github.com/artledger/go-artledger/identity"
)

var (
	// ErrNotFound is returned for an unknown asset identifier.
	ErrNotFound = errors.New("asset: not found")

	// ErrNotOwner is returned when a transfer names a from identity
	// that does not own the asset.
	ErrNotOwner = errors.New("asset: caller is not the owner")

	// ErrInvalidOwner is returned when an operation names the zero
	// address as an owner.
	ErrInvalidOwner = errors.New("asset: zero address owner")
)

// Asset is a read-only snapshot of one registry entry.
type Asset struct {
	ID         uint64
	Owner      identity.Address
	Minter     identity.Address // immutable, records who minted
	ContentRef string           // opaque URI, duplicates permitted
}

// entry is the mutable record behind an asset id. Only Owner changes
// after mint.
type entry struct {
	mu         sync.Mutex
	owner      identity.Address
	minter     identity.Address
	contentRef string
}

// Registry holds all minted assets.
type Registry struct {
	mu      sync.RWMutex // guards the entries slice structure only
	entries []*entry     // entries[i] holds asset id i+1
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Mint records a new asset owned by owner and returns its identifier.
// Content references are not required to be unique; content addressing
// is an external concern.
func (r *Registry) Mint(owner identity.Address, contentRef string) (uint64, error) {
	if owner.IsZero() {
		return 0, ErrInvalidOwner
	}
	e := &entry{owner: owner, minter: owner, contentRef: contentRef}

	r.mu.Lock()
	r.entries = append(r.entries, e)
	id := uint64(len(r.entries))
	r.mu.Unlock()
	return id, nil
}

// lookup returns the entry for id, or ErrNotFound.
func (r *Registry) lookup(id uint64) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == 0 || id > uint64(len(r.entries)) {
		return nil, ErrNotFound
	}
	return r.entries[id-1], nil
}

// TransferOwnership reassigns the asset from its current owner to to.
// Fails with ErrNotOwner unless from is the recorded owner; nothing
// changes on failure.
func (r *Registry) TransferOwnership(id uint64, from, to identity.Address) error {
	if to.IsZero() {
		return ErrInvalidOwner
	}
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.owner != from {
		return ErrNotOwner
	}
	e.owner = to
	return nil
}

// OwnerOf returns the current owner of the asset.
func (r *Registry) OwnerOf(id uint64) (identity.Address, error) {
	e, err := r.lookup(id)
	if err != nil {
		return identity.Zero, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.owner, nil
}

// MinterOf returns the identity that minted the asset.
func (r *Registry) MinterOf(id uint64) (identity.Address, error) {
	e, err := r.lookup(id)
	if err != nil {
		return identity.Zero, err
	}
	return e.minter, nil
}

// Get returns a snapshot of the asset record.
func (r *Registry) Get(id uint64) (Asset, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Asset{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return Asset{ID: id, Owner: e.owner, Minter: e.minter, ContentRef: e.contentRef}, nil
}

// Count returns the number of minted assets. Identifiers run from 1 to
// Count inclusive.
func (r *Registry) Count() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.entries))
}
