package market

import (
	"github.com/artledger/go-artledger/directory"
	"github.com/artledger/go-artledger/identity"
)

// Query facade. All reads reflect the latest committed state and never
// a partial transition: record fields only change under the record's
// write lock, and snapshots are taken under its read lock.

// GetListing returns a snapshot of the listing.
func (e *Engine) GetListing(id uint64) (Listing, error) {
	rec, err := e.record(id)
	if err != nil {
		return Listing{}, err
	}
	return rec.snapshot(), nil
}

// ListingCount returns the number of listings ever created. Listing
// identifiers run from 1 to ListingCount inclusive.
func (e *Engine) ListingCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint64(len(e.listings))
}

// ListingsByCreator returns the identifiers of the listings an identity
// currently holds, in the order they entered its holdings. A purchase
// moves the listing id from the seller's sequence to the buyer's.
func (e *Engine) ListingsByCreator(id identity.Address) []uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := e.byCreator[id]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

// ForSale returns snapshots of all listings currently offered for
// sale, in listing-id order.
func (e *Engine) ForSale() []Listing {
	e.mu.RLock()
	records := make([]*listingRecord, len(e.listings))
	copy(records, e.listings)
	e.mu.RUnlock()

	var out []Listing
	for _, rec := range records {
		if snap := rec.snapshot(); snap.ForSale {
			out = append(out, snap)
		}
	}
	return out
}

// Profile returns a copy of an identity's profile.
func (e *Engine) Profile(id identity.Address) (directory.Profile, error) {
	return e.users.Profile(id)
}
