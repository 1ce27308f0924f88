package market

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/artledger/go-artledger/identity"
)

// Listing is a read-only snapshot of one published offer. Two reads
// with no intervening mutation yield identical snapshots.
type Listing struct {
	ID          uint64
	Creator     identity.Address // current holder; set to the buyer on sale
	Title       string
	Description string
	ContentRef  string
	ForSale     bool
	Price       *uint256.Int // meaningful only while ForSale
	AssetID     uint64       // bound asset, 0 if none
}

// listingRecord is the mutable record behind a listing id. The listing
// state machine is Active (forSale) -> Sold (terminal); Draft never
// materializes because creation is atomic. Relisting is a deliberate
// extension point, not a supported transition.
type listingRecord struct {
	mu          sync.RWMutex
	id          uint64
	creator     identity.Address
	title       string
	description string
	contentRef  string
	forSale     bool
	price       uint256.Int
	assetID     uint64
}

// snapshot copies the record under its read lock.
func (r *listingRecord) snapshot() Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Listing{
		ID:          r.id,
		Creator:     r.creator,
		Title:       r.title,
		Description: r.description,
		ContentRef:  r.contentRef,
		ForSale:     r.forSale,
		Price:       new(uint256.Int).Set(&r.price),
		AssetID:     r.assetID,
	}
}
