package market

import (
	"context"
	"fmt"
	"strconv"

	"github.com/artledger/go-artledger/identity"
	"github.com/artledger/go-artledger/journal"
)

// Event types the engine journals, one per committed transition.
const (
	EventUserRegistered = "UserRegistered"
	EventProfileUpdated = "ProfileUpdated"
	EventTokensMinted   = "TokensMinted"
	EventAllowanceSet   = "AllowanceSet"
	EventListingCreated = "ListingCreated"
	EventListingSold    = "ListingSold"
)

// Stream naming: one stream per record, so per-stream versions mirror
// per-record transition counts.
func userStream(id identity.Address) string    { return "user-" + id.String() }
func accountStream(id identity.Address) string { return "account-" + id.String() }
func listingStream(id uint64) string           { return "listing-" + strconv.FormatUint(id, 10) }

// Amounts travel as decimal strings; 256-bit values do not survive
// JSON numbers.

type userProfileData struct {
	User      identity.Address `json:"user"`
	Name      string           `json:"name"`
	AvatarRef string           `json:"avatar_ref,omitempty"`
	Bio       string           `json:"bio,omitempty"`
}

type tokenGrantData struct {
	Caller identity.Address `json:"caller"`
	To     identity.Address `json:"to"`
	Amount string           `json:"amount"`
}

type allowanceData struct {
	Owner  identity.Address `json:"owner"`
	Amount string           `json:"amount"`
}

type listingCreatedData struct {
	ListingID       uint64           `json:"listing_id"`
	Creator         identity.Address `json:"creator"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	ContentRef      string           `json:"content_ref,omitempty"`
	ForSale         bool             `json:"for_sale"`
	Price           string           `json:"price"`
	AssetContentRef string           `json:"asset_content_ref,omitempty"`
	AssetID         uint64           `json:"asset_id"`
}

type listingSoldData struct {
	ListingID uint64           `json:"listing_id"`
	Buyer     identity.Address `json:"buyer"`
	Seller    identity.Address `json:"seller"`
	Price     string           `json:"price"`
	AssetID   uint64           `json:"asset_id"`
}

// appendEvent journals a committed transition. Appends happen after
// commit, outside every record lock; a journal failure is surfaced to
// the caller but the transition itself stands (the journal is the
// durability trail, not the commit path).
func (e *Engine) appendEvent(stream, eventType string, data any) error {
	if e.journal == nil {
		return nil
	}
	ev, err := journal.NewEvent(stream, eventType, data)
	if err != nil {
		return fmt.Errorf("market: encoding %s event: %w", eventType, err)
	}

	e.journalMu.Lock()
	defer e.journalMu.Unlock()

	head, ok := e.versions[stream]
	if !ok {
		head = -1
	}
	newHead, err := e.journal.Append(context.Background(), stream, head, []*journal.Event{ev})
	if err != nil {
		return fmt.Errorf("market: journaling %s: %w", eventType, err)
	}
	e.versions[stream] = newHead
	return nil
}
