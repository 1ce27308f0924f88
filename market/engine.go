// Package market implements the marketplace engine: listing creation,
// sale-state transitions, and the atomic buy protocol composing the
// token ledger, asset registry and user directory. Every operation
// either commits fully or leaves no observable effect.
package market

import (
	"fmt"
	"strings"
	"sync"

	"github.com/holiman/uint256"

	"github.com/artledger/go-artledger/asset"
	"github.com/artledger/go-artledger/directory"
	"github.com/artledger/go-artledger/identity"
	"github.com/artledger/go-artledger/journal"
	"github.com/artledger/go-artledger/token"
)

// Config assembles the components an Engine coordinates.
type Config struct {
	// Tokens is the settlement-token ledger. Required.
	Tokens *token.Ledger

	// Assets is the unique-asset registry. Created if nil.
	Assets *asset.Registry

	// Users is the participant directory. Created if nil.
	Users *directory.Directory

	// Marketplace is the engine's own identity: the spender buyers
	// approve for purchases. Required.
	Marketplace identity.Address

	// Journal, if set, receives one event per committed transition.
	Journal journal.Store
}

// Engine coordinates ownership and trade of listed assets.
type Engine struct {
	tokens      *token.Ledger
	assets      *asset.Registry
	users       *directory.Directory
	marketplace identity.Address

	mu        sync.RWMutex // guards listings slice and byCreator index
	listings  []*listingRecord
	byCreator map[identity.Address][]uint64

	journalMu sync.Mutex
	journal   journal.Store
	versions  map[string]int // stream head versions, -1 when absent
}

// NewEngine creates an engine over the configured components.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("%w: token ledger is required", ErrInvalidInput)
	}
	if cfg.Marketplace.IsZero() {
		return nil, fmt.Errorf("%w: marketplace identity is required", ErrInvalidInput)
	}
	if cfg.Assets == nil {
		cfg.Assets = asset.NewRegistry()
	}
	if cfg.Users == nil {
		cfg.Users = directory.NewDirectory()
	}
	return &Engine{
		tokens:      cfg.Tokens,
		assets:      cfg.Assets,
		users:       cfg.Users,
		marketplace: cfg.Marketplace,
		journal:     cfg.Journal,
		byCreator:   make(map[identity.Address][]uint64),
		versions:    make(map[string]int),
	}, nil
}

// Marketplace returns the engine's spender identity.
func (e *Engine) Marketplace() identity.Address {
	return e.marketplace
}

// Tokens returns the underlying token ledger.
func (e *Engine) Tokens() *token.Ledger {
	return e.tokens
}

// Assets returns the underlying asset registry.
func (e *Engine) Assets() *asset.Registry {
	return e.assets
}

// RegisterUser creates the caller's profile.
func (e *Engine) RegisterUser(caller identity.Address, name, avatarRef, bio string) error {
	if err := e.users.Register(caller, name, avatarRef, bio); err != nil {
		return err
	}
	return e.appendEvent(userStream(caller), EventUserRegistered, userProfileData{
		User: caller, Name: name, AvatarRef: avatarRef, Bio: bio,
	})
}

// UpdateUserProfile overwrites the caller's profile fields. The caller
// identity is the authenticated invoker, so only the owning identity
// reaches its own profile.
func (e *Engine) UpdateUserProfile(caller identity.Address, name, avatarRef, bio string) error {
	if err := e.users.UpdateProfile(caller, name, avatarRef, bio); err != nil {
		return err
	}
	return e.appendEvent(userStream(caller), EventProfileUpdated, userProfileData{
		User: caller, Name: name, AvatarRef: avatarRef, Bio: bio,
	})
}

// MintTokens mints settlement tokens through the engine so the grant is
// journaled. Authorization is the ledger's: only its minter identity
// may mint.
func (e *Engine) MintTokens(caller, to identity.Address, amount *uint256.Int) error {
	if err := e.tokens.Mint(caller, to, amount); err != nil {
		return err
	}
	return e.appendEvent(accountStream(to), EventTokensMinted, tokenGrantData{
		Caller: caller, To: to, Amount: amount.Dec(),
	})
}

// ApproveSpending sets the owner's allowance toward the marketplace
// spender, the approval BuyListing settles against.
func (e *Engine) ApproveSpending(owner identity.Address, amount *uint256.Int) error {
	if err := e.tokens.Approve(owner, e.marketplace, amount); err != nil {
		return err
	}
	dec := "0"
	if amount != nil {
		dec = amount.Dec()
	}
	return e.appendEvent(accountStream(owner), EventAllowanceSet, allowanceData{
		Owner: owner, Amount: dec,
	})
}

// CreateListing publishes a new offer, minting its backing asset to the
// creator. Validation precedes every allocation, so a failed attempt
// advances neither the asset nor the listing counter.
func (e *Engine) CreateListing(creator identity.Address, title, description, contentRef string, forSale bool, price *uint256.Int, assetContentRef string) (uint64, error) {
	if !e.users.IsRegistered(creator) {
		return 0, directory.ErrNotRegistered
	}
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("%w: empty title", ErrInvalidInput)
	}
	if forSale && (price == nil || price.IsZero()) {
		return 0, fmt.Errorf("%w: for-sale listing requires a positive price", ErrInvalidInput)
	}

	assetID, err := e.assets.Mint(creator, assetContentRef)
	if err != nil {
		return 0, fmt.Errorf("market: minting asset: %w", err)
	}

	rec := &listingRecord{
		creator:     creator,
		title:       title,
		description: description,
		contentRef:  contentRef,
		forSale:     forSale,
		assetID:     assetID,
	}
	if price != nil {
		rec.price.Set(price)
	}

	e.mu.Lock()
	e.listings = append(e.listings, rec)
	id := uint64(len(e.listings))
	rec.id = id
	e.byCreator[creator] = append(e.byCreator[creator], id)
	e.mu.Unlock()

	if err := e.appendEvent(listingStream(id), EventListingCreated, listingCreatedData{
		ListingID:       id,
		Creator:         creator,
		Title:           title,
		Description:     description,
		ContentRef:      contentRef,
		ForSale:         forSale,
		Price:           rec.price.Dec(),
		AssetContentRef: assetContentRef,
		AssetID:         assetID,
	}); err != nil {
		return id, err
	}
	return id, nil
}

// BuyListing executes the atomic purchase protocol: settlement tokens
// move from buyer to seller out of the buyer's approval to the
// marketplace, asset ownership transfers, and the listing leaves sale.
// Any failure leaves the buyer's balance and allowance, the asset's
// owner, and the listing untouched.
//
// Two purchases racing on the same listing serialize on its record:
// exactly one commits, the other observes ErrAlreadyUnlisted.
func (e *Engine) BuyListing(buyer identity.Address, id uint64) error {
	rec, err := e.record(id)
	if err != nil {
		return err
	}
	if !tryLockBounded(&rec.mu) {
		return ErrContention
	}
	defer rec.mu.Unlock()

	if !rec.forSale {
		return ErrAlreadyUnlisted
	}
	if rec.creator == buyer {
		return ErrSelfPurchase
	}
	seller := rec.creator
	price := new(uint256.Int).Set(&rec.price)

	// A for-sale listing's asset must still be held by the seller.
	// Anything else means a prior transition broke an invariant.
	if rec.assetID != 0 {
		owner, err := e.assets.OwnerOf(rec.assetID)
		if err != nil || owner != seller {
			return fmt.Errorf("market: listing %d asset %d not held by seller: %w", id, rec.assetID, ErrCorruptState)
		}
	}

	if err := e.tokens.TransferFrom(e.marketplace, buyer, seller, price); err != nil {
		return err
	}

	if rec.assetID != 0 {
		if err := e.assets.TransferOwnership(rec.assetID, seller, buyer); err != nil {
			// The seller held the asset moments ago and this record is
			// locked, so only invariant corruption lands here. Reverse
			// the settlement before surfacing it.
			if rerr := e.tokens.Transfer(seller, buyer, price); rerr != nil {
				return fmt.Errorf("market: listing %d settlement reversal failed (%v) after %v: %w", id, rerr, err, ErrCorruptState)
			}
			if rerr := e.tokens.IncreaseAllowance(buyer, e.marketplace, price); rerr != nil {
				return fmt.Errorf("market: listing %d allowance restore failed (%v) after %v: %w", id, rerr, err, ErrCorruptState)
			}
			return fmt.Errorf("market: listing %d asset transfer rejected (%v): %w", id, err, ErrCorruptState)
		}
	}

	rec.forSale = false
	rec.creator = buyer

	e.mu.Lock()
	e.byCreator[seller] = removeListingID(e.byCreator[seller], id)
	e.byCreator[buyer] = append(e.byCreator[buyer], id)
	e.mu.Unlock()

	return e.appendEvent(listingStream(id), EventListingSold, listingSoldData{
		ListingID: id, Buyer: buyer, Seller: seller, Price: price.Dec(), AssetID: rec.assetID,
	})
}

// record returns the listing record for id.
func (e *Engine) record(id uint64) (*listingRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if id == 0 || id > uint64(len(e.listings)) {
		return nil, ErrNotFound
	}
	return e.listings[id-1], nil
}

func removeListingID(ids []uint64, id uint64) []uint64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// IsRegistered reports whether an identity has a profile.
func (e *Engine) IsRegistered(id identity.Address) bool {
	return e.users.IsRegistered(id)
}
