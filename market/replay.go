package market

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/artledger/go-artledger/journal"
)

// Replay rebuilds an engine from a journal by re-executing every
// committed transition in global commit order. The rebuilt engine
// continues appending to the same store.
//
// Replay re-drives the public operations, so every invariant is
// re-checked; a journal whose events no longer validate reports
// ErrCorruptState.
func Replay(ctx context.Context, store journal.Store, cfg Config) (*Engine, error) {
	cfg.Journal = nil // no re-appends while replaying
	e, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	events, err := store.ReadAll(ctx, journal.Filter{})
	if err != nil {
		return nil, fmt.Errorf("market: reading journal: %w", err)
	}

	for _, ev := range events {
		if err := e.applyEvent(ev); err != nil {
			return nil, fmt.Errorf("market: replaying %s event %s: %w", ev.Type, ev.ID, err)
		}
		e.versions[ev.StreamID] = ev.Version
	}

	e.journal = store
	return e, nil
}

// applyEvent re-executes one journaled transition.
func (e *Engine) applyEvent(ev *journal.Event) error {
	switch ev.Type {
	case EventUserRegistered:
		var d userProfileData
		if err := ev.Unmarshal(&d); err != nil {
			return err
		}
		return e.RegisterUser(d.User, d.Name, d.AvatarRef, d.Bio)

	case EventProfileUpdated:
		var d userProfileData
		if err := ev.Unmarshal(&d); err != nil {
			return err
		}
		return e.UpdateUserProfile(d.User, d.Name, d.AvatarRef, d.Bio)

	case EventTokensMinted:
		var d tokenGrantData
		if err := ev.Unmarshal(&d); err != nil {
			return err
		}
		amount, err := uint256.FromDecimal(d.Amount)
		if err != nil {
			return err
		}
		return e.MintTokens(d.Caller, d.To, amount)

	case EventAllowanceSet:
		var d allowanceData
		if err := ev.Unmarshal(&d); err != nil {
			return err
		}
		amount, err := uint256.FromDecimal(d.Amount)
		if err != nil {
			return err
		}
		return e.ApproveSpending(d.Owner, amount)

	case EventListingCreated:
		var d listingCreatedData
		if err := ev.Unmarshal(&d); err != nil {
			return err
		}
		price, err := uint256.FromDecimal(d.Price)
		if err != nil {
			return err
		}
		id, err := e.CreateListing(d.Creator, d.Title, d.Description, d.ContentRef, d.ForSale, price, d.AssetContentRef)
		if err != nil {
			return err
		}
		if id != d.ListingID {
			return fmt.Errorf("listing id %d diverged from journaled %d: %w", id, d.ListingID, ErrCorruptState)
		}
		return nil

	case EventListingSold:
		var d listingSoldData
		if err := ev.Unmarshal(&d); err != nil {
			return err
		}
		return e.BuyListing(d.Buyer, d.ListingID)

	default:
		return fmt.Errorf("unknown event type %q: %w", ev.Type, ErrCorruptState)
	}
}
