package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/artledger/go-artledger/journal"
	"github.com/artledger/go-artledger/market"
	"github.com/artledger/go-artledger/token"
)

// Runs the canonical scenario against a journaled engine, then rebuilds
// a fresh engine from the journal and checks the states agree.
func TestReplay(t *testing.T) {
	ctx := context.Background()
	store := journal.NewMemoryStore()

	e, err := market.NewEngine(market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
		Journal:     store,
	})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	mustRegister(t, e, alice, "Alice")
	mustRegister(t, e, bob, "Bob")
	if err := e.UpdateUserProfile(alice, "Alicia", "ipfs://new", "painter"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	sold := mustList(t, e, alice, amt(100))
	kept, err := e.CreateListing(alice, "Keepsake", "private", "ipfs://keep", false, nil, "ipfs://keep-asset")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := e.MintTokens(minter, bob, amt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := e.ApproveSpending(bob, amt(100)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := e.BuyListing(bob, sold); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	r, err := market.Replay(ctx, store, market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if got, want := r.ListingCount(), e.ListingCount(); got != want {
		t.Errorf("replayed listing count = %d, want %d", got, want)
	}
	for id := uint64(1); id <= e.ListingCount(); id++ {
		want, _ := e.GetListing(id)
		got, err := r.GetListing(id)
		if err != nil {
			t.Fatalf("replayed listing %d missing: %v", id, err)
		}
		if got.Creator != want.Creator || got.Title != want.Title ||
			got.ForSale != want.ForSale || !got.Price.Eq(want.Price) ||
			got.AssetID != want.AssetID {
			t.Errorf("listing %d diverged:\n got %+v\nwant %+v", id, got, want)
		}
	}

	soldListing, _ := r.GetListing(sold)
	owner, err := r.Assets().OwnerOf(soldListing.AssetID)
	if err != nil {
		t.Fatalf("replayed ownerOf failed: %v", err)
	}
	if owner != bob {
		t.Errorf("replayed asset owner = %s, want buyer", owner)
	}
	keptListing, _ := r.GetListing(kept)
	if owner, _ := r.Assets().OwnerOf(keptListing.AssetID); owner != alice {
		t.Errorf("replayed unsold asset owner = %s, want creator", owner)
	}

	if got := r.Tokens().BalanceOf(alice); !got.Eq(amt(100)) {
		t.Errorf("replayed seller balance = %s, want 100", got.Dec())
	}
	if got := r.Tokens().BalanceOf(bob); !got.Eq(amt(400)) {
		t.Errorf("replayed buyer balance = %s, want 400", got.Dec())
	}
	if got := r.Tokens().TotalSupply(); !got.Eq(amt(500)) {
		t.Errorf("replayed supply = %s, want 500", got.Dec())
	}
	if got := r.Tokens().Allowance(bob, marketplace); !got.IsZero() {
		t.Errorf("replayed allowance = %s, want 0", got.Dec())
	}

	p, err := r.Profile(alice)
	if err != nil {
		t.Fatalf("replayed profile failed: %v", err)
	}
	if p.Name != "Alicia" {
		t.Errorf("replayed profile name = %q, want the updated value", p.Name)
	}
}

// A rebuilt engine keeps journaling to the same store without version
// conflicts.
func TestReplayContinuesJournaling(t *testing.T) {
	ctx := context.Background()
	store := journal.NewMemoryStore()

	e, err := market.NewEngine(market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
		Journal:     store,
	})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	mustRegister(t, e, alice, "Alice")
	mustList(t, e, alice, amt(50))

	r, err := market.Replay(ctx, store, market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
	})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	// New transitions on the rebuilt engine must append cleanly.
	if err := r.UpdateUserProfile(alice, "Alicia", "", ""); err != nil {
		t.Fatalf("post-replay update failed: %v", err)
	}
	if _, err := r.CreateListing(alice, "Second", "", "", true, amt(10), ""); err != nil {
		t.Fatalf("post-replay create failed: %v", err)
	}

	events, err := store.ReadAll(ctx, journal.Filter{Types: []string{market.EventProfileUpdated}})
	if err != nil {
		t.Fatalf("read all failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 profile update in journal, got %d", len(events))
	}
	if events[0].Version != 1 {
		t.Errorf("profile update appended at version %d, want 1 (after registration)", events[0].Version)
	}
}

func TestReplayRejectsUnknownEvent(t *testing.T) {
	ctx := context.Background()
	store := journal.NewMemoryStore()

	ev, err := journal.NewEvent("listing-1", "Repriced", map[string]string{"price": "5"})
	if err != nil {
		t.Fatalf("new event failed: %v", err)
	}
	if _, err := store.Append(ctx, "listing-1", -1, []*journal.Event{ev}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	_, err = market.Replay(ctx, store, market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
	})
	if !errors.Is(err, market.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState for unknown event type, got %v", err)
	}
}
