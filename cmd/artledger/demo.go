package main

import (
	"flag"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/artledger/go-artledger/identity"
	"github.com/artledger/go-artledger/journal"
	"github.com/artledger/go-artledger/market"
	"github.com/artledger/go-artledger/token"
)

var (
	minter      = identity.MustAddress("0x00000000000000000000000000000000000000a0")
	marketplace = identity.MustAddress("0x00000000000000000000000000000000000000f1")
	alice       = identity.MustAddress("0x0000000000000000000000000000000000000a11")
	bob         = identity.MustAddress("0x0000000000000000000000000000000000000b0b")
)

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	journalPath := fs.String("journal", "", "journal the scenario to a SQLite file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var store journal.Store
	if *journalPath != "" {
		s, err := journal.NewSQLiteStore(*journalPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	engine, err := market.NewEngine(market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
		Journal:     store,
	})
	if err != nil {
		return err
	}

	if err := engine.RegisterUser(alice, "Alice", "ipfs://avatar/alice", "painter"); err != nil {
		return err
	}
	if err := engine.RegisterUser(bob, "Bob", "ipfs://avatar/bob", "collector"); err != nil {
		return err
	}

	price := uint256.NewInt(100)
	listingID, err := engine.CreateListing(alice, "Sunrise", "oil on canvas", "ipfs://art/sunrise", true, price, "ipfs://asset/sunrise")
	if err != nil {
		return err
	}
	fmt.Printf("Alice listed %q as listing %d for %s tokens\n", "Sunrise", listingID, price.Dec())

	if err := engine.MintTokens(minter, bob, uint256.NewInt(500)); err != nil {
		return err
	}
	if err := engine.ApproveSpending(bob, price); err != nil {
		return err
	}
	if err := engine.BuyListing(bob, listingID); err != nil {
		return err
	}
	fmt.Println("Bob bought the listing")

	listing, err := engine.GetListing(listingID)
	if err != nil {
		return err
	}
	owner, err := engine.Assets().OwnerOf(listing.AssetID)
	if err != nil {
		return err
	}

	fmt.Printf("\nListing %d: forSale=%v holder=%s\n", listing.ID, listing.ForSale, listing.Creator.Short())
	fmt.Printf("Asset %d owner: %s\n", listing.AssetID, owner.Short())
	fmt.Printf("Alice balance: %s\n", engine.Tokens().BalanceOf(alice).Dec())
	fmt.Printf("Bob balance:   %s\n", engine.Tokens().BalanceOf(bob).Dec())
	fmt.Printf("Bob allowance: %s\n", engine.Tokens().Allowance(bob, marketplace).Dec())

	if *journalPath != "" {
		fmt.Printf("\nJournal written to %s\n", *journalPath)
	}
	return nil
}
