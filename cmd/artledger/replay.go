package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/artledger/go-artledger/journal"
	"github.com/artledger/go-artledger/market"
	"github.com/artledger/go-artledger/token"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	journalPath := fs.String("journal", "", "journal file to replay (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *journalPath == "" {
		return fmt.Errorf("replay: -journal is required")
	}

	store, err := journal.NewSQLiteStore(*journalPath)
	if err != nil {
		return err
	}
	defer store.Close()

	engine, err := market.Replay(context.Background(), store, market.Config{
		Tokens:      token.NewLedger(minter),
		Marketplace: marketplace,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Rebuilt state from %s\n", *journalPath)
	fmt.Printf("Listings: %d\n", engine.ListingCount())
	fmt.Printf("Assets:   %d\n", engine.Assets().Count())
	fmt.Printf("Supply:   %s\n", engine.Tokens().TotalSupply().Dec())

	for _, listing := range engine.ForSale() {
		fmt.Printf("  for sale: #%d %q at %s by %s\n",
			listing.ID, listing.Title, listing.Price.Dec(), listing.Creator.Short())
	}
	return nil
}
