package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/dnnywang/shareable-split-saga/internal/calculator"
)

// validateCmd checks every purchase of a trip document.
type validateCmd struct {
	ledgerFlags
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check purchases for inconsistencies" }
func (*validateCmd) Usage() string {
	return `splitsaga validate [-f <trip.json>]

  Reports purchases whose payers or split do not add up to the total, or that
  reference someone outside the trip. Exits non-zero when any is found.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *validateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, _, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trip: %v\n", err)
		return subcommands.ExitUsageError
	}

	failures := 0
	for _, p := range l.purchases {
		if err := calculator.ValidatePurchase(p, l.participants); err != nil {
			failures++
			fmt.Fprintf(c.out(), "%s %q: %v\n", p.ID, p.Title, err)
		}
	}

	if failures > 0 {
		fmt.Fprintf(c.out(), "%d of %d purchases invalid\n", failures, len(l.purchases))
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.out(), "%d purchases OK\n", len(l.purchases))
	return subcommands.ExitSuccess
}
