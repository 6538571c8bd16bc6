package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/dnnywang/shareable-split-saga/internal/calculator"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

// settleCmd prints the payments that settle the trip.
type settleCmd struct {
	ledgerFlags
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "suggest the payments that settle the trip" }
func (*settleCmd) Usage() string {
	return `splitsaga settle [-f <trip.json>] [-c <currency>] [-json]

  Prints who should pay whom so that every balance returns to zero.
  Creditors and debtors are matched largest first, ties by participant id.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *settleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, formatter, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trip: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := l.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'splitsaga validate' to list every invalid purchase.")
		return subcommands.ExitFailure
	}

	balances, err := calculator.ComputeBalances(l.participants, l.purchases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}

	settlements := calculator.Simplify(balances)
	if rest := calculator.Apply(balances, settlements); !rest.Settled() {
		fmt.Fprintf(os.Stderr, "Warning: settlements leave %s unaccounted for\n", formatter.Format(rest.Total()))
	}

	if c.asJSON {
		out := make([]*api.Settlement, len(settlements))
		for i, s := range settlements {
			out[i] = &api.Settlement{From: s.From, To: s.To, Amount: s.Amount, Formatted: formatter.Format(s.Amount)}
		}
		if err := writeJSON(c.out(), out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if len(settlements) == 0 {
		fmt.Fprintln(c.out(), "All settled up.")
		return subcommands.ExitSuccess
	}
	for _, s := range settlements {
		fmt.Fprintf(c.out(), "%s pays %s %s\n", l.name(s.From), l.name(s.To), formatter.Format(s.Amount))
	}
	return subcommands.ExitSuccess
}
