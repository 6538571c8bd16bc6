package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/dnnywang/shareable-split-saga/internal/calculator"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

// balancesCmd prints every participant's paid, owed and net amounts.
type balancesCmd struct {
	ledgerFlags
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "print each participant's net balance" }
func (*balancesCmd) Usage() string {
	return `splitsaga balances [-f <trip.json>] [-c <currency>] [-json]

  Prints what every participant paid, what they owe and their net balance.
  A positive balance means the group owes the participant.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *balancesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	summary, err := calculator.Summarize(l.participants, l.purchases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		out := make([]*api.MemberBalance, len(summary))
		for i, m := range summary {
			out[i] = &api.MemberBalance{
				ParticipantID: m.ParticipantID,
				DisplayName:   l.name(m.ParticipantID),
				TotalPaid:     m.TotalPaid,
				TotalOwed:     m.TotalOwed,
				Net:           m.Net,
				Formatted:     formatter.Signed(m.Net),
			}
		}
		if err := writeJSON(c.out(), out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.out(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Participant\tPaid\tOwed\tNet\t")
	for _, m := range summary {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			l.name(m.ParticipantID),
			formatter.Format(m.TotalPaid),
			formatter.Format(m.TotalOwed),
			formatter.Signed(m.Net),
		)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
