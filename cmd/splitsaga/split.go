package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/dnnywang/shareable-split-saga/internal/calculator"
	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
	"github.com/dnnywang/shareable-split-saga/pkg/currency"
)

// splitCmd previews how a total divides between participants.
type splitCmd struct {
	total float64
	ledgerFlags
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "divide a total equally or by percentage" }
func (*splitCmd) Usage() string {
	return `splitsaga split -total <amount> <id>... | <id>=<percent>...

  Splits the total equally between the given ids, in cents, with leftover
  cents going to the first ids. With id=percent arguments the percentages must
  add up to 100.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.total, "total", 0, "Amount to split.")
	f.StringVar(&c.currency, "c", currency.DefaultCode, "ISO 4217 currency used for display.")
	f.BoolVar(&c.asJSON, "json", false, "Print JSON instead of text.")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	total, err := models.ParseAmount(c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -total: %v\n", err)
		return subcommands.ExitUsageError
	}
	formatter, err := currency.NewFormatter(c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	shares, err := c.split(total, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		out := make([]*api.Share, len(shares))
		for i, s := range shares {
			out[i] = &api.Share{ParticipantID: s.ParticipantID, Amount: s.Amount}
		}
		if err := writeJSON(c.out(), out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	for _, s := range shares {
		fmt.Fprintf(c.out(), "%s\t%s\n", s.ParticipantID, formatter.Format(s.Amount))
	}
	return subcommands.ExitSuccess
}

func (c *splitCmd) split(total decimal.Decimal, args []string) ([]models.Share, error) {
	var ids []string
	percents := make(map[string]decimal.Decimal)
	for _, arg := range args {
		id, pct, ok := strings.Cut(arg, "=")
		if !ok {
			ids = append(ids, arg)
			continue
		}
		p, err := decimal.NewFromString(pct)
		if err != nil {
			return nil, fmt.Errorf("percentage for %s: %w", id, err)
		}
		percents[id] = p
	}

	switch {
	case len(ids) > 0 && len(percents) > 0:
		return nil, fmt.Errorf("mix of plain ids and id=percent arguments")
	case len(percents) > 0:
		return calculator.PercentShares(total, percents)
	default:
		return calculator.EqualShares(total, ids)
	}
}
