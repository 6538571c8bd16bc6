// Command splitsaga computes balances and settlements for a trip document
// without a server.
//
// A trip document is JSON:
//
//	{
//	  "participants": [{"id": "a", "display_name": "Alice"}, ...],
//	  "purchases": [{"id": "p1", "title": "Hotel", "total_amount": "150",
//	                 "paid_by": [{"participant_id": "a", "amount": "150"}],
//	                 "split_between": [...]}, ...]
//	}
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&balancesCmd{}, "ledger")
	commander.Register(&settleCmd{}, "ledger")
	commander.Register(&validateCmd{}, "ledger")
	commander.Register(&splitCmd{}, "tools")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
