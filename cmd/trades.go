package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct {
	csv bool
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list the trades of the journal" }
func (*tradesCmd) Usage() string {
	return `tbk trades [-csv] [<symbol>...]

  Lists the trades in chronological order with the realized profit or loss
  of each sell. Symbols restrict the list.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Print the trades as CSV, with the average cost after each trade")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}
	if l, err = filterSymbols(l, f.Args()); err != nil {
		return failf("%v", err)
	}

	if c.csv {
		if err := tradebook.ExportTradesCSV(output, l); err != nil {
			return failf("%v", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TradesMarkdown(l, cfg.Options()))
	return subcommands.ExitSuccess
}

// filterSymbols replays only the events of symbols. Symbols do not share
// lots, so outcomes are the same as in the full ledger.
func filterSymbols(l *tradebook.Ledger, symbols []string) (*tradebook.Ledger, error) {
	set := symbolSet(symbols)
	if set == nil {
		return l, nil
	}
	var events []tradebook.TradeEvent
	for _, e := range l.Events() {
		if set[e.Symbol] {
			events = append(events, e)
		}
	}
	return tradebook.Replay(l.Policy(), events)
}
