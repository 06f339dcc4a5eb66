package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

type realizedCmd struct {
	details bool
}

func (*realizedCmd) Name() string     { return "realized" }
func (*realizedCmd) Synopsis() string { return "display realized gains per symbol" }
func (*realizedCmd) Usage() string {
	return `tbk realized [-details] [<symbol>...]

  Displays the proceeds, cost of goods sold and realized profit or loss of
  every sell, grouped by symbol. With -details, each sell is listed with
  the lots it consumed.
`
}

func (c *realizedCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.details, "details", false, "List every sell with the lots it consumed")
}

func (c *realizedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}

	history := l.RealizedHistory()
	if symbols := symbolSet(f.Args()); symbols != nil {
		var kept []tradebook.SellOutcome
		for _, o := range history {
			if symbols[o.Symbol] {
				kept = append(kept, o)
			}
		}
		history = kept
	}
	printMarkdown(renderer.RealizedMarkdown(history, l.Policy(), c.details, cfg.Options()))
	return subcommands.ExitSuccess
}
