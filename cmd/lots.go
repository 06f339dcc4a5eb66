package cmd

import (
	"context"
	"flag"
	"slices"

	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	all bool
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the lots held per symbol" }
func (*lotsCmd) Usage() string {
	return `tbk lots [-all] [<symbol>...]

  Displays the lots queue of each symbol in creation order, with the
  remaining quantity and cost of each lot. Use -all to include exhausted lots.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Include exhausted lots")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}
	var symbols []string
	for symbol := range symbolSet(f.Args()) {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	printMarkdown(renderer.LotsMarkdown(renderer.NewLotsView(l, symbols, c.all, cfg.Options())))
	return subcommands.ExitSuccess
}
