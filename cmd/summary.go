package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	marks     string
	marksPath string
	csv       bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display open positions valued at mark prices" }
func (*summaryCmd) Usage() string {
	return `tbk summary [-marks <file>] [-path <jsonpath>] [-csv]

  Displays every open position with its quantity, average cost, invested
  amount, current value and unrealized profit or loss.

  Mark prices are read from a JSON quote document. A position without a
  price is valued at the unit cost of its most recent lot and flagged.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.marks, "marks", "", "JSON document with mark prices. Overrides the configuration.")
	f.StringVar(&c.marksPath, "path", "", "JSONPath to the symbol prices object in the marks document. Overrides the configuration.")
	f.BoolVar(&c.csv, "csv", false, "Print the summary as CSV")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	summaries, err := c.summarize(cfg)
	if err != nil {
		return failf("%v", err)
	}

	if c.csv {
		if err := tradebook.ExportSummaryCSV(output, summaries); err != nil {
			return failf("%v", err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SummaryMarkdown(summaries, cfg.Options()))
	return subcommands.ExitSuccess
}

// summarize loads the ledger and the marks, then values the positions.
func (c *summaryCmd) summarize(cfg Config) ([]tradebook.PositionSummary, error) {
	if c.marks != "" {
		cfg.Marks = c.marks
	}
	if c.marksPath != "" {
		cfg.MarksPath = c.marksPath
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return nil, err
	}
	marks, err := loadMarks(cfg.Marks, cfg.MarksPath)
	if err != nil {
		return nil, err
	}
	return l.Summarize(marks), nil
}
