package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradebook"
	"github.com/google/subcommands"
)

type importCmd struct {
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a CSV file" }
func (*importCmd) Usage() string {
	return `tbk import [-n] <file.csv>

  Adds the trades of a CSV file to the journal. The header must contain the
  Date, Symbol, Side, Quantity and Price columns; Fees, Note and ID are
  optional and other columns are ignored, so a 'tbk trades -csv' export can
  be imported back. The whole journal is replayed before anything is
  written: if any trade is invalid or oversells, nothing is imported.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "Check the import without writing the journal")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usagef(f, "expecting exactly one CSV file")
	}
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return failf("%v", err)
	}
	defer file.Close()
	imported, err := tradebook.ImportTradesCSV(file)
	if err != nil {
		return failf("cannot import %q: %v", f.Arg(0), err)
	}

	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}
	known := make(map[string]bool)
	for _, e := range l.Events() {
		known[e.ID] = true
	}
	for i := range imported {
		if imported[i].ID == "" {
			imported[i].ID = tradebook.NewEventID()
		}
		if known[imported[i].ID] {
			return failf("trade %s is already in the journal", imported[i].ID)
		}
		known[imported[i].ID] = true
	}

	merged, err := tradebook.Replay(l.Policy(), append(l.Events(), imported...))
	if err != nil {
		return failf("cannot import %q: %v", f.Arg(0), err)
	}
	if !c.dryRun {
		if err := encodeLedger(cfg, merged); err != nil {
			return failf("%v", err)
		}
	}
	fmt.Fprintf(output, "Imported %d trades, the journal holds %d trades.\n", len(imported), len(merged.Events()))
	return subcommands.ExitSuccess
}
