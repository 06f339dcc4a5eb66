package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradebook"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `tbk fmt

  Validates and formats the journal. This command reads all trades, replays
  them, gives an ID to the trades that miss one, sorts them by date and
  writes them back in a canonical JSONL format.

Usage Examples:
# Formats the configured journal.
$ tbk fmt

`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("could not load journal: %v", err)
	}

	events := l.Events()
	if len(events) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no trades found to format.\n")
		return subcommands.ExitSuccess
	}
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = tradebook.NewEventID()
		}
	}
	formatted, err := tradebook.Replay(l.Policy(), events)
	if err != nil {
		return failf("%v", err)
	}
	if err := encodeLedger(cfg, formatted); err != nil {
		return failf("error saving formatted journal %q: %v", cfg.Journal, err)
	}
	fmt.Fprintf(os.Stderr, "Formatted %d trades in %s.\n", len(events), cfg.Journal)
	return subcommands.ExitSuccess
}
