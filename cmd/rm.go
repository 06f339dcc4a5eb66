package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

type rmCmd struct {
	dryRun bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove trades from the journal" }
func (*rmCmd) Usage() string {
	return `tbk rm [-n] <id>...

  Removes trades by ID and replays the journal. An ID may be shortened to
  any unique prefix, as printed by 'tbk trades'. Removing a buy that a
  later sell depends on fails and leaves the journal untouched.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "Check the removal without writing the journal")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usagef(f, "missing trade ID")
	}
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}
	l, err := decodeLedger(cfg)
	if err != nil {
		return failf("%v", err)
	}

	var removed []tradebook.TradeEvent
	for _, prefix := range f.Args() {
		e, err := findEvent(l, prefix)
		if err != nil {
			return failf("%v", err)
		}
		if l, err = l.Without(e.ID); err != nil {
			return failf("cannot remove %s: %v", e.ID, err)
		}
		removed = append(removed, e)
	}

	if !c.dryRun {
		if err := encodeLedger(cfg, l); err != nil {
			return failf("%v", err)
		}
	}
	for _, e := range removed {
		fmt.Fprintf(output, "Removed %s: %s\n", e.ID, renderer.Trade(e, cfg.Options()))
	}
	return subcommands.ExitSuccess
}

// findEvent returns the only event whose ID starts with prefix.
func findEvent(l *tradebook.Ledger, prefix string) (tradebook.TradeEvent, error) {
	var found []tradebook.TradeEvent
	for _, e := range l.Events() {
		if e.ID == prefix {
			return e, nil
		}
		if prefix != "" && strings.HasPrefix(e.ID, prefix) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return tradebook.TradeEvent{}, fmt.Errorf("%w: %q", tradebook.ErrUnknownEvent, prefix)
	case 1:
		return found[0], nil
	default:
		return tradebook.TradeEvent{}, fmt.Errorf("ambiguous trade ID %q matches %d trades", prefix, len(found))
	}
}
