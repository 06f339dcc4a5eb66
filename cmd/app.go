// Package cmd implements the tbk command line application to record trades
// and report on positions.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradebook"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", ".tradebook.toml", "Path to the TOML configuration file")
	journalFile = flag.String("journal", "", "Path to the trade journal (JSONL format). Overrides the configuration.")
	method      = flag.String("method", "", "Lot matching method, fifo or lifo. Overrides the configuration.")
	currency    = flag.String("currency", "", "Currency used to display amounts. Overrides the configuration.")
	plain       = flag.Bool("plain", false, "Print raw markdown instead of styled terminal output")
	Verbose     = flag.Bool("v", false, "Verbose logging")
)

// output receives the command results.
var output io.Writer = os.Stdout

// loadConfig returns the validated configuration, global flags applied.
func loadConfig() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *journalFile != "" {
		cfg.Journal = *journalFile
	}
	if *method != "" {
		cfg.Method = *method
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	return cfg, cfg.Validate()
}

// decodeLedger reads and replays the journal. A missing journal is an empty ledger.
func decodeLedger(cfg Config) (*tradebook.Ledger, error) {
	f, err := os.Open(cfg.Journal)
	if errors.Is(err, fs.ErrNotExist) {
		if *Verbose {
			log.Printf("journal %q does not exist, starting with an empty ledger", cfg.Journal)
		}
		return tradebook.NewLedger(cfg.Policy()), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := tradebook.DecodeLedger(f, cfg.Policy())
	if err != nil {
		return nil, fmt.Errorf("cannot load journal %q: %w", cfg.Journal, err)
	}
	return l, nil
}

// encodeLedger rewrites the whole journal from the ledger events. The file
// is replaced atomically.
func encodeLedger(cfg Config, l *tradebook.Ledger) error {
	tmp, err := os.CreateTemp(filepath.Dir(cfg.Journal), ".tradebook-*.jsonl")
	if err != nil {
		return fmt.Errorf("cannot write journal %q: %w", cfg.Journal, err)
	}
	defer os.Remove(tmp.Name())

	if err := tradebook.EncodeEvents(tmp, l.Events()); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write journal %q: %w", cfg.Journal, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write journal %q: %w", cfg.Journal, err)
	}
	return os.Rename(tmp.Name(), cfg.Journal)
}

// appendEvent appends a single event to the journal.
func appendEvent(cfg Config, e tradebook.TradeEvent) error {
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(cfg.Journal, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open journal %q: %w", cfg.Journal, err)
	}
	defer f.Close()

	if err := tradebook.EncodeEvent(f, e); err != nil {
		return fmt.Errorf("cannot write journal %q: %w", cfg.Journal, err)
	}
	return nil
}

// recordEvent records e into the ledger and persists it. Back-dated events
// are inserted at their place and the journal is rewritten.
func recordEvent(cfg Config, l *tradebook.Ledger, e tradebook.TradeEvent) (*tradebook.SellOutcome, error) {
	outcome, err := l.Record(e)
	if err == nil {
		return outcome, appendEvent(cfg, e.Normalize())
	}
	if !errors.Is(err, tradebook.ErrOutOfOrder) {
		return nil, err
	}

	edited, err := l.Insert(e)
	if err != nil {
		return nil, err
	}
	if err := encodeLedger(cfg, edited); err != nil {
		return nil, err
	}
	for _, o := range edited.RealizedHistory() {
		if o.EventID == e.ID {
			return &o, nil
		}
	}
	return nil, nil
}

// loadMarks reads mark prices from file, using the JSONPath expression path.
// An empty file means no marks.
func loadMarks(file, path string) (map[string]tradebook.Money, error) {
	if file == "" {
		return nil, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	marks, err := tradebook.DecodeMarks(f, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read marks %q: %w", file, err)
	}
	return marks, nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(output, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Printf("cannot style output: %v", err)
		fmt.Fprint(output, md)
		return
	}
	styled, err := r.Render(md)
	if err != nil {
		log.Printf("cannot style output: %v", err)
		fmt.Fprint(output, md)
		return
	}
	fmt.Fprint(output, styled)
}

// failf prints an error message and returns ExitFailure.
func failf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// usagef prints an error message and the command usage, then returns ExitUsageError.
func usagef(f *flag.FlagSet, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	f.Usage()
	return subcommands.ExitUsageError
}

// symbolSet returns a set of normalized symbols, nil when symbols is empty.
func symbolSet(symbols []string) map[string]bool {
	if len(symbols) == 0 {
		return nil
	}
	set := make(map[string]bool)
	for _, s := range symbols {
		for _, part := range strings.Split(s, ",") {
			if part = tradebook.NormalizeSymbol(part); part != "" {
				set[part] = true
			}
		}
	}
	return set
}
