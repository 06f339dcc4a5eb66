package cmd

import (
	"flag"
	"slices"

	"github.com/etnz/tradebook/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// entry is a subcommand with its help group.
type entry struct {
	group   string
	command subcommands.Command
}

// commands lists every subcommand.
var commands = []entry{
	{"trades", &buyCmd{}},
	{"trades", &sellCmd{}},
	{"trades", &rmCmd{}},
	{"trades", &importCmd{}},
	{"trades", &fmtCmd{}},
	{"reports", &summaryCmd{}},
	{"reports", &realizedCmd{}},
	{"reports", &lotsCmd{}},
	{"reports", &tradesCmd{}},
	{"reports", &exportCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.command, e.group)
	}
}

// IsCommand reports whether name is a tbk subcommand, extensions excluded.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	return slices.ContainsFunc(commands, func(e entry) bool { return e.command.Name() == name })
}

// filePredictors suggests files for the flags that take one.
var filePredictors = map[string]complete.Predictor{
	"config":  predict.Files("*.toml"),
	"journal": predict.Files("*.jsonl"),
	"marks":   predict.Files("*.json"),
	"o":       predict.Files("*"),
}

// valuePredictors suggests the values of enumerated flags.
var valuePredictors = map[string]complete.Predictor{
	"method":   predict.Set{"fifo", "lifo"},
	"currency": predict.Set{"USD", "EUR", "GBP", "CHF", "JPY", "CAD"},
	"r":        predict.Set(exportReports),
	"f":        predict.Set(exportFormats),
}

// Completion describes the command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(global),
	}
	for _, e := range commands {
		fs := flag.NewFlagSet(e.command.Name(), flag.ContinueOnError)
		e.command.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch e.command.(type) {
		case *importCmd:
			sub.Args = predict.Files("*.csv")
		case *topicCmd:
			sub.Args = predict.Set(append(docs.Names(), "*"))
		}
		root.Sub[e.command.Name()] = sub
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

// Complete runs shell completion when the shell asks for it, and exits.
// Otherwise it does nothing.
func Complete(name string, global *flag.FlagSet) {
	Completion(global).Complete(name)
}

func commandNames() []string {
	var names []string
	for _, e := range commands {
		names = append(names, e.command.Name())
	}
	return names
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	predictors := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case filePredictors[f.Name] != nil:
			predictors[f.Name] = filePredictors[f.Name]
		case valuePredictors[f.Name] != nil:
			predictors[f.Name] = valuePredictors[f.Name]
		case isBoolFlag(f):
			predictors[f.Name] = predict.Nothing
		default:
			predictors[f.Name] = predict.Something
		}
	})
	return predictors
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
