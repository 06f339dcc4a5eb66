package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tradebook/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `tbk topic [<topic>...]

Show documentation for the given topics, or the list of topics. Use '*' for all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := docs.Read(f.Args()...)
	if err != nil {
		return failf("%v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
