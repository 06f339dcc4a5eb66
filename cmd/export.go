package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
	"github.com/google/subcommands"
)

// Reports and formats supported by export.
var (
	exportReports = []string{"trades", "summary", "realized", "lots"}
	exportFormats = []string{"csv", "md", "html"}
)

type exportCmd struct {
	summaryCmd // marks flags
	report     string
	format     string
	outputFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a report as CSV, markdown or HTML" }
func (*exportCmd) Usage() string {
	return `tbk export [-r <report>] [-f <format>] [-o <file>] [-marks <file>] [-path <jsonpath>]

  Writes a report to a file, or to the standard output with -o -.
  Reports: trades, summary, realized, lots. Formats: csv, md, html.
  CSV is only available for trades and summary. Amounts in CSV are exact.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.marks, "marks", "", "JSON document with mark prices. Overrides the configuration.")
	f.StringVar(&c.marksPath, "path", "", "JSONPath to the symbol prices object in the marks document. Overrides the configuration.")
	f.StringVar(&c.report, "r", "trades", "Report to export: "+strings.Join(exportReports, ", "))
	f.StringVar(&c.format, "f", "csv", "Output format: "+strings.Join(exportFormats, ", "))
	f.StringVar(&c.outputFile, "o", "-", "Output file, - for the standard output")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failf("%v", err)
	}

	var content string
	switch c.format {
	case "csv":
		content, err = c.csvReport(cfg)
	case "md":
		content, err = c.markdownReport(cfg)
	case "html":
		content, err = c.markdownReport(cfg)
		if err == nil {
			content, err = renderer.HTMLDocument(strings.ToUpper(c.report[:1])+c.report[1:], content)
		}
	default:
		return usagef(f, "unknown format %q", c.format)
	}
	if err != nil {
		return failf("%v", err)
	}

	if c.outputFile == "-" {
		fmt.Fprint(output, content)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.outputFile, []byte(content), 0644); err != nil {
		return failf("cannot write %q: %v", c.outputFile, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %s to %s\n", c.report, c.outputFile)
	return subcommands.ExitSuccess
}

func (c *exportCmd) csvReport(cfg Config) (string, error) {
	var b strings.Builder
	switch c.report {
	case "trades":
		l, err := decodeLedger(cfg)
		if err != nil {
			return "", err
		}
		if err := tradebook.ExportTradesCSV(&b, l); err != nil {
			return "", err
		}
	case "summary":
		summaries, err := c.summarize(cfg)
		if err != nil {
			return "", err
		}
		if err := tradebook.ExportSummaryCSV(&b, summaries); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("report %q cannot be exported as CSV", c.report)
	}
	return b.String(), nil
}

func (c *exportCmd) markdownReport(cfg Config) (string, error) {
	opts := cfg.Options()
	switch c.report {
	case "trades":
		l, err := decodeLedger(cfg)
		if err != nil {
			return "", err
		}
		return renderer.TradesMarkdown(l, opts), nil
	case "summary":
		summaries, err := c.summarize(cfg)
		if err != nil {
			return "", err
		}
		return renderer.SummaryMarkdown(summaries, opts), nil
	case "realized":
		l, err := decodeLedger(cfg)
		if err != nil {
			return "", err
		}
		return renderer.RealizedMarkdown(l.RealizedHistory(), l.Policy(), true, opts), nil
	case "lots":
		l, err := decodeLedger(cfg)
		if err != nil {
			return "", err
		}
		return renderer.LotsMarkdown(renderer.NewLotsView(l, nil, false, opts)), nil
	default:
		return "", fmt.Errorf("unknown report %q", c.report)
	}
}
