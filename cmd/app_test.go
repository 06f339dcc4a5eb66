package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/tradebook"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp points the global flags to a fresh journal in a temporary
// folder and captures the command output.
func setupApp(t *testing.T) (journal string, out *bytes.Buffer) {
	t.Helper()
	tmp := t.TempDir()
	journal = filepath.Join(tmp, "trades.jsonl")
	out = &bytes.Buffer{}

	for _, key := range []string{EnvJournal, EnvMethod, EnvCurrency, EnvMarks, EnvMarksPath} {
		t.Setenv(key, "")
	}

	oldConfig, oldJournal, oldMethod, oldPlain, oldOutput := *configFile, *journalFile, *method, *plain, output
	*configFile = filepath.Join(tmp, "missing.toml")
	*journalFile = journal
	*method = ""
	*plain = true
	output = out
	t.Cleanup(func() {
		*configFile, *journalFile, *method, *plain, output = oldConfig, oldJournal, oldMethod, oldPlain, oldOutput
	})
	return journal, out
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f)
}

// readJournal decodes the journal events, in file order.
func readJournal(t *testing.T, journal string) []tradebook.TradeEvent {
	t.Helper()
	f, err := os.Open(journal)
	require.NoError(t, err)
	defer f.Close()
	events, err := tradebook.DecodeEvents(f)
	require.NoError(t, err)
	return events
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuyAndSell(t *testing.T) {
	journal, out := setupApp(t)

	status := run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "aapl", "-q", "10", "-p", "100", "-fees", "1", "-m", "first")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "Bought 10 AAPL at $100.00 with $1.00 of fees on 2025-01-02")

	status = run(t, &sellCmd{}, "-d", "2025-01-03", "-s", "AAPL", "-q", "4", "-p", "120")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "Realized P/L: +$79.60")

	events := readJournal(t, journal)
	require.Len(t, events, 2)
	assert.Equal(t, "AAPL", events[0].Symbol)
	assert.Equal(t, "first", events[0].Note)
	assert.NotEmpty(t, events[0].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, tradebook.Sell, events[1].Side)
}

func TestSellAll(t *testing.T) {
	journal, _ := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "MSFT", "-q", "2.5", "-p", "400"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &sellCmd{}, "-d", "2025-01-03", "-s", "MSFT", "-q", "all", "-p", "410"))

	events := readJournal(t, journal)
	require.Len(t, events, 2)
	assert.True(t, events[1].Quantity.Equal(tradebook.Q(2.5)), "sold %v, want 2.5", events[1].Quantity)
}

func TestSell_Oversell(t *testing.T) {
	journal, _ := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "AAPL", "-q", "5", "-p", "10"))

	status := run(t, &sellCmd{}, "-d", "2025-01-03", "-s", "AAPL", "-q", "6", "-p", "12")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Len(t, readJournal(t, journal), 1)
}

func TestBuy_InvalidFlags(t *testing.T) {
	journal, _ := setupApp(t)
	testCases := []struct {
		name string
		args []string
	}{
		{"missing symbol", []string{"-q", "1", "-p", "1"}},
		{"missing quantity", []string{"-s", "AAPL", "-p", "1"}},
		{"missing price", []string{"-s", "AAPL", "-q", "1"}},
		{"bad quantity", []string{"-s", "AAPL", "-q", "ten", "-p", "1"}},
		{"negative quantity", []string{"-s", "AAPL", "-q", "-1", "-p", "1"}},
		{"negative fees", []string{"-s", "AAPL", "-q", "1", "-p", "1", "-fees", "-1"}},
		{"bad date", []string{"-d", "tomorrow", "-s", "AAPL", "-q", "1", "-p", "1"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, subcommands.ExitUsageError, run(t, &buyCmd{}, tc.args...))
		})
	}
	assert.NoFileExists(t, journal)
}

func TestBuy_BackDated(t *testing.T) {
	journal, out := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-05", "-s", "AAPL", "-q", "5", "-p", "20"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &sellCmd{}, "-d", "2025-01-06", "-s", "AAPL", "-q", "5", "-p", "30"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-01", "-s", "AAPL", "-q", "5", "-p", "10"))

	events := readJournal(t, journal)
	require.Len(t, events, 3)
	assert.Equal(t, "2025-01-01", events[0].Date.String(), "journal is not sorted")

	// FIFO now sells the back-dated lot.
	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &realizedCmd{}))
	assert.Contains(t, out.String(), "+$100.00")
}

func TestRm(t *testing.T) {
	journal, out := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "AAPL", "-q", "5", "-p", "10"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-03", "-s", "MSFT", "-q", "5", "-p", "10"))
	events := readJournal(t, journal)

	require.Equal(t, subcommands.ExitSuccess, run(t, &rmCmd{}, events[0].ID[:8]))
	assert.Contains(t, out.String(), "Removed "+events[0].ID)

	left := readJournal(t, journal)
	require.Len(t, left, 1)
	assert.Equal(t, events[1].ID, left[0].ID)

	assert.Equal(t, subcommands.ExitFailure, run(t, &rmCmd{}, "does-not-exist"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &rmCmd{}))
}

func TestRm_BreaksLaterSell(t *testing.T) {
	journal, _ := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "AAPL", "-q", "5", "-p", "10"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &sellCmd{}, "-d", "2025-01-03", "-s", "AAPL", "-q", "5", "-p", "10"))
	events := readJournal(t, journal)

	assert.Equal(t, subcommands.ExitFailure, run(t, &rmCmd{}, events[0].ID))
	assert.Len(t, readJournal(t, journal), 2)
}

func TestImport(t *testing.T) {
	journal, out := setupApp(t)
	csvFile := writeFile(t, "trades.csv", `Date,Symbol,Side,Quantity,Price,Fees,AvgCost,RealizedPL
2025-01-02,AAPL,buy,10,100,1,100.1,
2025-01-03,AAPL,sell,4,120,0,100.1,79.6
`)
	require.Equal(t, subcommands.ExitSuccess, run(t, &importCmd{}, csvFile))
	assert.Contains(t, out.String(), "Imported 2 trades")
	events := readJournal(t, journal)
	require.Len(t, events, 2)
	assert.NotEmpty(t, events[1].ID)

	oversell := writeFile(t, "oversell.csv", "Date,Symbol,Side,Quantity,Price\n2025-01-04,AAPL,sell,7,1\n")
	assert.Equal(t, subcommands.ExitFailure, run(t, &importCmd{}, oversell))
	assert.Len(t, readJournal(t, journal), 2, "a failed import must not touch the journal")
}

func TestFmt(t *testing.T) {
	journal, _ := setupApp(t)
	require.NoError(t, os.WriteFile(journal, []byte(`{"date":"2025-01-03","side":"sell","symbol":"aapl","quantity":1,"price":12}
{"date":"2025-01-02","side":"buy","symbol":"AAPL","quantity":2,"price":10,"fees":0}
`), 0644))

	require.Equal(t, subcommands.ExitSuccess, run(t, &fmtCmd{}))

	events := readJournal(t, journal)
	require.Len(t, events, 2)
	assert.Equal(t, tradebook.Buy, events[0].Side)
	assert.Equal(t, "AAPL", events[1].Symbol)
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
	}
	content, err := os.ReadFile(journal)
	require.NoError(t, err)
	assert.NotContains(t, string(content), `"fees"`)
}

func TestSummary(t *testing.T) {
	_, out := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "AAPL", "-q", "10", "-p", "100", "-fees", "1"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &sellCmd{}, "-d", "2025-01-03", "-s", "AAPL", "-q", "4", "-p", "120"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-03", "-s", "MSFT", "-q", "1", "-p", "300"))
	marks := writeFile(t, "quotes.json", `{"data": {"aapl": "110"}}`)

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &summaryCmd{}, "-marks", marks, "-path", "$.data", "-csv"))
	want := `Symbol,Quantity,AvgCost,Invested,MarkPrice,CurrentValue,UnrealizedPL
AAPL,6,100.1,600.6,110,660,59.4
MSFT,1,300,300,300,300,0
`
	assert.Equal(t, want, out.String())

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &summaryCmd{}, "-marks", marks, "-path", "$.data"))
	assert.Contains(t, out.String(), "$300.00\\*")

	assert.Equal(t, subcommands.ExitFailure, run(t, &summaryCmd{}, "-marks", marks, "-path", "$.nope"))
}

func TestTradesAndLots(t *testing.T) {
	_, out := setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "AAPL", "-q", "10", "-p", "1"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-03", "-s", "MSFT", "-q", "1", "-p", "300"))

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &tradesCmd{}, "-csv", "msft"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-03,MSFT,buy,1,300,0,300,"), lines[1])

	out.Reset()
	require.Equal(t, subcommands.ExitSuccess, run(t, &lotsCmd{}, "AAPL"))
	assert.Contains(t, out.String(), "## AAPL")
	assert.NotContains(t, out.String(), "MSFT")
}

func TestExport(t *testing.T) {
	setupApp(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &buyCmd{}, "-d", "2025-01-02", "-s", "AAPL", "-q", "10", "-p", "1"))
	require.Equal(t, subcommands.ExitSuccess, run(t, &sellCmd{}, "-d", "2025-01-03", "-s", "AAPL", "-q", "5", "-p", "2"))

	html := filepath.Join(t.TempDir(), "realized.html")
	require.Equal(t, subcommands.ExitSuccess, run(t, &exportCmd{}, "-r", "realized", "-f", "html", "-o", html))
	content, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<title>Realized</title>")
	assert.Contains(t, string(content), "<table>")

	assert.Equal(t, subcommands.ExitFailure, run(t, &exportCmd{}, "-r", "lots", "-f", "csv"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &exportCmd{}, "-f", "pdf"))
}
