// Package tradebook tracks equity trades and derives positions from an
// append-only trade log.
//
// The core is the lot-accounting engine:
//   - Ledger: records buy and sell events per symbol. Each buy opens a lot
//     whose unit cost includes its fees; each sell consumes lots in FIFO or
//     LIFO order and yields a SellOutcome with the realized profit or loss.
//     Invalid events and oversells are rejected without touching the state.
//   - Valuation: Summarize values open positions against mark prices
//     supplied by the caller, falling back to the cost of the most recent
//     lot when a price is missing, and SumRealized aggregates the realized
//     history.
//   - Data exchange: events persist as JSONL, trades and summaries export
//     to CSV, and mark prices are read from any JSON quote document.
//
// All amounts are exact decimals. Rounding only happens when formatting.
//
// This package serves as the foundational logic for the `tbk` command-line
// tool.
package tradebook
