// Package wrapped turns a brokerage trade ledger into a yearly "wrapped"
// story for one trader, and a banking ledger into a running balance report.
//
// The core functionalities include:
//   - Ledger Loading: decoding trade executions and banking transactions from
//     CSV, JSONL or JSON exports into chronological, per-user indexed ledgers.
//   - Population Aggregation: a per-user summary of the whole trade ledger
//     (first trade, activity, volume, largest trade, country diversity and
//     longest daily streak) that serves as the reference population. It is
//     computed once per ledger source and kept in a PopulationCache.
//   - Percentile Ranking: the share of the population strictly below a value,
//     and linear quantiles used to classify personas.
//   - Insight Generation: thirteen narrative insights, always in the same
//     order, each combining a raw metric with its population framing.
//   - Balance Reconstruction: the running balance of a banking ledger with
//     overall, per type and per month statistics.
//
// The package does no I/O besides decoding readers handed to it. Rendering,
// persistence and the command line live in sibling packages.
package wrapped
