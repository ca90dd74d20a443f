// Package folio reconstructs the history of an investment portfolio from its
// buy and sell transactions and derives performance, allocation and risk
// figures from that history.
//
// The core types are:
//   - Transaction: one buy, sell or item event, immutable once loaded.
//   - Snapshot: the state of every position on one calendar day.
//   - Portfolio: the aggregate that owns the transactions and the snapshot
//     sequence rebuilt from them.
//
// Market prices, exchange rates and cash balances are never fetched by the
// engine itself. They come from a QuoteSource, an Exchanger and a CashSource
// passed to New. Packages eodhd and yahoo implement the first two over public
// APIs, package cache decorates them with a TTL cache.
//
// A Portfolio is rebuilt wholesale by SetTransactions. Readers always see a
// complete snapshot sequence: the new one is published only once built.
//
// This package is the engine behind the `pcs` command line tool.
package folio
