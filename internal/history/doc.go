// Package history keeps a SQLite ledger of past assembly runs. Each record
// stores the run's summary columns for listing plus the full metadata JSON
// for inspection. The ledger is advisory: a failed write never fails the
// assembly that produced it.
package history
