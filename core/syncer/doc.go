// Package syncer is the synchronization engine: content-addressed
// change detection over the mapping store, an idempotent per-entity
// create/update decision procedure, cross-kind reference resolution,
// and a dependency-ordered orchestration loop with pagination.
//
// # Decision Procedure
//
// For each source entity the Reconciler consults the kind's mapping
// store (through the per-run cache):
//
//  1. No mapping by external id or natural key: create, after first
//     checking the target for a record with the same natural key so a
//     reset mapping store never causes duplicates.
//  2. Mapping found and the fingerprint matches: skip without any
//     network call.
//  3. Mapping found and the fingerprint differs: update the stored
//     target id.
//  4. Mapping found by natural key only: update that target id and
//     rekey the mapping under the current external id.
//  5. A required reference has no mapping yet: skip with a warning;
//     kind ordering supplies the mapping on a later pass.
//
// A successful mutation and its mapping write are paired: the write is
// detached from cancellation so the target can never hold a record the
// store has no memory of.
//
// # Orchestration
//
// The Engine runs kinds sequentially in dependency order, sweeps stale
// mappings before each kind's pass, pages through the source, and
// aggregates outcomes into a RunSummary. One entity's failure is
// contained to that entity; a kind's enumeration failure is contained
// to that kind. There are no cross-kind transactions: a partially
// completed run is a reported outcome, not an error state.
package syncer
