// Package mapping persists external-to-target identity associations,
// one logical table per entity kind.
//
// Each Record is keyed three ways (external id, target id and natural
// key are all unique within a kind) and carries the content
// fingerprint of the source entity at the time of the last successful
// sync. The store is the authority on "what has already been
// materialized on the target", which is what makes retries idempotent.
//
// # Implementations
//
//   - GormStore: relational store, one table per kind (production).
//   - MemStore: in-memory store with the same invariants (tests).
//   - RunCache: read-through/write-through per-run view over either,
//     built once from ListAll and discarded at the end of the run.
//
// Uniqueness violations on upsert surface as *IntegrityError; they
// indicate drift between the mapping store and the target platform and
// are never silently dropped.
package mapping
