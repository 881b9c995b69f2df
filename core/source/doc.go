// Package source defines the source-of-truth boundary: the typed entity
// model shared by all sync components, and a paginated pull client for
// the source export API.
//
// # Entity Model
//
// Every syncable record, regardless of kind, is normalized into an
// Entity: a stable external id, a natural key (handle, path or SKU),
// and an ordered set of typed fields. Reference-typed fields embed the
// external id of a record of another kind; the syncer rewrites them to
// target ids before building mutations.
//
// # Pull Interface
//
// The Client interface exposes one paginated List operation per
// resource. Pages are consumed lazily to exhaustion or to a configured
// count cap. Enumeration failures are wrapped in FetchError so the
// orchestrator can abort a single kind's pass without failing the run.
package source
