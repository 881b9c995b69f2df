// Package catalog implements the catalog synchronization feature.
//
// It wires the per-kind adapters (files, objects, pages, collections,
// redirects, prices) into the generic sync engine and exposes sync
// triggers over HTTP.
//
// # Adapters
//
// Each adapter implements the `core/syncer` Adapter interface: it names
// its export resource, declares which kinds must be synced before it,
// converts raw export records into typed entities, and builds the
// target mutation payload. The file adapter additionally enriches
// entities with size and etag from object storage so content changes
// are caught even when the export metadata is unchanged.
//
// # Components
//
//   - Service: Runs sync operations, collapsing concurrent triggers for
//     the same scope into a single run.
//   - Handler: Exposes HTTP endpoints for full and per-kind syncs.
//   - Feature: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /sync        : Run a full sync across every kind.
//   - POST /sync/:kind  : Run a sync for a single kind.
package catalog
