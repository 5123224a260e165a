// Package seeder orchestrates the synthetic data pipeline: generate records,
// reconcile them against the live catalog, distribute timestamps, and apply
// them through the store API with per-item failure bookkeeping.
//
// # Pipeline
//
// Every operation follows the same shape:
//
//  1. Snapshot the catalog (request-scoped, never cached).
//  2. Generate records through the configured provider; the generator
//     guarantees the exact requested count or fails.
//  3. Reconcile: repair invalid variant references, guarantee non-empty
//     line items, normalize the synthetic marker tag.
//  4. Distribute timestamps across the requested trailing window.
//  5. Apply each item independently, folding successes and failures into
//     one outcome.
//
// Only an empty catalog or an empty generation aborts a request. Remote
// validation errors (userErrors), transport errors, and poll timeouts are
// per-item: recorded, logged, and the batch proceeds. The caller always gets
// a best-effort breakdown, never all-or-nothing.
//
// # Remote Workflows
//
// Orders run the two-phase draft-create/complete workflow; a completion
// failure triggers best-effort deletion of the orphaned draft. Inventory
// adjustments resolve the store location once per batch. Bulk cancellation
// polls each cancel job with a bounded, context-cancellable wait.
//
// All work within a request is strictly serial. Batches are small,
// serial latency is predictable, and concurrent remote mutations would need
// idempotency the order-creation API does not offer.
package seeder
