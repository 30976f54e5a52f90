// Package courier contains the Courier aggregate root for delivery personnel.
//
// A courier carries a last-reported geographic location, a set of
// availability flags (available, online, active, verified), append-only
// rating and delivery-history collections, and rolling earnings buckets.
// The stats block (totals, completion counts, average rating) is always
// recomputed from the append-only collections, never updated incrementally,
// so it cannot drift from the underlying data.
package courier
