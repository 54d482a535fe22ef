// Package holdings retrieves brokerage positions (equities and crypto),
// merges them into a single normalized snapshot, and caches that snapshot
// for a bounded freshness window to avoid redundant, rate-limited upstream
// calls.
//
// The entry point is the Loader: it checks the single-slot SnapshotCache,
// and on a miss runs the Aggregator against a PositionSource, persists the
// result and returns it. Numeric fields are decimal end to end, rounded to
// two places for equities and twenty for crypto so fractional-unit
// positions keep their value.
package holdings
