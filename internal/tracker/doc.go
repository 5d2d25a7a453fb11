// Package tracker implements the inventory change detection loop.
//
// The tracker:
//   - Baselines once: every asset present at start is marked seen
//   - Polls the inventory on a fixed interval, inspecting only the newest
//     asset of each fetch
//   - Resolves a market price for each confirmed new item
//   - Emits a stats snapshot followed by a drop event per detection
//
// All mutable state (seen set, running totals) lives inside the single
// tracker goroutine. Fetch and price failures are absorbed: the affected
// cycle is skipped and polling continues indefinitely.
package tracker
