// Package seen implements the tracker's record of already-observed asset
// ids. Insert-on-miss semantics: the first CheckAndMark for an id returns
// false and records it, every later call returns true. Ids are never
// removed within a run; restarts re-baseline from scratch.
package seen
