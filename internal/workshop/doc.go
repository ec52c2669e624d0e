// Package workshop holds five small exercises on Go memory and concurrency
// semantics, used in the teaching portion of the project.
//
// Each exercise pairs a function that exhibits a pitfall with one that avoids
// it, and the package tests make the difference observable:
//
//  1. Pointers into slices: append can reallocate the backing array, leaving
//     previously taken element pointers aliased to stale memory.
//  2. Subslice aliasing: a subslice shares its parent's backing array, so
//     writes through one are visible through the other and a small subslice
//     can pin a large allocation.
//  3. Exclusive access: concurrent map writes need a [sync.Mutex]; the
//     guarded tally stays consistent under contention.
//  4. Method sets: value receivers operate on a copy, pointer receivers on
//     the original, and only pointer receivers can mutate.
//  5. Consumed values: an [io.Reader] is drained by reading; replaying data
//     requires keeping the bytes and constructing a fresh reader.
//
// Nothing here is imported by the rest of the project. The exercises are run
// through their tests.
package workshop
