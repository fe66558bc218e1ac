// Package tt implements the transposition cache: a chained hash table from
// 64-bit Zobrist keys to cached (score, move) results.
//
// Entries live in an arena and are linked by index; each bucket stores the
// index of its chain head. The bucket for a key is key % buckets.
//
// Semantics callers must know about:
//
//   - Insert never de-duplicates. A new entry always goes to the head of its
//     chain, so Lookup returns the most recently inserted entry for a key.
//     Older duplicates stay allocated, unreachable, until Invalidate.
//   - Lookup compares full keys, which separates bucket collisions, but two
//     different positions that hash to the same 64-bit key are
//     indistinguishable. A hit may belong to another position.
//   - There is no per-entry eviction. Invalidate is the only way to release
//     memory and should be called between independent games.
//
// The cache is advisory. A failed Insert leaves the table unchanged and the
// caller's computation must carry on without it.
//
// Thread-safety: a Cache is NOT safe for concurrent use. It is owned by the
// cooperative runtime, where operations run to completion within a quantum.
package tt
