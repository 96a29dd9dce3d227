/*
Package chainhash provides a hash table mapping int64 keys to arbitrary
values, using separate chaining for collision resolution.

Table is designed as a small, predictable building block: every bucket is an
ordered chain of entries, lookups scan the chain linearly, and the table
doubles its bucket count whenever an insert pushes the load factor over a
configurable threshold. The bucket index is computed with a randomized
multiply-add-divide (MAD) compression function whose coefficients are
re-drawn on every resize.

Basic usage:

	import "github.com/theflywheel/chainhash"

	// Create a table with room for 8 entries and the default 0.75 threshold
	t, err := chainhash.New[string](8, 0.75)
	if err != nil {
		log.Fatal(err)
	}

	// Insert data
	t.Insert(101, "Alice")
	t.Insert(202, "Bob")

	// Retrieve data
	if v, ok := t.Search(202); ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	removed := t.Delete(101)

Features:

  - Separate chaining with order-preserving chains
  - Randomized MAD hashing ((a*k + b) mod p) mod m with per-resize
    coefficient redraw, resisting adversarial key sequences
  - Automatic doubling growth when the load factor exceeds the threshold
  - Power-of-two bucket counts, never shrinking
  - StringKey helper for callers with string identifiers (xxHash)
  - Stats snapshot for inspecting chain shape and growth history

Implementation Details:

Capacity is clamped to at least 1 and rounded up to the next power of two,
both at construction and on every resize. Inserting an existing key
overwrites its value in place without changing the size or triggering a
growth check. A resize collects every live entry, allocates the doubled
bucket array, draws fresh (a, b) coefficients, and re-inserts the entries
under the new hash function, so bucket placement is not stable across
resizes.

The table is not safe for concurrent use; a resize replaces the bucket array
and coefficients non-atomically, so readers need the same external locking
as writers.
*/
package chainhash
