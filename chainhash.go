package chainhash

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"
)

const (
	// DefaultCapacity is the bucket count used by NewDefault.
	DefaultCapacity = 16
	// DefaultLoadFactorMax is the growth threshold used by NewDefault.
	DefaultLoadFactorMax = 0.75

	// hashPrime is the modulus of the MAD compression function,
	// the Mersenne prime 2^31-1.
	hashPrime = 1<<31 - 1
)

// entry is a single key/value pair owned by exactly one bucket.
type entry[V any] struct {
	key   int64
	value V
}

// Table is a hash table mapping int64 keys to values of type V, using
// separate chaining for collision resolution.
//
// Bucket indices are computed with randomized MAD compression:
//
//	h(k) = ((a*k + b) mod p) mod m
//
// where p is a large prime and (a, b) are drawn uniformly at random when the
// table is created and re-drawn on every resize. Re-randomizing on growth
// means no fixed key sequence can keep a single hash function degenerate for
// the table's whole lifetime; the trade-off is that bucket placement is not
// stable across resizes, and callers must never rely on it.
//
// The table grows by doubling whenever an insert pushes the load factor over
// the configured threshold, so lookups stay O(1 + loadFactorMax) expected.
// It never shrinks.
//
// A Table is not safe for concurrent use. A resize replaces the bucket array
// and hash coefficients wholesale, so even concurrent readers need external
// locking against writers.
type Table[V any] struct {
	buckets [][]entry[V]
	n       int     // live entries across all buckets
	lfMax   float64 // growth threshold
	a, b    uint64  // MAD coefficients, a in [1, p-1], b in [0, p-1]
	growths uint32
	// rehashing blocks the growth check while rehash re-inserts collected
	// entries, so a misconfigured threshold cannot recurse.
	rehashing bool
}

// Stats is a point-in-time snapshot of the table's shape.
type Stats struct {
	Entries    int
	Buckets    int
	LoadFactor float64
	Growths    uint32 // resizes since construction
	MaxChain   int    // longest bucket chain
}

// New creates a Table with at least the given capacity. The capacity is
// clamped to 1 and rounded up to the next power of two. loadFactorMax must
// be positive; a non-positive (or NaN) threshold would force a resize on
// every insert and is rejected here rather than looping forever later.
func New[V any](capacity int, loadFactorMax float64) (*Table[V], error) {
	if math.IsNaN(loadFactorMax) || loadFactorMax <= 0 {
		return nil, fmt.Errorf("chainhash: invalid loadFactorMax %v", loadFactorMax)
	}
	t := &Table[V]{
		buckets: make([][]entry[V], nextPowerOfTwo(capacity)),
		lfMax:   loadFactorMax,
	}
	t.a, t.b = drawCoefficients()
	return t, nil
}

// NewDefault creates a Table with DefaultCapacity buckets and
// DefaultLoadFactorMax as the growth threshold.
func NewDefault[V any]() *Table[V] {
	t, err := New[V](DefaultCapacity, DefaultLoadFactorMax)
	if err != nil {
		// Unreachable: the defaults are valid.
		panic(err)
	}
	return t
}

// Insert stores value under key. If the key is already present its value is
// overwritten in place and the size does not change; otherwise a new entry
// is appended to the key's chain. A structural insert that pushes the load
// factor over the threshold doubles the capacity, which rehashes every entry
// under freshly drawn coefficients.
func (t *Table[V]) Insert(key int64, value V) {
	idx := t.hash(key)
	bucket := t.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return
		}
	}
	t.buckets[idx] = append(bucket, entry[V]{key: key, value: value})
	t.n++
	t.maybeGrow()
}

// Search returns the value stored under key. The second return value
// reports whether the key was present; absence is a normal outcome, not an
// error.
func (t *Table[V]) Search(key int64) (V, bool) {
	bucket := t.buckets[t.hash(key)]
	for i := range bucket {
		if bucket[i].key == key {
			return bucket[i].value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes the entry stored under key, preserving the relative order
// of the remaining chain, and reports whether an entry was removed. Deletes
// never shrink the table.
func (t *Table[V]) Delete(key int64) bool {
	idx := t.hash(key)
	bucket := t.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			t.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			t.n--
			return true
		}
	}
	return false
}

// Size returns the number of live entries.
func (t *Table[V]) Size() int { return t.n }

// Capacity returns the current bucket count, always a power of two.
func (t *Table[V]) Capacity() int { return len(t.buckets) }

// LoadFactor returns Size divided by Capacity.
func (t *Table[V]) LoadFactor() float64 {
	return float64(t.n) / float64(len(t.buckets))
}

// Stats walks the buckets and returns a snapshot of the table's shape.
func (t *Table[V]) Stats() Stats {
	s := Stats{
		Entries:    t.n,
		Buckets:    len(t.buckets),
		LoadFactor: t.LoadFactor(),
		Growths:    t.growths,
	}
	for _, bucket := range t.buckets {
		if len(bucket) > s.MaxChain {
			s.MaxChain = len(bucket)
		}
	}
	return s
}

// hash computes the MAD bucket index for key. The key is reduced mod p into
// [0, p) first so that a*k fits comfortably in 64 bits (a < 2^31, k < 2^31);
// the final reduction uses a mask since the bucket count is a power of two.
func (t *Table[V]) hash(key int64) int {
	k := key % hashPrime
	if k < 0 {
		k += hashPrime
	}
	h := (t.a*uint64(k) + t.b) % hashPrime
	return int(h & uint64(len(t.buckets)-1))
}

func (t *Table[V]) maybeGrow() {
	if t.rehashing {
		return
	}
	// One doubling is enough for any threshold >= 0.5; the loop restores
	// the post-insert bound for arbitrarily small positive thresholds too,
	// and terminates because the entry count is fixed while the bucket
	// count doubles.
	for t.LoadFactor() > t.lfMax {
		t.rehash(2 * len(t.buckets))
	}
}

// rehash replaces the bucket array with a fresh one of at least newCapacity
// buckets (rounded up to a power of two), draws new hash coefficients, and
// re-inserts every collected entry through the normal insert path. The
// coefficient redraw means every entry's bucket index is recomputed under an
// entirely new hash function, not redistributed under the old one.
func (t *Table[V]) rehash(newCapacity int) {
	items := make([]entry[V], 0, t.n)
	for _, bucket := range t.buckets {
		items = append(items, bucket...)
	}

	t.buckets = make([][]entry[V], nextPowerOfTwo(newCapacity))
	t.n = 0
	t.a, t.b = drawCoefficients()
	t.growths++

	t.rehashing = true
	for _, e := range items {
		t.Insert(e.key, e.value)
	}
	t.rehashing = false
}

// drawCoefficients picks fresh MAD coefficients: a uniform in [1, p-1],
// b uniform in [0, p-1].
func drawCoefficients() (a, b uint64) {
	a = 1 + rand.Uint64N(hashPrime-1)
	b = rand.Uint64N(hashPrime)
	return a, b
}

// nextPowerOfTwo rounds v up to the next power of two, with a floor of 1.
func nextPowerOfTwo(v int) int {
	if v < 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}
