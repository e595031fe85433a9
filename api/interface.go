// Package api define types and interfaces common to ordered map
// implementations in this module.
package api

import "iter"

// RangeCallb callback from Range API. Return false to stop the
// iteration.
type RangeCallb[K, V any] func(key K, value V) bool

// IndexMeta interface to inspect an index instance.
type IndexMeta interface {
	// ID return index id. Typically, it is human readable and unique.
	ID() string

	// Stats return a set of index statistics, cheap to compute.
	Stats() map[string]interface{}

	// Fullstats return Stats and statistics that need a full walk of
	// the index.
	Fullstats() map[string]interface{}

	// Validate index structure, panic on any violation. Meant for
	// debugging and testing.
	Validate()

	// Log statistics to the configured logger.
	Log(humanize bool)
}

// IndexReader interface for ordered lookups.
type IndexReader[K, V any] interface {
	// Get value for key, ok is false if key is not present.
	Get(key K) (value V, ok bool)

	// Has return true if key is present.
	Has(key K) bool

	// Min return the smallest entry, ErrorUnderflow if empty.
	Min() (key K, value V, err error)

	// Max return the largest entry, ErrorUnderflow if empty.
	Max() (key K, value V, err error)

	// Floor return the largest entry whose key is <= key,
	// ErrorKeyMissing if there is none.
	Floor(key K) (K, V, error)

	// Ceiling return the smallest entry whose key is >= key,
	// ErrorKeyMissing if there is none.
	Ceiling(key K) (K, V, error)

	// Select return the entry at 0-based rank in sort order,
	// ErrorOutOfRange if rank is outside [0, Len).
	Select(rank int64) (K, V, error)

	// Rank return the number of keys strictly less than key.
	Rank(key K) int64

	// Keys return all keys in ascending order.
	Keys() iter.Seq[K]

	// KeysRange return keys between lo and hi, both inclusive, in
	// ascending order.
	KeysRange(lo, hi K) iter.Seq[K]

	// Range over entries between lo and hi, both inclusive, until
	// callb returns false.
	Range(lo, hi K, callb RangeCallb[K, V])

	// Len return number of entries.
	Len() int64

	// IsEmpty return true if there are no entries.
	IsEmpty() bool

	// Height return the longest root to leaf path.
	Height() int64
}

// IndexWriter interface for mutating an ordered map.
type IndexWriter[K, V any] interface {
	// Put insert key or overwrite its value. Return the old value, if
	// key was already present.
	Put(key K, value V) (oldvalue V, ok bool)

	// Delete key, no-op if key is missing. Return the deleted value.
	Delete(key K) (value V, ok bool)

	// DeleteMin remove the smallest entry, ErrorUnderflow if empty.
	DeleteMin() (key K, value V, err error)

	// DeleteMax remove the largest entry, ErrorUnderflow if empty.
	DeleteMax() (key K, value V, err error)
}

// OrderedMap is the symbol table contract consumed by algorithms
// that need sorted key,value lookups.
type OrderedMap[K, V any] interface {
	IndexMeta
	IndexReader[K, V]
	IndexWriter[K, V]
}
