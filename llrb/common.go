// llrb methods in this file are read-only, they don't restructure the
// tree.

package llrb

import "iter"
import "sync/atomic"

import "github.com/bnclabs/ordmap/api"

//---- api.IndexReader interface.

// Get implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Get(key K) (value V, ok bool) {
	atomic.AddInt64(&llrb.n_lookups, 1)
	if nd := getkey(llrb.root, key, llrb.compare); nd != nil {
		return nd.value, true
	}
	return value, false
}

// Has implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Has(key K) bool {
	atomic.AddInt64(&llrb.n_lookups, 1)
	return getkey(llrb.root, key, llrb.compare) != nil
}

// Min implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Min() (key K, value V, err error) {
	atomic.AddInt64(&llrb.n_lookups, 1)
	if nd := getmin(llrb.root); nd != nil {
		return nd.key, nd.value, nil
	}
	return key, value, api.ErrorUnderflow
}

// Max implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Max() (key K, value V, err error) {
	atomic.AddInt64(&llrb.n_lookups, 1)
	if nd := getmax(llrb.root); nd != nil {
		return nd.key, nd.value, nil
	}
	return key, value, api.ErrorUnderflow
}

// Floor implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Floor(key K) (K, V, error) {
	atomic.AddInt64(&llrb.n_lookups, 1)

	var best *node[K, V]
	for nd := llrb.root; nd != nil; {
		if c := llrb.compare(key, nd.key); c == 0 {
			return nd.key, nd.value, nil
		} else if c < 0 {
			nd = nd.left
		} else {
			best, nd = nd, nd.right
		}
	}
	if best == nil {
		var k K
		var v V
		return k, v, api.ErrorKeyMissing
	}
	return best.key, best.value, nil
}

// Ceiling implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Ceiling(key K) (K, V, error) {
	atomic.AddInt64(&llrb.n_lookups, 1)

	var best *node[K, V]
	for nd := llrb.root; nd != nil; {
		if c := llrb.compare(key, nd.key); c == 0 {
			return nd.key, nd.value, nil
		} else if c > 0 {
			nd = nd.right
		} else {
			best, nd = nd, nd.left
		}
	}
	if best == nil {
		var k K
		var v V
		return k, v, api.ErrorKeyMissing
	}
	return best.key, best.value, nil
}

// Select implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Select(rank int64) (K, V, error) {
	atomic.AddInt64(&llrb.n_lookups, 1)
	if nd := getrank(llrb.root, rank); nd != nil {
		return nd.key, nd.value, nil
	}
	var k K
	var v V
	return k, v, api.ErrorOutOfRange
}

// Rank implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Rank(key K) int64 {
	atomic.AddInt64(&llrb.n_lookups, 1)
	return rankof(llrb.root, key, llrb.compare)
}

// Len implement api.IndexReader interface.
func (llrb *LLRB[K, V]) Len() int64 {
	return atomic.LoadInt64(&llrb.n_count)
}

// IsEmpty implement api.IndexReader interface.
func (llrb *LLRB[K, V]) IsEmpty() bool {
	return llrb.root == nil
}

// Height implement api.IndexReader interface. Count of nodes on the
// longest path from root to leaf, zero for empty tree.
func (llrb *LLRB[K, V]) Height() int64 {
	return llrb.root.height()
}

// Range implement api.IndexReader interface, lo <= (keys) <= hi.
func (llrb *LLRB[K, V]) Range(lo, hi K, callb api.RangeCallb[K, V]) {
	atomic.AddInt64(&llrb.n_ranges, 1)
	if llrb.compare(lo, hi) > 0 {
		return
	}
	llrb.rangehele(llrb.root, lo, hi, callb)
}

// Keys implement api.IndexReader interface. Each range-over walks
// the tree afresh.
func (llrb *LLRB[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		atomic.AddInt64(&llrb.n_ranges, 1)
		ascend(llrb.root, func(nd *node[K, V]) bool { return yield(nd.key) })
	}
}

// KeysRange implement api.IndexReader interface, lo <= (keys) <= hi.
func (llrb *LLRB[K, V]) KeysRange(lo, hi K) iter.Seq[K] {
	return func(yield func(K) bool) {
		atomic.AddInt64(&llrb.n_ranges, 1)
		if llrb.compare(lo, hi) > 0 {
			return
		}
		llrb.rangehele(
			llrb.root, lo, hi, func(key K, _ V) bool { return yield(key) })
	}
}

// All return every entry in ascending order of key.
func (llrb *LLRB[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		atomic.AddInt64(&llrb.n_ranges, 1)
		ascend(llrb.root, func(nd *node[K, V]) bool {
			return yield(nd.key, nd.value)
		})
	}
}

// Backward return every entry in descending order of key.
func (llrb *LLRB[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		atomic.AddInt64(&llrb.n_ranges, 1)
		descend(llrb.root, func(nd *node[K, V]) bool {
			return yield(nd.key, nd.value)
		})
	}
}

// lo <= (keys) <= hi
func (llrb *LLRB[K, V]) rangehele(
	nd *node[K, V], lo, hi K, callb api.RangeCallb[K, V]) bool {

	if nd == nil {
		return true
	}
	if llrb.compare(nd.key, hi) > 0 {
		return llrb.rangehele(nd.left, lo, hi, callb)
	}
	if llrb.compare(nd.key, lo) < 0 {
		return llrb.rangehele(nd.right, lo, hi, callb)
	}
	if !llrb.rangehele(nd.left, lo, hi, callb) {
		return false
	}
	if callb != nil && !callb(nd.key, nd.value) {
		return false
	}
	return llrb.rangehele(nd.right, lo, hi, callb)
}

//---- local functions

func getkey[K, V any](nd *node[K, V], key K, compare func(K, K) int) *node[K, V] {
	for nd != nil {
		if c := compare(key, nd.key); c < 0 {
			nd = nd.left
		} else if c > 0 {
			nd = nd.right
		} else {
			return nd
		}
	}
	return nil
}

func getmin[K, V any](nd *node[K, V]) *node[K, V] {
	if nd == nil {
		return nil
	}
	for nd.left != nil {
		nd = nd.left
	}
	return nd
}

func getmax[K, V any](nd *node[K, V]) *node[K, V] {
	if nd == nil {
		return nil
	}
	for nd.right != nil {
		nd = nd.right
	}
	return nd
}

func getrank[K, V any](nd *node[K, V], rank int64) *node[K, V] {
	if rank < 0 || rank >= sizeof(nd) {
		return nil
	}
	for nd != nil {
		if lsize := sizeof(nd.left); rank < lsize {
			nd = nd.left
		} else if rank > lsize {
			nd, rank = nd.right, rank-lsize-1
		} else {
			return nd
		}
	}
	return nil
}

func rankof[K, V any](nd *node[K, V], key K, compare func(K, K) int) int64 {
	rank := int64(0)
	for nd != nil {
		if c := compare(key, nd.key); c < 0 {
			nd = nd.left
		} else if c > 0 {
			rank += 1 + sizeof(nd.left)
			nd = nd.right
		} else {
			return rank + sizeof(nd.left)
		}
	}
	return rank
}

func ascend[K, V any](nd *node[K, V], callb func(*node[K, V]) bool) bool {
	if nd == nil {
		return true
	}
	if !ascend(nd.left, callb) {
		return false
	}
	if !callb(nd) {
		return false
	}
	return ascend(nd.right, callb)
}

func descend[K, V any](nd *node[K, V], callb func(*node[K, V]) bool) bool {
	if nd == nil {
		return true
	}
	if !descend(nd.right, callb) {
		return false
	}
	if !callb(nd) {
		return false
	}
	return descend(nd.left, callb)
}
