package llrb

import "fmt"
import "math"
import "errors"

import "github.com/bnclabs/ordmap/lib"

// height of the tree cannot exceed 2*log2(n+1), the bound for
// left-leaning red-black trees.
func maxheight(entries int64) float64 {
	return 2 * math.Log2(float64(entries+1))
}

// LLRB rule, from sedgewick's paper.
var redafterred = errors.New("consecutive red spotted")

// LLRB rule, from sedgewick's paper.
var redright = errors.New("right leaning red spotted")

// LLRB rule, from sedgewick's paper.
func unbalancedblacks(lblacks, rblacks int64) error {
	return fmt.Errorf("unbalancedblacks {%v,%v}", lblacks, rblacks)
}

// Validate implement api.IndexMeta interface. Walk the full tree to
// confirm sort order, sizes, colors and black balance. Panic on any
// violation, a broken invariant means a broken implementation.
func (llrb *LLRB[K, V]) Validate() {
	root := llrb.root
	if isred(root) {
		llrb.panicerr("validate(): root is red")
	}

	h := lib.NewhistorgramInt64(1, 256, 1)
	llrb.validatetree(root, false /*fromred*/, 0 /*blacks*/, 1 /*depth*/, h)
	llrb.validateorder(root)

	n_count := llrb.Len()
	if n := sizeof(root); n != n_count {
		llrb.panicerr("validate(): size %v != n_count %v", n, n_count)
	} else if samples := h.Samples(); samples != n_count {
		fmsg := "validate(): h_height.samples %v != n_count %v"
		llrb.panicerr(fmsg, samples, n_count)
	}

	if llrb.vheight && float64(h.Max()) > maxheight(n_count) {
		fmsg := "validate(): height %v exceeds 2*log2(%v+1)"
		llrb.panicerr(fmsg, h.Max(), n_count)
	}
	if llrb.vrank {
		llrb.validaterank()
	}
	llrb.validatestats()
}

/*
following expectations on the tree should be met.
* If current node is red, parent node should be black.
* No right leaning red links.
* At each level, number of black-links on the left subtree should be
  equal to number of black-links on the right subtree.
* Size of each node should be 1 + size of its children.
* Return number of blacks.
*/
func (llrb *LLRB[K, V]) validatetree(
	nd *node[K, V], fromred bool, blacks, depth int64,
	h *lib.HistogramInt64) int64 {

	if nd == nil {
		return blacks
	}

	h.Add(depth)
	if fromred && isred(nd) {
		llrb.panicerr("validate(): %v at %v", redafterred, nd.key)
	}
	if isred(nd.right) {
		llrb.panicerr("validate(): %v at %v", redright, nd.key)
	}
	if !isred(nd) {
		blacks++
	}

	lblacks := llrb.validatetree(nd.left, isred(nd), blacks, depth+1, h)
	rblacks := llrb.validatetree(nd.right, isred(nd), blacks, depth+1, h)
	if lblacks != rblacks {
		llrb.panicerr("validate(): %v at %v", unbalancedblacks(lblacks, rblacks), nd.key)
	}

	if size := 1 + sizeof(nd.left) + sizeof(nd.right); size != nd.size {
		fmsg := "validate(): node %v size %v, expected %v"
		llrb.panicerr(fmsg, nd.key, nd.size, size)
	}
	return lblacks
}

// in-order walk shall yield keys in strictly ascending order.
func (llrb *LLRB[K, V]) validateorder(root *node[K, V]) {
	var prev *node[K, V]
	ascend(root, func(nd *node[K, V]) bool {
		if prev != nil && llrb.compare(prev.key, nd.key) >= 0 {
			fmsg := "validate(): sort order, %v is >= %v"
			llrb.panicerr(fmsg, prev.key, nd.key)
		}
		prev = nd
		return true
	})
}

// rank(select(i)) == i and select(rank(key)) == key.
func (llrb *LLRB[K, V]) validaterank() {
	rank := int64(0)
	ascend(llrb.root, func(nd *node[K, V]) bool {
		if x := rankof(llrb.root, nd.key, llrb.compare); x != rank {
			llrb.panicerr("validate(): rank(%v) is %v, expected %v", nd.key, x, rank)
		}
		if x := getrank(llrb.root, rank); x != nd {
			llrb.panicerr("validate(): select(%v) is not %v", rank, nd.key)
		}
		rank++
		return true
	})
}

func (llrb *LLRB[K, V]) validatestats() {
	// n_count should match (n_inserts - n_deletes)
	counters := llrb.counters()
	n_count := counters["n_count"]
	n_inserts, n_deletes := counters["n_inserts"], counters["n_deletes"]
	if n_count != (n_inserts - n_deletes) {
		fmsg := "validatestats(): n_count:%v != (n_inserts:%v - n_deletes:%v)"
		llrb.panicerr(fmsg, n_count, n_inserts, n_deletes)
	}
}

func (llrb *LLRB[K, V]) panicerr(fmsg string, args ...interface{}) {
	err := fmt.Errorf(fmsg, args...)
	errorf("%v %v\n", llrb.logprefix, err)
	panic(err)
}
