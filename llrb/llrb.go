package llrb

import "io"
import "fmt"
import "cmp"
import "time"
import "strings"
import "reflect"
import "sync/atomic"

import "github.com/bnclabs/ordmap/api"
import "github.com/bnclabs/ordmap/lib"
import s "github.com/bnclabs/gosettings"

var _ api.OrderedMap[int64, []byte] = (*LLRB[int64, []byte])(nil)

// all counters are updated atomically, they can be read from other
// go-routines while the tree is being mutated.
type llrbstats struct {
	n_count     int64 // number of entries in the tree
	n_lookups   int64
	n_ranges    int64
	n_inserts   int64
	n_updates   int64
	n_deletes   int64
	n_rotations int64
	n_flips     int64
}

// LLRB manage a single instance of in-memory ordered map using
// left-leaning-red-black tree. LLRB is not safe for concurrent
// mutation.
type LLRB[K, V any] struct { // tree container
	// all are 64-bit aligned
	llrbstats

	name      string
	root      *node[K, V]
	compare   func(K, K) int
	borntime  time.Time
	dead      bool
	logprefix string

	h_upsertdepth *lib.HistogramInt64
	a_rotations   *lib.AverageInt64 // rotations per mutation

	// settings
	zerodelete bool
	depthstats bool
	vheight    bool
	vrank      bool
	setts      s.Settings
}

// NewLLRB create a new instance of ordered map for keys that have a
// natural ordering.
func NewLLRB[K cmp.Ordered, V any](name string, setts s.Settings) *LLRB[K, V] {
	return NewLLRBFunc[K, V](name, cmp.Compare[K], setts)
}

// NewLLRBFunc create a new instance of ordered map, keys are ordered
// using compare, which shall return a negative number when a < b,
// zero when a == b and a positive number when a > b.
func NewLLRBFunc[K, V any](
	name string, compare func(K, K) int, setts s.Settings) *LLRB[K, V] {

	if compare == nil {
		panic("NewLLRBFunc(): compare function is nil")
	}
	llrb := &LLRB[K, V]{name: name, compare: compare, borntime: time.Now()}
	llrb.logprefix = fmt.Sprintf("LLRB [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	llrb.readsettings(setts)

	// statistics
	llrb.h_upsertdepth = lib.NewhistorgramInt64(1, 256, 1)
	llrb.a_rotations = &lib.AverageInt64{}

	infof("%v started ...\n", llrb.logprefix)
	if llrb.zerodelete {
		warnf("%v put of zero value shall delete the key\n", llrb.logprefix)
	}
	return llrb
}

func (llrb *LLRB[K, V]) setroot(root *node[K, V]) {
	if root != nil {
		root.setblack()
	}
	llrb.root = root
}

// Dotdump to convert whole tree into dot script that can be visualized
// using graphviz.
func (llrb *LLRB[K, V]) Dotdump(buffer io.Writer) {
	lines := []string{
		"digraph llrb {",
		"  node[shape=record];\n",
		"}",
	}
	buffer.Write([]byte(strings.Join(lines[:len(lines)-1], "\n")))
	llrb.root.dotdump(buffer)
	buffer.Write([]byte(lines[len(lines)-1]))
}

// ---- api.IndexMeta{} interface

// ID implement api.IndexMeta interface.
func (llrb *LLRB[K, V]) ID() string {
	return llrb.name
}

// Isactive return false once the tree is destroyed.
func (llrb *LLRB[K, V]) Isactive() bool {
	return llrb.dead == false
}

// Clone the whole tree into a new instance, statistics are reset
// except for the entry count. Avoid clone while there are incoming
// mutations.
func (llrb *LLRB[K, V]) Clone(name string) *LLRB[K, V] {
	newllrb := NewLLRBFunc[K, V](name, llrb.compare, llrb.setts)
	newllrb.root = newllrb.clonetree(llrb.root)
	n := sizeof(newllrb.root)
	atomic.StoreInt64(&newllrb.n_count, n)
	atomic.StoreInt64(&newllrb.n_inserts, n)
	debugf("%v cloned %v entries into %q\n", llrb.logprefix, n, name)
	return newllrb
}

// Destroy the tree, all entries are dropped.
func (llrb *LLRB[K, V]) Destroy() {
	if llrb.dead == false {
		llrb.root = nil
		atomic.StoreInt64(&llrb.n_count, 0)
		llrb.dead = true
		infof("%v destroyed\n", llrb.logprefix)
		return
	}
	panic("Destroy(): already dead tree")
}

//---- api.IndexWriter interface

// Put implement api.IndexWriter interface. Insert key or overwrite
// its value, return the old value if key was already present. If
// "put.zerodelete" is configured, putting a zero value delete key.
func (llrb *LLRB[K, V]) Put(key K, value V) (oldvalue V, ok bool) {
	if llrb.zerodelete && iszero(value) {
		return llrb.Delete(key)
	}

	rotations := atomic.LoadInt64(&llrb.n_rotations)

	var root *node[K, V]
	root, oldvalue, ok = llrb.upsert(llrb.root, 1 /*depth*/, key, value)
	llrb.setroot(root)
	llrb.upsertcounts(ok)

	llrb.a_rotations.Add(atomic.LoadInt64(&llrb.n_rotations) - rotations)
	return oldvalue, ok
}

// returns root, oldvalue and whether key was already present.
func (llrb *LLRB[K, V]) upsert(
	nd *node[K, V], depth int64, key K, value V) (*node[K, V], V, bool) {

	var oldvalue V
	var ok bool

	if nd == nil {
		if llrb.depthstats {
			llrb.h_upsertdepth.Add(depth)
		}
		return newnode(key, value), oldvalue, false
	}

	if c := llrb.compare(key, nd.key); c < 0 {
		nd.left, oldvalue, ok = llrb.upsert(nd.left, depth+1, key, value)
	} else if c > 0 {
		nd.right, oldvalue, ok = llrb.upsert(nd.right, depth+1, key, value)
	} else {
		oldvalue, ok = nd.value, true
		nd.key, nd.value = key, value
		if llrb.depthstats {
			llrb.h_upsertdepth.Add(depth)
		}
	}

	return llrb.walkuprot23(nd), oldvalue, ok
}

// DeleteMin implement api.IndexWriter interface.
func (llrb *LLRB[K, V]) DeleteMin() (key K, value V, err error) {
	if llrb.root == nil {
		return key, value, api.ErrorUnderflow
	}

	rotations := atomic.LoadInt64(&llrb.n_rotations)

	llrb.predelete()
	root, deleted := llrb.deletemin(llrb.root)
	llrb.setroot(root)
	llrb.delcount(deleted)

	llrb.a_rotations.Add(atomic.LoadInt64(&llrb.n_rotations) - rotations)
	return deleted.key, deleted.value, nil
}

// using 2-3 trees
func (llrb *LLRB[K, V]) deletemin(nd *node[K, V]) (newnd, deleted *node[K, V]) {
	if nd.left == nil {
		if nd.right != nil {
			panic("deletemin(): minimum has a right child, call the programmer")
		}
		return nil, nd
	}
	if !isred(nd.left) && !isred(nd.left.left) {
		nd = llrb.moveredleft(nd)
	}
	nd.left, deleted = llrb.deletemin(nd.left)
	return llrb.fixup(nd), deleted
}

// DeleteMax implements api.IndexWriter interface.
func (llrb *LLRB[K, V]) DeleteMax() (key K, value V, err error) {
	if llrb.root == nil {
		return key, value, api.ErrorUnderflow
	}

	rotations := atomic.LoadInt64(&llrb.n_rotations)

	llrb.predelete()
	root, deleted := llrb.deletemax(llrb.root)
	llrb.setroot(root)
	llrb.delcount(deleted)

	llrb.a_rotations.Add(atomic.LoadInt64(&llrb.n_rotations) - rotations)
	return deleted.key, deleted.value, nil
}

// using 2-3 trees
func (llrb *LLRB[K, V]) deletemax(nd *node[K, V]) (newnd, deleted *node[K, V]) {
	if isred(nd.left) {
		nd = llrb.rotateright(nd)
	}
	if nd.right == nil {
		if nd.left != nil {
			panic("deletemax(): maximum has a left child, call the programmer")
		}
		return nil, nd
	}
	if !isred(nd.right) && !isred(nd.right.left) {
		nd = llrb.moveredright(nd)
	}
	nd.right, deleted = llrb.deletemax(nd.right)
	return llrb.fixup(nd), deleted
}

// Delete implement api.IndexWriter interface. Deleting a missing key
// is a no-op.
func (llrb *LLRB[K, V]) Delete(key K) (value V, ok bool) {
	if llrb.root == nil || getkey(llrb.root, key, llrb.compare) == nil {
		return value, false
	}

	rotations := atomic.LoadInt64(&llrb.n_rotations)

	llrb.predelete()
	root, deleted := llrb.delete(llrb.root, key)
	llrb.setroot(root)
	llrb.delcount(deleted)

	llrb.a_rotations.Add(atomic.LoadInt64(&llrb.n_rotations) - rotations)
	return deleted.value, true
}

// REQUIRE: key shall be present in the sub-tree.
func (llrb *LLRB[K, V]) delete(nd *node[K, V], key K) (newnd, deleted *node[K, V]) {
	if llrb.compare(key, nd.key) < 0 {
		if !isred(nd.left) && !isred(nd.left.left) {
			nd = llrb.moveredleft(nd)
		}
		nd.left, deleted = llrb.delete(nd.left, key)

	} else {
		if isred(nd.left) {
			nd = llrb.rotateright(nd)
		}
		// key matches and there is no right child
		if llrb.compare(key, nd.key) == 0 && nd.right == nil {
			return nil, nd
		}
		if !isred(nd.right) && !isred(nd.right.left) {
			nd = llrb.moveredright(nd)
		}
		if llrb.compare(key, nd.key) == 0 {
			// swap with the in-order successor, then detach the
			// successor which is now holding the deleted entry.
			var subdeleted *node[K, V]
			nd.right, subdeleted = llrb.deletemin(nd.right)
			nd.key, subdeleted.key = subdeleted.key, nd.key
			nd.value, subdeleted.value = subdeleted.value, nd.value
			deleted = subdeleted

		} else {
			nd.right, deleted = llrb.delete(nd.right, key)
		}
	}
	return llrb.fixup(nd), deleted
}

// if both children of root are black, make root red so that there is
// always a red link to borrow from while walking down.
func (llrb *LLRB[K, V]) predelete() {
	if !isred(llrb.root.left) && !isred(llrb.root.right) {
		llrb.root.setred()
	}
}

// rotation routines for 2-3 algorithm

func (llrb *LLRB[K, V]) rotateleft(nd *node[K, V]) *node[K, V] {
	y := nd.right
	if y.black {
		panic("rotateleft(): rotating a black link ? call the programmer")
	}
	nd.right = y.left
	y.left = nd
	y.black = nd.black
	nd.setred()
	y.size = nd.size
	nd.resize()
	atomic.AddInt64(&llrb.n_rotations, 1)
	return y
}

func (llrb *LLRB[K, V]) rotateright(nd *node[K, V]) *node[K, V] {
	x := nd.left
	if x.black {
		panic("rotateright(): rotating a black link ? call the programmer")
	}
	nd.left = x.right
	x.right = nd
	x.black = nd.black
	nd.setred()
	x.size = nd.size
	nd.resize()
	atomic.AddInt64(&llrb.n_rotations, 1)
	return x
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB[K, V]) flip(nd *node[K, V]) {
	nd.left.togglelink()
	nd.right.togglelink()
	nd.togglelink()
	atomic.AddInt64(&llrb.n_flips, 1)
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB[K, V]) moveredleft(nd *node[K, V]) *node[K, V] {
	llrb.flip(nd)
	if isred(nd.right.left) {
		nd.right = llrb.rotateright(nd.right)
		nd = llrb.rotateleft(nd)
		llrb.flip(nd)
	}
	return nd
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB[K, V]) moveredright(nd *node[K, V]) *node[K, V] {
	llrb.flip(nd)
	if isred(nd.left.left) {
		nd = llrb.rotateright(nd)
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB[K, V]) walkuprot23(nd *node[K, V]) *node[K, V] {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd.resize()
}

// fixup is walkuprot23 for the delete paths. A flip done by moveredleft
// can leave both children red with a red left-left grandchild, hence
// rotate left on any red right link.
func (llrb *LLRB[K, V]) fixup(nd *node[K, V]) *node[K, V] {
	if isred(nd.right) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd.resize()
}

//---- local functions

func (llrb *LLRB[K, V]) clonetree(nd *node[K, V]) *node[K, V] {
	if nd == nil {
		return nil
	}
	newnd := nd.clone()
	newnd.left = llrb.clonetree(nd.left)
	newnd.right = llrb.clonetree(nd.right)
	return newnd
}

func (llrb *LLRB[K, V]) upsertcounts(updated bool) {
	if updated {
		atomic.AddInt64(&llrb.n_updates, 1)
		return
	}
	atomic.AddInt64(&llrb.n_count, 1)
	atomic.AddInt64(&llrb.n_inserts, 1)
}

func (llrb *LLRB[K, V]) delcount(nd *node[K, V]) {
	if nd != nil {
		atomic.AddInt64(&llrb.n_count, -1)
		atomic.AddInt64(&llrb.n_deletes, 1)
	}
}

func iszero[V any](value V) bool {
	return reflect.ValueOf(&value).Elem().IsZero()
}
