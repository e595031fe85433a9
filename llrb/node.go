package llrb

import "io"
import "fmt"
import "strings"

// node is a single key,value entry in the tree along with its two
// exclusively owned sub-trees. Color is the color of the link from
// the parent, a nil node is black.
type node[K, V any] struct {
	left  *node[K, V]
	right *node[K, V]
	size  int64 // number of nodes in this sub-tree, including itself.
	black bool
	key   K
	value V
}

func newnode[K, V any](key K, value V) *node[K, V] {
	return &node[K, V]{key: key, value: value, size: 1, black: false}
}

func isred[K, V any](nd *node[K, V]) bool {
	if nd == nil {
		return false
	}
	return !nd.black
}

func sizeof[K, V any](nd *node[K, V]) int64 {
	if nd == nil {
		return 0
	}
	return nd.size
}

func (nd *node[K, V]) setblack() *node[K, V] {
	nd.black = true
	return nd
}

func (nd *node[K, V]) setred() *node[K, V] {
	nd.black = false
	return nd
}

func (nd *node[K, V]) togglelink() *node[K, V] {
	nd.black = !nd.black
	return nd
}

// resize shall be called after every structural change to the
// children of nd.
func (nd *node[K, V]) resize() *node[K, V] {
	nd.size = 1 + sizeof(nd.left) + sizeof(nd.right)
	return nd
}

func (nd *node[K, V]) clone() *node[K, V] {
	newnd := *nd
	newnd.left, newnd.right = nil, nil
	return &newnd
}

func (nd *node[K, V]) height() int64 {
	if nd == nil {
		return 0
	}
	lh, rh := nd.left.height(), nd.right.height()
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

// countblacks along the left spine, which is the same for every path
// in a balanced tree.
func (nd *node[K, V]) countblacks() int64 {
	blacks := int64(0)
	for ; nd != nil; nd = nd.left {
		if !isred(nd) {
			blacks++
		}
	}
	return blacks
}

func (nd *node[K, V]) dotdump(buffer io.Writer) {
	if nd == nil {
		return
	}

	whatcolor := func(childnd *node[K, V]) string {
		if isred(childnd) {
			return "red"
		}
		return "black"
	}

	key := fmt.Sprintf("%v", nd.key)
	lines := []string{
		fmt.Sprintf("  %q [label=\"{%v|size:%v}\"];\n", key, key, nd.size),
	}
	fmsg := "  %q -> %q [color=%v];\n"
	if nd.left != nil {
		lkey := fmt.Sprintf("%v", nd.left.key)
		lines = append(lines, fmt.Sprintf(fmsg, key, lkey, whatcolor(nd.left)))
	}
	if nd.right != nil {
		rkey := fmt.Sprintf("%v", nd.right.key)
		lines = append(lines, fmt.Sprintf(fmsg, key, rkey, whatcolor(nd.right)))
	}
	buffer.Write([]byte(strings.Join(lines, "")))
	nd.left.dotdump(buffer)
	nd.right.dotdump(buffer)
}
