package oram

import "math"

// fixSize adds one to requested and, when the sum is not a power of two, adds
// one more; it returns the result minus one (5 gives 6, 7 gives 7). This mirrors the source's fix_size(size+1): the
// returned value is the canonical node count along one dimension of log2,
// used only to derive height; it is not the tree's actual node count.
func fixSize(requested int) int {
	n := requested + 1
	logN := math.Log2(float64(n))
	if math.Ceil(logN) != math.Floor(logN) {
		n++
	}
	return n - 1
}

// PerfectTree is a perfect binary tree of Nodes, materialized both as a
// parent/child linked structure and as a level-indexed array.
type PerfectTree struct {
	size   int
	height int
	root   *Node
	levels [][]*Node
}

// newPerfectTree builds a perfect binary tree with at least requested nodes;
// its height is floor(log2(fixSize(requested))).
func newPerfectTree(requested int) *PerfectTree {
	size := fixSize(requested)
	height := int(math.Log2(float64(size)))

	root := &Node{}
	t := &PerfectTree{
		size:   size,
		height: height,
		root:   root,
		levels: [][]*Node{{root}},
	}
	t.build()
	return t
}

// build extends the tree level by level, doubling node count each time,
// until height levels have been added below the root.
func (t *PerfectTree) build() {
	for level := 0; level < t.height; level++ {
		var next []*Node
		for _, parent := range t.levels[level] {
			left := &Node{parent: parent}
			right := &Node{parent: parent}
			parent.left, parent.right = left, right
			next = append(next, left, right)
		}
		t.levels = append(t.levels, next)
	}
}

// leaves returns the last level of the tree.
func (t *PerfectTree) leaves() []*Node {
	return t.levels[len(t.levels)-1]
}
