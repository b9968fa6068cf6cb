package bvh

import (
	"runtime"
	"sort"
	"sync"

	"github.com/dimension/dimension/geom"
)

// prtreeB is the number of children per PR-node (DMNSN_PRTREE_B).
const prtreeB = 8

// pseudoB is the number of priority leaves extracted per pseudo-PR-tree
// level, one per extremal sort order -- must equal 2*ndimensions
// (DMNSN_PSEUDO_B).
const pseudoB = 6

// Sort-order indices, matching the reference's DMNSN_XMIN..DMNSN_ZMAX.
const (
	xmin = iota
	ymin
	zmin
	xmax
	ymax
	zmax
)

// prState marks which side of a split a node ended up on during one
// level of construction; nodes start on the DMNSN_PRTREE_LEFT side
// specifically so they don't accidentally compare equal to the
// DMNSN_PRTREE_LEAF sentinel before they're actually claimed as one.
type prState int

const (
	prLeft prState = iota
	prRight
	prLeaf
)

// prNode is the in-progress (non-flattened) tree node used only during
// construction; Bounded items become leaf prNodes, internal prNodes
// accumulate up to prtreeB children.
type prNode struct {
	box      *geom.AABB
	item     Bounded // non-nil only for leaves.
	children []*prNode
	state    prState
}

func newPRNode() *prNode {
	return &prNode{state: prLeft}
}

func addChild(parent, child *prNode) {
	if parent.box == nil {
		parent.box = child.box
	} else {
		parent.box = geom.Union(parent.box, child.box)
	}
	parent.children = append(parent.children, child)
}

var comparators = [pseudoB]func(a, b *prNode) bool{
	xmin: func(a, b *prNode) bool { return a.box.Min.X < b.box.Min.X },
	ymin: func(a, b *prNode) bool { return a.box.Min.Y < b.box.Min.Y },
	zmin: func(a, b *prNode) bool { return a.box.Min.Z < b.box.Min.Z },
	// The max orders sort *descending*: the node with the largest max
	// coordinate is the best candidate priority leaf for that extreme.
	xmax: func(a, b *prNode) bool { return a.box.Max.X > b.box.Max.X },
	ymax: func(a, b *prNode) bool { return a.box.Max.Y > b.box.Max.Y },
	zmax: func(a, b *prNode) bool { return a.box.Max.Z > b.box.Max.Z },
}

func sortLeafArray(leaves []*prNode, comparator int) []*prNode {
	out := make([]*prNode, len(leaves))
	copy(out, leaves)
	less := comparators[comparator]
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// addPriorityLeaves extracts up to one priority leaf per sort order from
// the first nleaves entries of each sorted list, each leaf collecting up
// to prtreeB of the most extreme not-yet-claimed nodes in that order.
func addPriorityLeaves(sortedLeaves [pseudoB][]*prNode, nleaves int, newLeaves *[]*prNode) {
	for i := 0; i < pseudoB; i++ {
		var leaf *prNode
		leaves := sortedLeaves[i]
		for j := 0; j < nleaves && (leaf == nil || len(leaf.children) < prtreeB); j++ {
			if leaves[j].state == prLeaf {
				continue
			}
			if leaf == nil {
				leaf = newPRNode()
			}
			leaves[j].state = prLeaf
			addChild(leaf, leaves[j])
		}
		if leaf != nil {
			*newLeaves = append(*newLeaves, leaf)
		} else {
			return
		}
	}
}

// splitSortedLeavesEasy compacts out the leaf-claimed nodes from one
// sorted list in place, then marks the remaining nodes left/right by a
// straight median split, returning the left/right sub-slices.
func splitSortedLeavesEasy(leaves []*prNode) (left, right []*prNode) {
	size := len(leaves)
	skip := 0
	for i := 0; i < size; i++ {
		if leaves[i].state == prLeaf {
			skip++
		} else {
			leaves[i-skip] = leaves[i]
		}
	}
	size -= skip

	leftSize := (size + 1) / 2
	for i := 0; i < leftSize; i++ {
		leaves[i].state = prLeft
	}
	for i := leftSize; i < size; i++ {
		leaves[i].state = prRight
	}
	return leaves[:leftSize], leaves[leftSize:size]
}

// splitSortedLeavesHard rearranges a non-pivot sorted list in place to
// match the left/right marks splitSortedLeavesEasy already assigned:
// left-marked nodes are compacted to the front (preserving this list's
// own order), right-marked nodes follow (via buffer, since they can't be
// moved into place without overwriting not-yet-visited left nodes).
func splitSortedLeavesHard(leaves []*prNode, buffer []*prNode) {
	j, skip := 0, 0
	n := len(leaves)
	i := 0
	for ; i < n; i++ {
		switch leaves[i].state {
		case prLeft:
			leaves[i-skip] = leaves[i]
		case prRight:
			buffer[j] = leaves[i]
			j++
			skip++
		default: // prLeaf
			skip++
		}
	}
	leftSize := i - skip
	for k := 0; k < j; k++ {
		leaves[leftSize+k] = buffer[k]
	}
}

// splitSortedLeaves partitions every sorted list into left/right halves
// consistent with list comparator's own median split, returning the
// right-side lists/count alongside the (in place) left-side ones.
func splitSortedLeaves(sortedLeaves [pseudoB][]*prNode, nleaves int, buffer []*prNode, comparator int) (rightSorted [pseudoB][]*prNode, newNleaves, rightNleaves int) {
	originalSize := nleaves
	left, right := splitSortedLeavesEasy(sortedLeaves[comparator][:originalSize])
	newNleaves = len(left)
	rightNleaves = len(right)

	for j := 0; j < pseudoB; j++ {
		rightSorted[j] = sortedLeaves[j][newNleaves:originalSize]
		if j == comparator {
			continue
		}
		splitSortedLeavesHard(sortedLeaves[j][:originalSize], buffer)
	}
	return
}

// priorityLeavesRecursive implicitly builds a pseudo-PR-tree over the
// given sorted lists and collects every priority leaf extracted along the
// way into newLeaves, rotating through the six sort orders at each level
// exactly the way the reference alternates its split dimension.
func priorityLeavesRecursive(sortedLeaves [pseudoB][]*prNode, nleaves int, buffer []*prNode, newLeaves *[]*prNode, comparator int) {
	addPriorityLeaves(sortedLeaves, nleaves, newLeaves)

	rightSorted, newN, rightN := splitSortedLeaves(sortedLeaves, nleaves, buffer, comparator)

	if newN > 0 {
		priorityLeavesRecursive(sortedLeaves, newN, buffer, newLeaves, (comparator+1)%pseudoB)
	}
	if rightN > 0 {
		priorityLeavesRecursive(rightSorted, rightN, buffer, newLeaves, (comparator+1)%pseudoB)
	}
}

// parallelSortThreshold is the leaf count above which the six extremal
// sorts run concurrently, one goroutine per sort order.
const parallelSortThreshold = 1024

// priorityLeaves runs one level of pseudo-PR-tree construction over
// leaves, returning the next (smaller) level's worth of nodes.
func priorityLeaves(leaves []*prNode, nthreads int) []*prNode {
	nleaves := len(leaves)
	var sorted [pseudoB][]*prNode

	if nleaves >= parallelSortThreshold && nthreads > 1 {
		var wg sync.WaitGroup
		for i := 0; i < pseudoB; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				sorted[i] = sortLeafArray(leaves, i)
			}()
		}
		wg.Wait()
	} else {
		for i := 0; i < pseudoB; i++ {
			sorted[i] = sortLeafArray(leaves, i)
		}
	}

	buffer := make([]*prNode, nleaves/2+1)
	var newLeaves []*prNode
	priorityLeavesRecursive(sorted, nleaves, buffer, &newLeaves, 0)
	return newLeaves
}

// newPRTree bulk-loads a Priority R-tree over the given bounded items,
// repeatedly extracting a level of priority leaves until a single root
// remains, matching dmnsn_new_prtree.
func newPRTree(items []Bounded) *prNode {
	if len(items) == 0 {
		return nil
	}

	leaves := make([]*prNode, len(items))
	for i, item := range items {
		leaves[i] = &prNode{box: item.AABB(), item: item, state: prLeft}
	}

	nthreads := runtime.NumCPU()
	if nthreads > pseudoB {
		nthreads = pseudoB
	}

	for len(leaves) > 1 {
		leaves = priorityLeaves(leaves, nthreads)
	}
	return leaves[0]
}

// flattenTree lays out the tree in pre-order with skip distances, so
// traversal is a flat index walk instead of pointer-chasing recursion.
func flattenTree(root *prNode) []flatNode {
	if root == nil {
		return nil
	}
	var flat []flatNode
	flattenRecursive(root, &flat)
	return flat
}

func flattenRecursive(node *prNode, flat *[]flatNode) {
	idx := len(*flat)
	*flat = append(*flat, flatNode{box: node.box, item: node.item})
	for _, c := range node.children {
		flattenRecursive(c, flat)
	}
	(*flat)[idx].skip = len(*flat) - idx
}
