package lbvh

import "github.com/achilleasa/lbvh/types"

// Refitter computes each node's AABB from its children or primitives,
// bottom-up. The topology-build kernels never touch node bounds, so a
// Refitter always runs as the final pass; BottomUpRefitter is this
// package's concrete default, replaceable by anything satisfying the
// same interface.
type Refitter interface {
	Refit(bvh *BVH, boxes []types.AABB3) error
}

// BottomUpRefitter computes node bounds with a single reverse sweep over
// the node array. Every internal node's children have strictly larger
// indices than the node itself, so visiting nodes from numNodes-1 down to
// 0 guarantees a node's children are already refit by the time the node
// itself is processed — no worklist or recursion needed.
type BottomUpRefitter struct{}

func (BottomUpRefitter) Refit(bvh *BVH, boxes []types.AABB3) error {
	countBits := bvh.countBits
	for i := bvh.NumNodes - 1; i >= 0; i-- {
		node := bvh.Nodes[i]
		if node.IsLeaf(countBits) {
			box := types.EmptyAABB3()
			offset := node.Offset(countBits)
			count := node.Count(countBits)
			for p := uint32(0); p < count; p++ {
				primID := bvh.PrimIDs[offset+p]
				box = box.Union(boxes[primID])
			}
			bvh.Bounds[i] = box
			continue
		}

		left := node.Offset(countBits)
		right := left + 1
		bvh.Bounds[i] = bvh.Bounds[left].Union(bvh.Bounds[right])
	}
	return nil
}
