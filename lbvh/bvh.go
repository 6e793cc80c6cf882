package lbvh

import "github.com/achilleasa/lbvh/types"

// BVH is the output of Build: a flat array of nodes (node 0 is the root),
// a permutation of the valid primitive indices sorted by Morton key, and
// the per-node AABBs filled in by the refit pass.
type BVH struct {
	Nodes    []Node
	Bounds   []types.AABB3
	PrimIDs  []uint32
	NumNodes int
	NumPrims int

	// countBits is the node-layout width negotiated from the build
	// config's MaxAllowedLeafSize; callers decoding a Node need it.
	countBits uint
}

// CountBits returns the width used to pack/unpack this BVH's nodes.
func (b *BVH) CountBits() uint { return b.countBits }

// Offset returns node n's child/primitive offset.
func (b *BVH) Offset(n Node) uint32 { return n.Offset(b.countBits) }

// Count returns node n's leaf primitive count (0 if internal).
func (b *BVH) Count(n Node) uint32 { return n.Count(b.countBits) }

// IsLeaf reports whether node n is a leaf. The only node of a single-node
// BVH is always a leaf, including the empty root (count 0) produced when
// no primitive survives filtering.
func (b *BVH) IsLeaf(n Node) bool { return b.NumNodes == 1 || n.IsLeaf(b.countBits) }
